// Package filesystem provides filesystem abstraction interfaces and implementations.
//
// The scanner only needs to list a directory, stat a path and read a file,
// so FileSystemProvider is limited to those three operations. Keeping the
// surface that small lets the same scan run against the OS, an in-memory
// tree, an embed.FS or any go-billy filesystem.
//
// Implementations:
//   - OSFileSystem: Production implementation using the OS filesystem
//   - MemoryFileSystem: In-memory implementation for testing
//   - EmbedFileSystem: Read-only view of an embed.FS subtree
//   - BillyFileSystem: Adapter for github.com/go-git/go-billy/v5 filesystems
package filesystem
