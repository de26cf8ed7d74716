// Package scanner builds package-data manifests from a directory tree.
//
// A directory is a package when it contains the marker file (__init__.py by
// default). The scanner walks the tree breadth-first and attributes every
// non-excluded file to its nearest enclosing package, recording the path
// relative to that package's directory:
//
//	root/
//	  pkg/__init__.py
//	  pkg/data.txt          -> "pkg": ["data.txt", "sub/more.dat"]
//	  pkg/sub/more.dat
//
// Files with no enclosing package are dropped while OnlyInPackages is set,
// and are otherwise recorded under the empty package name.
//
// The scanner is filesystem-agnostic through filesystem.FileSystemProvider,
// so the same walk runs against the OS, an in-memory tree, an embed.FS or a
// go-billy filesystem.
package scanner
