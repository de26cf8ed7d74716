package filesystem

import (
	"io/fs"
	"sort"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
// This provides compatibility with the fs.FS ecosystem while maintaining
// a stable local type for our abstraction layer.
type FileInfo = fs.FileInfo

// FileSystemProvider gives read access to a directory tree.
type FileSystemProvider interface {
	// ReadDir returns the direct children of the directory at path, sorted
	// by name. Symbolic links are resolved, so IsDir reports on the target.
	ReadDir(path string) ([]FileInfo, error)

	// ReadFile reads a specific file at the given path
	ReadFile(path string) ([]byte, error)

	// Stat returns file information for the given path, following links
	Stat(path string) (FileInfo, error)
}

// IsRegularFile reports whether path names an existing non-directory.
// Any error, including permission errors, is reported as false.
func IsRegularFile(provider FileSystemProvider, path string) bool {
	info, err := provider.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

func sortByName(infos []FileInfo) {
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name() < infos[j].Name()
	})
}
