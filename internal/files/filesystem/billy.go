package filesystem

import (
	"fmt"
	"io/fs"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// BillyFileSystem implements FileSystemProvider on top of a go-billy
// filesystem, such as osfs or memfs.
type BillyFileSystem struct {
	fs billy.Filesystem
}

// NewBillyFileSystem wraps a billy.Filesystem.
// Panics if bfs is nil.
func NewBillyFileSystem(bfs billy.Filesystem) *BillyFileSystem {
	if bfs == nil {
		panic("billy filesystem cannot be nil")
	}
	return &BillyFileSystem{fs: bfs}
}

// ReadDir implements FileSystemProvider.ReadDir
func (b *BillyFileSystem) ReadDir(dirPath string) ([]FileInfo, error) {
	infos, err := b.fs.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("billy: read directory %q: %w", dirPath, err)
	}

	result := make([]FileInfo, 0, len(infos))
	for _, info := range infos {
		if info.Mode()&fs.ModeSymlink != 0 {
			if target, err := b.fs.Stat(b.fs.Join(dirPath, info.Name())); err == nil {
				info = namedInfo{FileInfo: target, name: info.Name()}
			}
		}
		result = append(result, info)
	}
	sortByName(result)

	return result, nil
}

// ReadFile implements FileSystemProvider.ReadFile
func (b *BillyFileSystem) ReadFile(filePath string) ([]byte, error) {
	content, err := util.ReadFile(b.fs, filePath)
	if err != nil {
		return nil, fmt.Errorf("billy: read %q: %w", filePath, err)
	}
	return content, nil
}

// Stat implements FileSystemProvider.Stat
func (b *BillyFileSystem) Stat(statPath string) (FileInfo, error) {
	info, err := b.fs.Stat(statPath)
	if err != nil {
		return nil, fmt.Errorf("billy: stat %q: %w", statPath, err)
	}
	return info, nil
}
