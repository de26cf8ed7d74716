package scanner

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vvka-141/pkgdata/internal/files/filesystem"
	"github.com/vvka-141/pkgdata/internal/files/pattern"
	"github.com/vvka-141/pkgdata/pkg/pkgdata"
)

// Scanner discovers packages and their data files in a directory tree.
// A Scanner holds no per-scan state; each call builds its own worklist and
// result, so one Scanner may serve several scans.
type Scanner struct {
	fsProvider filesystem.FileSystemProvider
	diag       io.Writer
}

// NewScanner creates a scanner over the OS filesystem that reports ignored
// entries to stderr.
func NewScanner() *Scanner {
	return &Scanner{
		fsProvider: filesystem.NewOSFileSystem(),
		diag:       os.Stderr,
	}
}

// NewScannerWithFS creates a scanner with a custom filesystem provider and
// diagnostic writer. A nil diag discards diagnostics.
// Panics if fsProvider is nil.
func NewScannerWithFS(fsProvider filesystem.FileSystemProvider, diag io.Writer) *Scanner {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if diag == nil {
		diag = io.Discard
	}
	return &Scanner{
		fsProvider: fsProvider,
		diag:       diag,
	}
}

// frame is one pending directory in the worklist.
type frame struct {
	dir            string
	prefix         string // path relative to the enclosing package, with trailing "/"
	pkg            string
	onlyInPackages bool
}

// FindPackageData walks root and returns a manifest mapping each package to
// its non-excluded files.
//
// Directories are checked against opts.ExcludeDirectories before they are
// classified, and a directory holding the marker file starts a new package
// named parent.child. Files are checked against opts.Exclude. Any failure to
// list a directory aborts the scan; no partial manifest is returned.
func (s *Scanner) FindPackageData(root string, opts pkgdata.ScanOptions) (*pkgdata.Manifest, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	fileExcludes := pattern.Set(opts.Exclude)
	dirExcludes := pattern.Set(opts.ExcludeDirectories)

	out := pkgdata.NewManifest()
	queue := []frame{{dir: root, pkg: opts.Package, onlyInPackages: opts.OnlyInPackages}}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		entries, err := s.fsProvider.ReadDir(current.dir)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to list %s: %w", pkgdata.ErrScanFailed, current.dir, err)
		}

		for _, entry := range entries {
			name := entry.Name()
			fullPath := joinPath(current.dir, name)

			if entry.IsDir() {
				matched, excluded, err := dirExcludes.Match(name, fullPath)
				if err != nil {
					return nil, err
				}
				if excluded {
					s.reportIgnored(opts, "Directory", fullPath, matched)
					continue
				}

				if filesystem.IsRegularFile(s.fsProvider, joinPath(fullPath, opts.Marker)) {
					queue = append(queue, frame{
						dir: fullPath,
						pkg: qualify(current.pkg, name),
					})
				} else {
					queue = append(queue, frame{
						dir:            fullPath,
						prefix:         current.prefix + name + "/",
						pkg:            current.pkg,
						onlyInPackages: current.onlyInPackages,
					})
				}
				continue
			}

			if current.pkg == "" && current.onlyInPackages {
				continue
			}

			matched, excluded, err := fileExcludes.Match(name, fullPath)
			if err != nil {
				return nil, err
			}
			if excluded {
				s.reportIgnored(opts, "File", fullPath, matched)
				continue
			}

			out.Add(current.pkg, current.prefix+name)
		}
	}

	return out, nil
}

// FindPackages lists the dotted names of all packages under root in
// breadth-first order. Only directories holding the marker file are
// descended, and directory names containing a dot are never packages.
// Names matching any of opts.Exclude or pkgdata.ImplicitPackageExcludes are
// dropped from the result.
func (s *Scanner) FindPackages(root string, opts pkgdata.PackageOptions) ([]string, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	marker := opts.Marker

	type pending struct{ dir, prefix string }
	queue := []pending{{dir: root}}
	var found []string

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		entries, err := s.fsProvider.ReadDir(current.dir)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to list %s: %w", pkgdata.ErrScanFailed, current.dir, err)
		}

		for _, entry := range entries {
			name := entry.Name()
			if !entry.IsDir() || strings.Contains(name, ".") {
				continue
			}
			fullPath := joinPath(current.dir, name)
			if !filesystem.IsRegularFile(s.fsProvider, joinPath(fullPath, marker)) {
				continue
			}
			found = append(found, current.prefix+name)
			queue = append(queue, pending{dir: fullPath, prefix: current.prefix + name + "."})
		}
	}

	excludes := pattern.Set(append(append([]string(nil), opts.Exclude...), pkgdata.ImplicitPackageExcludes...))
	result := make([]string, 0, len(found))
	for _, pkg := range found {
		_, excluded, err := excludes.Match(pkg, pkg)
		if err != nil {
			return nil, err
		}
		if !excluded {
			result = append(result, pkg)
		}
	}

	return result, nil
}

func (s *Scanner) reportIgnored(opts pkgdata.ScanOptions, kind, fullPath, matched string) {
	if !opts.ShowIgnored {
		return
	}
	fmt.Fprintf(s.diag, "%s %s ignored by pattern %s\n", kind, fullPath, matched)
}

// joinPath appends name to dir without cleaning, so "." + "build" stays
// "./build" and can match a pattern written that way.
func joinPath(dir, name string) string {
	if strings.HasSuffix(dir, "/") || strings.HasSuffix(dir, string(filepath.Separator)) {
		return dir + name
	}
	return dir + string(filepath.Separator) + name
}

// qualify builds the dotted name of a child package.
func qualify(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

// Verify Scanner implements the interface at compile time
var _ pkgdata.PackageScanner = (*Scanner)(nil)
