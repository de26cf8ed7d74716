// Package files groups the source-tree packages:
//   - filesystem: Filesystem abstraction interfaces and implementations (OS, in-memory, embed, billy)
//   - pattern: Case-insensitive exclude pattern matching
//   - scanner: Package and package-data discovery
//
// # Usage
//
//	import (
//	    "github.com/vvka-141/pkgdata/internal/files/filesystem"
//	    "github.com/vvka-141/pkgdata/internal/files/scanner"
//	)
//
//	s := scanner.NewScannerWithFS(filesystem.NewOSFileSystem(), os.Stderr)
//	m, err := s.FindPackageData(".", pkgdata.DefaultScanOptions())
package files
