package pkgdata

import (
	"errors"
	"fmt"
	"strings"
)

// ScanOptions controls a package-data scan.
type ScanOptions struct {
	// Package is the package name the scan root belongs to. Empty means the
	// root is not inside a package.
	Package string

	// Exclude lists file-name patterns. Matching is case-insensitive and a
	// pattern may also be an exact path.
	Exclude []string

	// ExcludeDirectories lists directory-name patterns, matched like Exclude.
	ExcludeDirectories []string

	// OnlyInPackages drops files that have no enclosing package.
	OnlyInPackages bool

	// ShowIgnored reports every excluded entry to the diagnostic stream.
	ShowIgnored bool

	// Marker is the file name that designates a package directory.
	Marker string
}

// DefaultScanOptions returns options with the standard exclude lists,
// the default marker and OnlyInPackages enabled.
func DefaultScanOptions() ScanOptions {
	return ScanOptions{
		Exclude:            append([]string(nil), StandardExclude...),
		ExcludeDirectories: append([]string(nil), StandardExcludeDirectories...),
		OnlyInPackages:     true,
		Marker:             DefaultMarker,
	}
}

// Validate checks the options for values the scanner cannot work with.
// Pattern syntax is not checked here; malformed patterns fail when evaluated.
func (o *ScanOptions) Validate() error {
	var errs []error

	if err := validateMarker(&o.Marker); err != nil {
		errs = append(errs, err)
	}
	if strings.HasPrefix(o.Package, ".") || strings.HasSuffix(o.Package, ".") {
		errs = append(errs, fmt.Errorf("package %q is not a dotted name: %w", o.Package, ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// PackageOptions controls package discovery.
type PackageOptions struct {
	// Exclude lists case-insensitive patterns over dotted package names.
	Exclude []string

	// Marker is the file name that designates a package directory.
	Marker string
}

// DefaultPackageOptions returns options with the default marker and no excludes.
func DefaultPackageOptions() PackageOptions {
	return PackageOptions{Marker: DefaultMarker}
}

// Validate fills in the default marker and rejects a marker that is not a
// bare file name.
func (o *PackageOptions) Validate() error {
	return validateMarker(&o.Marker)
}

func validateMarker(marker *string) error {
	if *marker == "" {
		*marker = DefaultMarker
	}
	if strings.ContainsAny(*marker, `/\`) {
		return fmt.Errorf("marker %q must be a bare file name: %w", *marker, ErrInvalidConfig)
	}
	return nil
}
