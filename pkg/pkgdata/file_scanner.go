package pkgdata

// PackageScanner defines the interface for building package-data manifests.
type PackageScanner interface {
	// FindPackageData walks root and maps each package name to the
	// non-excluded files it carries, relative to the package directory.
	FindPackageData(root string, opts ScanOptions) (*Manifest, error)

	// FindPackages lists the dotted names of all packages under root.
	FindPackages(root string, opts PackageOptions) ([]string, error)
}
