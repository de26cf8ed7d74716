package pkgdata

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess       = 0  // Command completed successfully
	ExitGeneralError  = 1  // Unknown or unclassified error
	ExitUsageError    = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic         = 3  // Internal panic (unexpected crash)
	ExitConfigError   = 10 // Invalid configuration or exclude pattern
	ExitScanFailed    = 11 // Directory tree could not be read
	ExitManifestDrift = 12 // Stored manifest does not match the tree
	ExitOutputFailed  = 13 // Manifest or script could not be written
)

const (
	// DefaultMarker is the file whose presence designates a directory as a package.
	DefaultMarker = "__init__.py"

	// DefaultRoot is the scan root used when none is given.
	DefaultRoot = "."
)

// StandardExclude holds the file-name patterns excluded by default.
// Callers extend a copy of it rather than replicating the list.
var StandardExclude = []string{"*.py", "*.pyc", "*~", ".*", "*.bak", "*.swp*"}

// StandardExcludeDirectories holds the directory patterns excluded by default.
// "./build" and "./dist" only match when the scan root is ".".
var StandardExcludeDirectories = []string{".*", "CVS", "_darcs", "./build", "./dist", "EGG-INFO", "*.egg-info"}

// ImplicitPackageExcludes are dropped from every package listing on top of
// the caller's excludes.
var ImplicitPackageExcludes = []string{"ez_setup"}
