package pkgdata

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	m, err := scanner.FindPackageData(root, opts)
//	if errors.Is(err, pkgdata.ErrInvalidPattern) {
//	    // Handle a malformed exclude pattern
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidPattern indicates an exclude pattern has malformed glob syntax.
	ErrInvalidPattern = errors.New("invalid exclude pattern")

	// ErrScanFailed indicates a directory in the tree could not be listed.
	ErrScanFailed = errors.New("scan failed")

	// ErrManifestDrift indicates a stored manifest differs from a fresh scan.
	ErrManifestDrift = errors.New("manifest drift")

	// ErrOutputFailed indicates generated output could not be written.
	ErrOutputFailed = errors.New("output failed")
)

// usageErrorPatterns are message fragments cobra and pflag produce for
// command-line misuse.
var usageErrorPatterns = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"accepts ",
	"requires at least",
	"required flag",
	"invalid argument",
	"flag needs an argument",
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig), errors.Is(err, ErrInvalidPattern):
		return ExitConfigError
	case errors.Is(err, ErrScanFailed):
		return ExitScanFailed
	case errors.Is(err, ErrManifestDrift):
		return ExitManifestDrift
	case errors.Is(err, ErrOutputFailed):
		return ExitOutputFailed
	}

	errStr := err.Error()
	for _, pattern := range usageErrorPatterns {
		if strings.Contains(errStr, pattern) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}
