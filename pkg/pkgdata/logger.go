package pkgdata

// Logger receives progress messages from commands and generators.
// Implementations may be shared between goroutines.
type Logger interface {
	// Verbose reports detail that only matters with --verbose.
	Verbose(format string, args ...interface{})

	// Info reports what a command did.
	Info(format string, args ...interface{})

	// Error reports a failure the caller still continues past.
	Error(format string, args ...interface{})
}
