// Package checksum provides content hashing with normalization support.
//
// The package implements a dual checksum strategy for manifest files:
//
//   - Raw checksum: Hash of the exact content (detects all changes)
//   - Normalized checksum: Hash after normalizing line endings and trailing
//     whitespace (a manifest checked out with CRLF line endings keeps its
//     checksum)
//
// # Normalization Strategy
//
//  1. Convert CRLF and lone CR line endings to LF
//  2. Strip trailing spaces and tabs from every line
//  3. Drop trailing blank lines
//
// # Example Usage
//
//	calculator := checksum.New()
//	rawChecksum := calculator.CalculateRaw(content)
//	normalizedChecksum := calculator.CalculateNormalized(content)
//
// # Thread Safety
//
// SHA256 is safe for concurrent use by multiple goroutines.
package checksum
