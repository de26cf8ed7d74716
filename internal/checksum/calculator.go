package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Calculator hashes manifest encodings and stored manifest files.
type Calculator interface {
	// CalculateRaw hashes content byte for byte.
	CalculateRaw(content []byte) string

	// CalculateNormalized hashes content after unifying line endings and
	// dropping trailing blanks, so a manifest saved on Windows or by an
	// editor that trims whitespace still compares equal.
	CalculateNormalized(content []byte) string
}

// SHA256 returns hex-encoded SHA-256 digests. The zero value is ready to use.
type SHA256 struct{}

func New() SHA256 {
	return SHA256{}
}

func (c SHA256) CalculateRaw(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

func (c SHA256) CalculateNormalized(content []byte) string {
	normalized := c.normalize(string(content))
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:])
}

// normalize maps CRLF and CR to LF, trims each line's trailing spaces and
// tabs, and drops trailing newlines.
func (c SHA256) normalize(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")

	var b strings.Builder
	b.Grow(len(content))
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strings.TrimRight(line, " \t"))
	}

	return strings.TrimRight(b.String(), "\n")
}
