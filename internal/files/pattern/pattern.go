// Package pattern matches file and directory names against exclude patterns.
//
// Patterns follow fnmatch rules: * and ? are wildcards, [seq] and [!seq]
// are character classes, and every other character is literal, backslash
// included. A "[" with no closing "]" is a literal too. Matching ignores
// case. A pattern that equals the full path of an entry, ignoring case,
// also matches; this is how entries such as "./build" are excluded only at
// the top of a tree.
package pattern

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/vvka-141/pkgdata/pkg/pkgdata"
)

// Set is an ordered list of exclude patterns. The first match wins.
type Set []string

// Compile checks every pattern and returns them as a Set.
func Compile(patterns []string) (Set, error) {
	for _, p := range patterns {
		if _, err := MatchName(p, ""); err != nil {
			return nil, err
		}
	}
	return Set(append([]string(nil), patterns...)), nil
}

// Match returns the first pattern that excludes an entry with the given
// bare name and full path. Patterns after the first match are not evaluated.
func (s Set) Match(name, fullPath string) (string, bool, error) {
	for _, p := range s {
		matched, err := MatchName(p, name)
		if err != nil {
			return "", false, err
		}
		if matched || strings.EqualFold(fullPath, p) {
			return p, true, nil
		}
	}
	return "", false, nil
}

// MatchName reports whether name matches the glob pattern, ignoring case.
// The empty pattern cannot match any entry and yields an error wrapping
// pkgdata.ErrInvalidPattern, as does anything path.Match still rejects
// after translation.
func MatchName(pattern, name string) (bool, error) {
	if pattern == "" {
		return false, fmt.Errorf("empty pattern: %w", pkgdata.ErrInvalidPattern)
	}
	matched, err := path.Match(translate(strings.ToLower(pattern)), strings.ToLower(name))
	if err != nil {
		if errors.Is(err, path.ErrBadPattern) {
			return false, fmt.Errorf("%q: %w", pattern, pkgdata.ErrInvalidPattern)
		}
		return false, err
	}
	return matched, nil
}

// translate rewrites an fnmatch pattern into path.Match syntax. Literal
// backslashes are escaped, unterminated classes become a literal "[", and
// inside a class "]", "-", "^" and "\" are escaped wherever fnmatch reads
// them literally.
func translate(pattern string) string {
	p := []rune(pattern)
	var b strings.Builder
	b.Grow(len(pattern) + 4)

	for i := 0; i < len(p); i++ {
		switch p[i] {
		case '\\':
			b.WriteString(`\\`)
		case '[':
			end := classEnd(p, i)
			if end < 0 {
				b.WriteString(`\[`)
				continue
			}
			writeClass(&b, p[i+1:end])
			i = end
		default:
			b.WriteRune(p[i])
		}
	}
	return b.String()
}

// classEnd returns the index of the "]" closing the class opened at p[open],
// or -1. A "]" right after "[" or "[!" belongs to the class.
func classEnd(p []rune, open int) int {
	j := open + 1
	if j < len(p) && p[j] == '!' {
		j++
	}
	if j < len(p) && p[j] == ']' {
		j++
	}
	for ; j < len(p); j++ {
		if p[j] == ']' {
			return j
		}
	}
	return -1
}

func writeClass(b *strings.Builder, body []rune) {
	b.WriteByte('[')
	if len(body) > 0 && body[0] == '!' {
		b.WriteByte('^')
		body = body[1:]
	}
	for k := 0; k < len(body); k++ {
		writeClassRune(b, body[k])
		if k+2 < len(body) && body[k+1] == '-' {
			b.WriteByte('-')
			writeClassRune(b, body[k+2])
			k += 2
		}
	}
	b.WriteByte(']')
}

func writeClassRune(b *strings.Builder, r rune) {
	switch r {
	case '\\', ']', '-', '^':
		b.WriteByte('\\')
	}
	b.WriteRune(r)
}
