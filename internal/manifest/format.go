package manifest

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vvka-141/pkgdata/pkg/pkgdata"
)

// Format names a manifest rendering.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatText Format = "text"
)

// Formats lists every supported format, used for flag help and completion.
var Formats = []Format{FormatJSON, FormatYAML, FormatText}

// ParseFormat converts a user-supplied name into a Format.
// "yml" is accepted as an alias for yaml.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "text", "txt":
		return FormatText, nil
	}
	return "", fmt.Errorf("unknown format %q (expected one of %s): %w", name, formatList(), pkgdata.ErrInvalidConfig)
}

// FormatForPath picks the format of a stored manifest from its extension.
// Text listings cannot be loaded back, so only JSON and YAML are recognized.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("cannot infer manifest format from %q (use .json, .yaml or .yml): %w", path, pkgdata.ErrInvalidConfig)
}

func formatList() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
