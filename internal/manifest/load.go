package manifest

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/pkgdata/internal/files/filesystem"
	"github.com/vvka-141/pkgdata/pkg/pkgdata"
)

// Load reads a stored manifest, choosing the decoder by file extension.
// It also returns the raw bytes so callers can compare renderings.
func Load(provider filesystem.FileSystemProvider, path string) (*pkgdata.Manifest, []byte, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, nil, err
	}

	data, err := provider.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	m, err := Unmarshal(data, format)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}
	return m, data, nil
}

// Unmarshal decodes a JSON or YAML manifest.
func Unmarshal(data []byte, format Format) (*pkgdata.Manifest, error) {
	m := pkgdata.NewManifest()

	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, m); err != nil {
			return nil, err
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, m); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("format %q cannot be loaded: %w", format, pkgdata.ErrInvalidConfig)
	}
	return m, nil
}
