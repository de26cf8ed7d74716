package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/pkgdata/internal/ui"
	"github.com/vvka-141/pkgdata/pkg/pkgdata"
)

// RootPackageLabel is shown in text output for files outside any package.
const RootPackageLabel = "(no package)"

// Render writes m to w in the given format. styled only affects FormatText.
func Render(w io.Writer, m *pkgdata.Manifest, format Format, styled bool) error {
	data, err := Marshal(m, format, styled)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("%w: %w", pkgdata.ErrOutputFailed, err)
	}
	return nil
}

// Marshal returns the rendering of m in the given format.
func Marshal(m *pkgdata.Manifest, format Format, styled bool) ([]byte, error) {
	if m == nil {
		m = pkgdata.NewManifest()
	}

	switch format {
	case FormatJSON:
		return marshalJSON(m)
	case FormatYAML:
		return marshalYAML(m)
	case FormatText:
		return marshalText(m, ui.NewPalette(styled)), nil
	}
	return nil, fmt.Errorf("unknown format %q: %w", format, pkgdata.ErrInvalidConfig)
}

func marshalJSON(m *pkgdata.Manifest) ([]byte, error) {
	compact, err := m.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to encode manifest as JSON: %w", err)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", "  "); err != nil {
		return nil, fmt.Errorf("failed to indent manifest JSON: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func marshalYAML(m *pkgdata.Manifest) ([]byte, error) {
	if m.Len() == 0 {
		return []byte("{}\n"), nil
	}
	data, err := yaml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to encode manifest as YAML: %w", err)
	}
	return data, nil
}

func marshalText(m *pkgdata.Manifest, p ui.Palette) []byte {
	var buf bytes.Buffer

	for _, pkg := range m.Packages() {
		if pkg == "" {
			buf.WriteString(p.Render(ui.RootPackageStyle, RootPackageLabel))
		} else {
			buf.WriteString(p.Render(ui.PackageStyle, pkg))
		}
		buf.WriteByte('\n')
		for _, f := range m.Files(pkg) {
			fmt.Fprintf(&buf, "  %s %s\n", p.Render(ui.MutedStyle, ui.SymbolBullet), p.Render(ui.FileStyle, f))
		}
	}

	summary := fmt.Sprintf("%s, %s", plural(m.Len(), "package"), plural(m.FileCount(), "file"))
	buf.WriteString(p.Render(ui.MutedStyle, summary))
	buf.WriteByte('\n')

	return buf.Bytes()
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
