package manifest

import (
	"bytes"
	"fmt"
	"io"

	"github.com/vvka-141/pkgdata/internal/ui"
	"github.com/vvka-141/pkgdata/pkg/pkgdata"
)

// Change lists the files one package gained or lost.
type Change struct {
	Package string
	Added   []string
	Removed []string
}

// Diff describes how a fresh scan differs from a stored manifest.
type Diff struct {
	Changes []Change

	// Reordered is set when both manifests hold the same entries in a
	// different order.
	Reordered bool
}

// Empty reports whether the manifests are identical.
func (d Diff) Empty() bool {
	return len(d.Changes) == 0 && !d.Reordered
}

// Compare computes the difference between stored and current.
// Packages appear in the order of current, followed by packages only stored has.
func Compare(stored, current *pkgdata.Manifest) Diff {
	if stored == nil {
		stored = pkgdata.NewManifest()
	}
	if current == nil {
		current = pkgdata.NewManifest()
	}

	var d Diff
	seen := make(map[string]bool)

	for _, pkg := range current.Packages() {
		seen[pkg] = true
		if c, changed := compareFiles(pkg, stored.Files(pkg), current.Files(pkg)); changed {
			d.Changes = append(d.Changes, c)
		}
	}
	for _, pkg := range stored.Packages() {
		if seen[pkg] {
			continue
		}
		if c, changed := compareFiles(pkg, stored.Files(pkg), nil); changed {
			d.Changes = append(d.Changes, c)
		}
	}

	if len(d.Changes) == 0 && !stored.Equal(current) {
		d.Reordered = true
	}
	return d
}

// compareFiles counts occurrences, so a path listed twice on one side shows
// up as added or removed rather than as a reorder.
func compareFiles(pkg string, stored, current []string) (Change, bool) {
	c := Change{Package: pkg}

	remaining := make(map[string]int, len(stored))
	for _, f := range stored {
		remaining[f]++
	}
	for _, f := range current {
		if remaining[f] > 0 {
			remaining[f]--
			continue
		}
		c.Added = append(c.Added, f)
	}
	for _, f := range stored {
		if remaining[f] > 0 {
			remaining[f]--
			c.Removed = append(c.Removed, f)
		}
	}

	return c, len(c.Added) > 0 || len(c.Removed) > 0
}

// WriteDiff writes a line per added or removed file.
func WriteDiff(w io.Writer, d Diff, styled bool) error {
	p := ui.NewPalette(styled)
	var buf bytes.Buffer

	for _, c := range d.Changes {
		label := c.Package
		if label == "" {
			label = RootPackageLabel
		}
		buf.WriteString(p.Render(ui.PackageStyle, label))
		buf.WriteByte('\n')
		for _, f := range c.Added {
			fmt.Fprintf(&buf, "  %s\n", p.Render(ui.SuccessStyle, ui.SymbolAdded+" "+f))
		}
		for _, f := range c.Removed {
			fmt.Fprintf(&buf, "  %s\n", p.Render(ui.ErrorStyle, ui.SymbolRemoved+" "+f))
		}
	}
	if d.Reordered {
		buf.WriteString(p.Render(ui.WarningStyle, "entries match but their order differs"))
		buf.WriteByte('\n')
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("%w: %w", pkgdata.ErrOutputFailed, err)
	}
	return nil
}
