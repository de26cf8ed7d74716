package pkgdata

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Manifest maps package names to the relative paths of their data files.
// Package order and file order follow insertion order, so a manifest built
// from the same directory listing always serializes identically.
//
// The zero value is an empty manifest ready for use.
type Manifest struct {
	order []string
	files map[string][]string
}

// NewManifest returns an empty manifest.
func NewManifest() *Manifest {
	return &Manifest{files: make(map[string][]string)}
}

// Add appends path to the file list of pkg, creating the entry if absent.
func (m *Manifest) Add(pkg, path string) {
	if m.files == nil {
		m.files = make(map[string][]string)
	}
	if _, ok := m.files[pkg]; !ok {
		m.order = append(m.order, pkg)
	}
	m.files[pkg] = append(m.files[pkg], path)
}

// Packages returns the package names in insertion order.
func (m *Manifest) Packages() []string {
	return append([]string(nil), m.order...)
}

// Files returns a copy of the file list for pkg, or nil if pkg is absent.
func (m *Manifest) Files(pkg string) []string {
	files, ok := m.files[pkg]
	if !ok {
		return nil
	}
	return append([]string(nil), files...)
}

// Has reports whether pkg has an entry.
func (m *Manifest) Has(pkg string) bool {
	_, ok := m.files[pkg]
	return ok
}

// Len returns the number of packages.
func (m *Manifest) Len() int {
	return len(m.order)
}

// FileCount returns the total number of files across all packages.
func (m *Manifest) FileCount() int {
	n := 0
	for _, files := range m.files {
		n += len(files)
	}
	return n
}

// Map returns the manifest as a plain map, losing package order.
func (m *Manifest) Map() map[string][]string {
	out := make(map[string][]string, len(m.files))
	for pkg, files := range m.files {
		out[pkg] = append([]string(nil), files...)
	}
	return out
}

// Equal reports whether both manifests hold the same packages in the same
// order, each with the same files in the same order.
func (m *Manifest) Equal(other *Manifest) bool {
	if m == nil || other == nil {
		return m == other
	}
	if len(m.order) != len(other.order) {
		return false
	}
	for i, pkg := range m.order {
		if other.order[i] != pkg {
			return false
		}
		a, b := m.files[pkg], other.files[pkg]
		if len(a) != len(b) {
			return false
		}
		for j := range a {
			if a[j] != b[j] {
				return false
			}
		}
	}
	return true
}

// MarshalJSON encodes the manifest as a JSON object in insertion order.
func (m *Manifest) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, pkg := range m.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(pkg)
		if err != nil {
			return nil, err
		}
		files, err := json.Marshal(m.files[pkg])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(files)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object of string arrays, keeping key order.
func (m *Manifest) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("manifest must be a JSON object")
	}

	*m = Manifest{files: make(map[string][]string)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		pkg, ok := tok.(string)
		if !ok {
			return fmt.Errorf("manifest key must be a string, got %v", tok)
		}
		var files []string
		if err := dec.Decode(&files); err != nil {
			return fmt.Errorf("package %q: %w", pkg, err)
		}
		m.setFiles(pkg, files)
	}

	_, err = dec.Token()
	return err
}

// MarshalYAML encodes the manifest as a YAML mapping in insertion order.
func (m *Manifest) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, pkg := range m.order {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: pkg}
		value := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, f := range m.files[pkg] {
			value.Content = append(value.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f})
		}
		node.Content = append(node.Content, key, value)
	}
	return node, nil
}

// UnmarshalYAML decodes a YAML mapping of string sequences, keeping key order.
func (m *Manifest) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: manifest must be a mapping", value.Line)
	}

	*m = Manifest{files: make(map[string][]string)}
	for i := 0; i+1 < len(value.Content); i += 2 {
		var pkg string
		if err := value.Content[i].Decode(&pkg); err != nil {
			return err
		}
		var files []string
		if err := value.Content[i+1].Decode(&files); err != nil {
			return fmt.Errorf("package %q: %w", pkg, err)
		}
		m.setFiles(pkg, files)
	}
	return nil
}

func (m *Manifest) setFiles(pkg string, files []string) {
	if _, ok := m.files[pkg]; !ok {
		m.order = append(m.order, pkg)
	}
	if files == nil {
		files = []string{}
	}
	m.files[pkg] = files
}
