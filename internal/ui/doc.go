// Package ui holds terminal detection and the lipgloss styles used by
// human-readable output.
package ui
