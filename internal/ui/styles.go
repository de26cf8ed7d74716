package ui

import "github.com/charmbracelet/lipgloss"

// Color palette - keeping it minimal and accessible.
var (
	ColorPrimary   = lipgloss.Color("39")  // Blue
	ColorSecondary = lipgloss.Color("245") // Gray
	ColorSuccess   = lipgloss.Color("34")  // Green
	ColorWarning   = lipgloss.Color("214") // Orange
	ColorError     = lipgloss.Color("196") // Red
	ColorMuted     = lipgloss.Color("240") // Dark gray
)

// Styles for text output.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	PackageStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	RootPackageStyle = lipgloss.NewStyle().
				Italic(true).
				Foreground(ColorSecondary)

	FileStyle = lipgloss.NewStyle()

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)
)

// Symbols used in text output.
const (
	SymbolSuccess = "✓"
	SymbolError   = "✗"
	SymbolBullet  = "•"
	SymbolAdded   = "+"
	SymbolRemoved = "-"
)

// Palette applies styles when enabled and passes text through unchanged
// otherwise, so plain output never carries escape sequences.
type Palette struct {
	enabled bool
}

// NewPalette returns a palette; styled selects whether styles are applied.
func NewPalette(styled bool) Palette {
	return Palette{enabled: styled}
}

// Enabled reports whether the palette applies styles.
func (p Palette) Enabled() bool {
	return p.enabled
}

// Render applies style to s when the palette is enabled.
func (p Palette) Render(style lipgloss.Style, s string) string {
	if !p.enabled {
		return s
	}
	return style.Render(s)
}
