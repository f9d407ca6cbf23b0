// Package ui is the terminal surface of the rumo interview: a bubbletea
// program that drives the interview wizard and shows the finished
// Chief of Staff document.
package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RUMO palette: royal navy with an Alentejo ochre accent.
var (
	// Light Mode Colors (Default)
	LightBackground = lipgloss.Color("#FFFFFF")
	LightForeground = lipgloss.Color("#1A2B3C")
	LightPrimary    = lipgloss.Color("#3D5A80") // Navy
	LightAccent     = lipgloss.Color("#D4A55A") // Ochre
	LightMuted      = lipgloss.Color("#6C757D")
	LightBorder     = lipgloss.Color("#DEE2E6")
	LightPending    = lipgloss.Color("#E9ECEF")

	// Dark Mode Colors
	DarkBackground = lipgloss.Color("#141d2b")
	DarkForeground = lipgloss.Color("#F8F9FA")
	DarkPrimary    = lipgloss.Color("#7B9ABF") // Navy, faded for contrast
	DarkAccent     = lipgloss.Color("#E5B86D") // Ochre, light
	DarkMuted      = lipgloss.Color("#ADB5BD")
	DarkBorder     = lipgloss.Color("#2a3850")
	DarkPending    = lipgloss.Color("#495057")

	// Semantic Colors (same in both modes)
	Destructive = lipgloss.Color("#e53935")
	Success     = lipgloss.Color("#2A9D8F")
)

// Theme holds the current color scheme
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Pending    lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme
func LightTheme() Theme {
	return Theme{
		Background: LightBackground,
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Muted:      LightMuted,
		Border:     LightBorder,
		Pending:    LightPending,
	}
}

// DarkTheme returns the dark mode theme
func DarkTheme() Theme {
	return Theme{
		Background: DarkBackground,
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		Pending:    DarkPending,
		IsDark:     true,
	}
}

// DetectTheme picks dark mode from COLORFGBG or RUMO_DARK_MODE=1,
// light otherwise.
func DetectTheme() Theme {
	// Format is usually "foreground;background"
	if colorTerm := os.Getenv("COLORFGBG"); colorTerm != "" {
		parts := strings.Split(colorTerm, ";")
		if len(parts) == 2 {
			if bgIdx, err := strconv.Atoi(parts[1]); err == nil {
				if (bgIdx >= 0 && bgIdx <= 6) || bgIdx == 8 {
					return DarkTheme()
				}
			}
		}
	}

	if os.Getenv("RUMO_DARK_MODE") == "1" {
		return DarkTheme()
	}
	return LightTheme()
}

// Styles holds all the styled components
type Styles struct {
	Theme Theme

	// Layout
	Header  lipgloss.Style
	Footer  lipgloss.Style
	Content lipgloss.Style

	// Text
	Section  lipgloss.Style
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style

	// Choices
	Cursor      lipgloss.Style
	Selected    lipgloss.Style
	Option      lipgloss.Style
	Description lipgloss.Style

	// Progress segments
	SegmentDone    lipgloss.Style
	SegmentCurrent lipgloss.Style
	SegmentPending lipgloss.Style

	// Status
	Success lipgloss.Style
	Error   lipgloss.Style
	Badge   lipgloss.Style

	Document lipgloss.Style
	Divider  lipgloss.Style
}

// NewStyles creates a new Styles instance with the given theme
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		Header: lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2).
			Bold(true),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 2),

		Content: lipgloss.NewStyle().
			Padding(1, 2),

		Section: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			MarginBottom(1),

		Subtitle: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Cursor: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		Selected: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Option: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Description: lipgloss.NewStyle().
			Foreground(theme.Muted).
			PaddingLeft(6),

		SegmentDone: lipgloss.NewStyle().
			Foreground(theme.Primary),

		SegmentCurrent: lipgloss.NewStyle().
			Foreground(theme.Accent),

		SegmentPending: lipgloss.NewStyle().
			Foreground(theme.Pending),

		Success: lipgloss.NewStyle().
			Foreground(Success).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),

		Badge: lipgloss.NewStyle().
			Background(theme.Accent).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 1).
			Bold(true),

		Document: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		Divider: lipgloss.NewStyle().
			Foreground(theme.Border),
	}
}

// DefaultStyles returns styles for the detected theme
func DefaultStyles() Styles {
	return NewStyles(DetectTheme())
}

// RenderDivider returns a horizontal divider
func (s Styles) RenderDivider(width int) string {
	if width < 1 {
		width = 1
	}
	return s.Divider.Render(strings.Repeat("─", width))
}
