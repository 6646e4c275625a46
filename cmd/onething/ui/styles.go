// Package ui provides the terminal board for onething.
// Uses a warm amber palette for the ONE Thing with light/dark mode support.
package ui

import (
	"os"
	"strconv"
	"strings"

	"onething/internal/datefmt"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	// Light Mode Colors (Default)
	LightForeground = lipgloss.Color("#1c1917")
	LightPrimary    = lipgloss.Color("#b45309") // amber-700
	LightAccent     = lipgloss.Color("#f59e0b") // amber-500
	LightMuted      = lipgloss.Color("#78716c")
	LightBorder     = lipgloss.Color("#d6d3d1")

	// Dark Mode Colors
	DarkForeground = lipgloss.Color("#f5f5f4")
	DarkPrimary    = lipgloss.Color("#fcd34d") // amber-300
	DarkAccent     = lipgloss.Color("#f59e0b")
	DarkMuted      = lipgloss.Color("#a8a29e")
	DarkBorder     = lipgloss.Color("#44403c")

	// Semantic Colors (same in both modes)
	Destructive = lipgloss.Color("#dc2626")
	Success     = lipgloss.Color("#16a34a")
	Warning     = lipgloss.Color("#d97706")
	Info        = lipgloss.Color("#2563eb")

	// Deadline Colors (overdue, today, tomorrow, upcoming)
	DeadlineOverdue  = lipgloss.AdaptiveColor{Light: "#dc2626", Dark: "#f87171"}
	DeadlineToday    = lipgloss.AdaptiveColor{Light: "#ea580c", Dark: "#fb923c"}
	DeadlineTomorrow = lipgloss.AdaptiveColor{Light: "#d97706", Dark: "#fbbf24"}
	DeadlineUpcoming = lipgloss.AdaptiveColor{Light: "#2563eb", Dark: "#60a5fa"}
)

// Theme holds the current color scheme
type Theme struct {
	Name       string
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme
func LightTheme() Theme {
	return Theme{
		Name:       "light",
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Muted:      LightMuted,
		Border:     LightBorder,
	}
}

// DarkTheme returns the dark mode theme
func DarkTheme() Theme {
	return Theme{
		Name:       "dark",
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		IsDark:     true,
	}
}

// DetectTheme picks a theme from the terminal environment, defaulting to light.
func DetectTheme() Theme {
	// COLORFGBG is "foreground;background"; 0-6 and 8 are dark backgrounds.
	if parts := strings.Split(os.Getenv("COLORFGBG"), ";"); len(parts) == 2 {
		if bg, err := strconv.Atoi(parts[1]); err == nil && ((bg >= 0 && bg <= 6) || bg == 8) {
			return DarkTheme()
		}
	}

	if os.Getenv("ONETHING_DARK_MODE") == "1" {
		return DarkTheme()
	}

	return LightTheme()
}

// ThemeByName resolves a config theme name. "auto" and unknown names detect.
func ThemeByName(name string) Theme {
	switch name {
	case "light":
		return LightTheme()
	case "dark":
		return DarkTheme()
	default:
		return DetectTheme()
	}
}

// Styles holds all the styled components
type Styles struct {
	Theme Theme

	// Layout
	Header lipgloss.Style
	Footer lipgloss.Style

	// Text
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style

	// Status
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Board
	Bucket       lipgloss.Style
	ActiveBucket lipgloss.Style
	DropTarget   lipgloss.Style
	Task         lipgloss.Style
	SelectedTask lipgloss.Style
	DraggedTask  lipgloss.Style
	Star         lipgloss.Style
	Count        lipgloss.Style
	FullCount    lipgloss.Style

	// Focus panel
	Focus       lipgloss.Style
	FocusActive lipgloss.Style
	FocusQuote  lipgloss.Style

	// Components
	Badge   lipgloss.Style
	Divider lipgloss.Style
	Input   lipgloss.Style
}

// NewStyles creates a new Styles instance with the given theme
func NewStyles(theme Theme) Styles {
	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	return Styles{
		Theme: theme,

		Header: lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2).
			Bold(true),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 1),

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Subtitle: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Bold: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Success: lipgloss.NewStyle().
			Foreground(Success).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true),

		Info: lipgloss.NewStyle().
			Foreground(Info),

		Bucket: panel,

		ActiveBucket: panel.
			BorderForeground(theme.Primary),

		DropTarget: panel.
			BorderStyle(lipgloss.DoubleBorder()).
			BorderForeground(theme.Accent),

		Task: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			PaddingLeft(2),

		SelectedTask: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true).
			BorderLeft(true).
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(theme.Primary).
			PaddingLeft(1),

		DraggedTask: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true).
			PaddingLeft(2),

		Star: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		Count: lipgloss.NewStyle().
			Foreground(theme.Muted),

		FullCount: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),

		Focus: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(theme.Accent).
			Padding(0, 1),

		FocusActive: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(theme.Primary).
			Padding(0, 1),

		FocusQuote: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Italic(true),

		Badge: lipgloss.NewStyle().
			Padding(0, 1),

		Divider: lipgloss.NewStyle().
			Foreground(theme.Border),

		Input: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(theme.Primary).
			Padding(0, 1),
	}
}

// DeadlineColor returns the badge color for a deadline status.
func DeadlineColor(status datefmt.Status) lipgloss.AdaptiveColor {
	switch status {
	case datefmt.StatusOverdue:
		return DeadlineOverdue
	case datefmt.StatusToday:
		return DeadlineToday
	case datefmt.StatusTomorrow:
		return DeadlineTomorrow
	default:
		return DeadlineUpcoming
	}
}

// DeadlineBadge returns the badge style for a deadline status.
func (s Styles) DeadlineBadge(status datefmt.Status) lipgloss.Style {
	return s.Badge.Foreground(DeadlineColor(status)).Bold(status == datefmt.StatusOverdue)
}

// RenderDivider returns a horizontal divider
func (s Styles) RenderDivider(width int) string {
	if width < 1 {
		width = 1
	}
	return s.Divider.Render(strings.Repeat("─", width))
}
