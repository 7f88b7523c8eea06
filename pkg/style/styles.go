package style

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	HeadingColor = lipgloss.AdaptiveColor{Light: "#1a1a1a", Dark: "#fafafa"}
	TextColor    = lipgloss.AdaptiveColor{Light: "#333333", Dark: "#dddddd"}
	MutedColor   = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#666666"}
	SuccessColor = lipgloss.AdaptiveColor{Light: "#2e7d32", Dark: "#66bb6a"}
	ErrorColor   = lipgloss.AdaptiveColor{Light: "#c62828", Dark: "#ef5350"}
	WarningColor = lipgloss.AdaptiveColor{Light: "#f57f17", Dark: "#ffca28"}
	InfoColor    = lipgloss.AdaptiveColor{Light: "#1565c0", Dark: "#42a5f5"}
	PathColor    = lipgloss.AdaptiveColor{Light: "#6a1b9a", Dark: "#ab47bc"}
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true).
			MarginBottom(1)

	NormalStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	PathStyle = lipgloss.NewStyle().
			Foreground(PathColor).
			Italic(true)
)

// Result indicators
var (
	SuccessIndicator = SuccessStyle.Render("✓")
	ErrorIndicator   = ErrorStyle.Render("✗")
	WarningIndicator = WarningStyle.Render("!")
	InfoIndicator    = InfoStyle.Render("•")
	PendingIndicator = MutedStyle.Render("○")
)

// Helper functions
func Indent(s string, level int) string {
	return lipgloss.NewStyle().PaddingLeft(level * 2).Render(s)
}

func Bold(s string) string {
	return lipgloss.NewStyle().Bold(true).Render(s)
}
