package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	colorGreen  = lipgloss.Color("42")
	colorYellow = lipgloss.Color("214")
	colorCyan   = lipgloss.Color("45")
	colorGray   = lipgloss.Color("245")
	colorWhite  = lipgloss.Color("255")
	colorBorder = lipgloss.Color("240")
)

// Styles defines the visual styles for the status header and event log.
type Styles struct {
	// Status line
	Spinner lipgloss.Style
	Header  lipgloss.Style
	Details lipgloss.Style
	Timer   lipgloss.Style
	Hint    lipgloss.Style
	Idle    lipgloss.Style

	// Event log pane
	LogBox  lipgloss.Style
	LogLine lipgloss.Style

	// Footer
	HelpBar lipgloss.Style
	Message lipgloss.Style
}

// DefaultStyles returns the default style configuration. A non-empty accent
// replaces the running header color.
func DefaultStyles(accent string) Styles {
	headerColor := colorGreen
	if accent != "" {
		headerColor = lipgloss.Color(accent)
	}

	return Styles{
		Spinner: lipgloss.NewStyle().
			Foreground(colorCyan),

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(headerColor),

		Details: lipgloss.NewStyle().
			Foreground(colorWhite),

		Timer: lipgloss.NewStyle().
			Foreground(colorGray),

		Hint: lipgloss.NewStyle().
			Foreground(colorYellow),

		Idle: lipgloss.NewStyle().
			Foreground(colorGray),

		LogBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1),

		LogLine: lipgloss.NewStyle().
			Foreground(colorGray),

		HelpBar: lipgloss.NewStyle().
			Foreground(colorGray).
			Padding(0, 1),

		Message: lipgloss.NewStyle().
			Foreground(colorYellow).
			Padding(0, 1),
	}
}
