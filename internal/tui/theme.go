package tui

import "charm.land/lipgloss/v2"

// Color palette
var (
	primary = lipgloss.Color("#8B5CF6")
	success = lipgloss.Color("#22C55E")
	failure = lipgloss.Color("#F43F5E")
	text    = lipgloss.Color("#F8FAFC")
	textDim = lipgloss.Color("#94A3B8")
	border  = lipgloss.Color("#334155")
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(primary)
	bodyStyle     = lipgloss.NewStyle().Foreground(text)
	dimStyle      = lipgloss.NewStyle().Foreground(textDim)
	hintStyle     = lipgloss.NewStyle().Foreground(textDim).Italic(true)
	selectedStyle = lipgloss.NewStyle().Foreground(primary).Bold(true)
	correctStyle  = lipgloss.NewStyle().Foreground(success).Bold(true)
	wrongStyle    = lipgloss.NewStyle().Foreground(failure).Bold(true)
	cardStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(1, 2)
)
