package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	colorAccent = lipgloss.Color("#7C3AED") // violet
	colorResult = lipgloss.Color("#34D399") // emerald
	colorError  = lipgloss.Color("#EF4444") // red
	colorText   = lipgloss.Color("#F8FAFC") // near-white
	colorMuted  = lipgloss.Color("#6B7280") // gray
	colorBgBar  = lipgloss.Color("#1E293B") // slate
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	badgeStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorBgBar).
			Padding(0, 1)

	promptStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	resultStyle = lipgloss.NewStyle().
			Foreground(colorResult).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError)

	// spanStyle marks the offending run inside a normalized expression.
	spanStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorError).
			Bold(true)

	noteStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)

	placeholderStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Italic(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	inputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			MarginTop(1)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(colorMuted)
)

// keyHint renders one keyboard shortcut for the help bar.
func keyHint(key, description string) string {
	return helpKeyStyle.Render(key) + " " + helpDescStyle.Render(description)
}
