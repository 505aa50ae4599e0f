package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/liftlog/internal/tui/theme"
)

// RenderStatusBar renders the bottom status bar: key hints on the left,
// the last action's outcome on the right.
func RenderStatusBar(width int, hints, status string, isErr bool) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	statusStyle := style.Foreground(t.Green)
	if isErr {
		statusStyle = style.Foreground(t.Red)
	}

	left := " " + hints
	right := ""
	if status != "" {
		right = status + " "
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		// Hints give way to the status message.
		left = ""
		padding = width - lipgloss.Width(right)
		if padding < 0 {
			padding = 0
		}
	}

	return style.Render(left) +
		style.Width(padding).Render("") +
		statusStyle.Render(right)
}
