package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/liftlog/internal/tui/theme"
)

// Tab represents a single tab in the tab bar.
type Tab struct {
	Name   string
	Key    rune
	KeyPos int // position of the shortcut letter in the name (-1 if not in name)
}

// Tabs defines all available tabs.
var Tabs = []Tab{
	{Name: "Logs", Key: '1', KeyPos: -1},
	{Name: "Exercises", Key: '2', KeyPos: -1},
}

// tabPadding is the horizontal padding on each side of a tab label.
const tabPadding = 1

func tabLabel(tab Tab, active bool) (plain, key string) {
	if active || tab.KeyPos >= 0 {
		return tab.Name, ""
	}
	return tab.Name, string(tab.Key)
}

// TabVisualWidth returns the rendered width of a tab, padding included.
func TabVisualWidth(tab Tab, active bool) int {
	name, key := tabLabel(tab, active)
	w := lipgloss.Width(name) + 2*tabPadding
	if key != "" {
		w += 3 // "[k]"
	}
	return w
}

// RenderTabBar renders the tab bar with the given active index on one row
// padded to width. Tabs are separated by a single column.
func RenderTabBar(activeIdx int, width int) string {
	t := theme.Active

	activeStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.SurfaceHover).
		Bold(true).
		Padding(0, tabPadding)

	inactiveStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	dimKeyStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	sep := lipgloss.NewStyle().Background(t.Surface).Render(" ")
	pad := strings.Repeat(" ", tabPadding)

	parts := make([]string, 0, len(Tabs))
	for i, tab := range Tabs {
		if i == activeIdx {
			parts = append(parts, activeStyle.Render(tab.Name))
			continue
		}
		name, key := tabLabel(tab, false)
		rendered := inactiveStyle.Render(pad + name)
		if key != "" {
			rendered += dimKeyStyle.Render("[") + keyStyle.Render(key) + dimKeyStyle.Render("]")
		}
		rendered += inactiveStyle.Render(pad)
		parts = append(parts, rendered)
	}

	row := strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(t.Surface).Width(width).Render(row)
}

// TabIdxByKey returns the tab index for a given key press, or -1.
func TabIdxByKey(key rune) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}
