package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/liftlog/internal/model"
)

// Theme colors (Flexoki Dark)
var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorRed       = lipgloss.Color("#D14D41")
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	markStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	errStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)
)

// Table represents a bordered text table for CLI output.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Widths  []int // optional column widths, auto-calculated if nil
	// RightAlign lists columns rendered right-aligned, e.g. numbers.
	RightAlign []int
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(45).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderMuted renders secondary text such as empty-state hints.
func RenderMuted(s string) string {
	return mutedStyle.Render(s)
}

// RenderError renders an error line.
func RenderError(err error) string {
	return errStyle.Render("Error: " + err.Error())
}

func (t Table) columnWidths() []int {
	n := len(t.Headers)
	if n == 0 && len(t.Rows) > 0 {
		n = len(t.Rows[0])
	}
	widths := make([]int, n)
	if t.Widths != nil {
		copy(widths, t.Widths)
		return widths
	}
	for i, h := range t.Headers {
		widths[i] = max(widths[i], lipgloss.Width(h))
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < n {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}
	return widths
}

func rule(left, mid, right string, widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("─", w+2)
	}
	return dimStyle.Render(left+strings.Join(parts, mid)+right) + "\n"
}

func pad(s string, w int, right bool) string {
	gap := w - lipgloss.Width(s)
	if gap < 0 {
		gap = 0
	}
	if right {
		return " " + strings.Repeat(" ", gap) + s + " "
	}
	return " " + s + strings.Repeat(" ", gap) + " "
}

// RenderTable renders a bordered table with headers and rows. A row
// holding the single cell "---" renders as a separator.
func RenderTable(t Table) string {
	if len(t.Rows) == 0 && len(t.Headers) == 0 {
		return ""
	}

	widths := t.columnWidths()
	rightCols := make(map[int]bool, len(t.RightAlign))
	for _, c := range t.RightAlign {
		rightCols[c] = true
	}
	sep := dimStyle.Render("│")

	var b strings.Builder
	if t.Title != "" {
		b.WriteString("  " + headerStyle.Render(t.Title) + "\n")
	}

	b.WriteString(rule("╭", "┬", "╮", widths))

	if len(t.Headers) > 0 {
		b.WriteString(sep)
		for i, h := range t.Headers {
			b.WriteString(headerStyle.Render(pad(h, widths[i], rightCols[i])))
			b.WriteString(sep)
		}
		b.WriteString("\n")
		b.WriteString(rule("├", "┼", "┤", widths))
	}

	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == "---" {
			b.WriteString(rule("├", "┼", "┤", widths))
			continue
		}
		b.WriteString(sep)
		for i := range widths {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			b.WriteString(valueStyle.Render(pad(cell, widths[i], rightCols[i])))
			b.WriteString(sep)
		}
		b.WriteString("\n")
	}

	b.WriteString(rule("╰", "┴", "╯", widths))
	return b.String()
}

// RenderWeekStrip renders a one-line week overview: weekday letters with
// the selected day highlighted and a dot under days holding sets.
func RenderWeekStrip(days [7]time.Time, selected time.Time, marked map[model.DayKey]bool) string {
	var top, bottom strings.Builder
	for _, d := range days {
		label := fmt.Sprintf(" %s%2d ", FormatDayLetter(d.Weekday()), d.Day())
		if model.SameDay(d, selected) {
			top.WriteString(selectedStyle.Render(label))
		} else {
			top.WriteString(valueStyle.Render(label))
		}

		dot := "     "
		if marked[model.DayOf(d)] {
			dot = "  " + markStyle.Render("•") + "  "
		}
		bottom.WriteString(dot)
	}
	return top.String() + "\n" + bottom.String()
}
