package components

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/liftlog/internal/model"
	"github.com/theirongolddev/liftlog/internal/tui/theme"
)

// WeekBarHeight is the number of rows RenderWeekBar produces.
const WeekBarHeight = 3

var dayLetters = [7]string{"M", "T", "W", "T", "F", "S", "S"}

// RenderWeekBar renders a Monday-first week as seven equal columns: the
// weekday letter, the day number and a dot for days with sets. The
// selected day is filled with the accent color; base is ringed.
func RenderWeekBar(days [7]time.Time, selected, base time.Time, marked map[model.DayKey]bool, width int) string {
	t := theme.Active
	widths := LayoutRow(width, len(days))

	cell := lipgloss.NewStyle().Background(t.Background).Align(lipgloss.Center)
	letterStyle := cell.Foreground(t.TextDim)
	numStyle := cell.Foreground(t.TextPrimary)
	baseStyle := cell.Foreground(t.AccentBright).Bold(true)
	selStyle := cell.Foreground(t.Background).Background(t.Accent).Bold(true)
	dotStyle := cell.Foreground(t.Green)

	var letters, nums, dots []string
	for i, d := range days {
		w := widths[i]
		letters = append(letters, letterStyle.Width(w).Render(dayLetters[i]))

		num := strconv.Itoa(d.Day())
		switch {
		case model.SameDay(d, selected):
			nums = append(nums, selStyle.Width(w).Render(" "+num+" "))
		case model.SameDay(d, base):
			nums = append(nums, baseStyle.Width(w).Render("("+num+")"))
		default:
			nums = append(nums, numStyle.Width(w).Render(num))
		}

		dot := " "
		if marked[model.DayOf(d)] {
			dot = "•"
		}
		dots = append(dots, dotStyle.Width(w).Render(dot))
	}

	return strings.Join([]string{
		strings.Join(letters, ""),
		strings.Join(nums, ""),
		strings.Join(dots, ""),
	}, "\n")
}

// WeekBarDayAtX returns the day column under x for a bar of the given
// width, or -1 outside it.
func WeekBarDayAtX(x, width int) int {
	if x < 0 {
		return -1
	}
	pos := 0
	for i, w := range LayoutRow(width, 7) {
		if x < pos+w {
			return i
		}
		pos += w
	}
	return -1
}
