package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/liftlog/internal/cli"
	"github.com/theirongolddev/liftlog/internal/model"
	"github.com/theirongolddev/liftlog/internal/store"
	"github.com/theirongolddev/liftlog/internal/tui/components"
	"github.com/theirongolddev/liftlog/internal/tui/theme"
)

func (a App) updateLogsKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "left", "h":
		return a.navigate(func(ctx context.Context) error { return a.tr.ShiftDay(ctx, -1) })
	case "right", "l":
		return a.navigate(func(ctx context.Context) error { return a.tr.ShiftDay(ctx, 1) })
	case "[", "H":
		return a.navigate(func(ctx context.Context) error { return a.tr.PageWeek(ctx, -1) })
	case "]", "L":
		return a.navigate(func(ctx context.Context) error { return a.tr.PageWeek(ctx, 1) })
	case "t":
		return a.navigate(a.tr.GoToday)
	case "j", "down":
		return a.moveCursor(1), nil
	case "k", "up":
		return a.moveCursor(-1), nil
	case "a":
		if len(a.tr.Exercises()) == 0 {
			a.setStatus("Add an exercise first (tab 2)", nil)
			return a, nil
		}
		return a, a.openForm(formAddLog)
	case "e", "enter":
		if _, ok := a.cursorLog(); ok {
			return a, a.openForm(formEditLog)
		}
	case "d", "x":
		if _, ok := a.cursorLog(); ok {
			return a, a.openForm(formDeleteLog)
		}
	case "i":
		if l, ok := a.cursorLog(); ok {
			return a, a.lastEntryCmd(l.ExerciseID)
		}
	}
	return a, nil
}

func (a App) navigate(fn func(ctx context.Context) error) (tea.Model, tea.Cmd) {
	a.logCursor = 0
	return a, a.run(func(ctx context.Context) (string, error) {
		return "", fn(ctx)
	})
}

func (a App) cursorLog() (model.ExerciseLog, bool) {
	logs := a.tr.LogsForSelected()
	if a.logCursor < 0 || a.logCursor >= len(logs) {
		return model.ExerciseLog{}, false
	}
	return logs[a.logCursor], true
}

// lastEntryCmd looks up the most recent set for an exercise.
func (a App) lastEntryCmd(exerciseID int64) tea.Cmd {
	name := a.tr.ExerciseName(exerciseID)
	unit := a.opts.WeightUnit
	return a.run(func(ctx context.Context) (string, error) {
		l, err := a.tr.LatestLog(ctx, exerciseID)
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Sprintf("No sets logged for %s yet", name), nil
		}
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Last %s: %s on %s", name, cli.FormatSet(l, unit), l.Date.Format("Jan 2, 2006")), nil
	})
}

func (a App) renderLogsTab(cw, h int) string {
	t := theme.Active
	selected := a.tr.Selected()
	win := a.tr.Week()

	navStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Background)
	rangeStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Background).Bold(true)
	dayStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Background).Bold(true)
	countStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Background)

	rangeLine := navStyle.Render("‹ ") +
		rangeStyle.Render(cli.FormatWeekRange(win.Start, win.End())) +
		navStyle.Render(" ›")
	rangeLine = lipgloss.PlaceHorizontal(cw, lipgloss.Center, rangeLine,
		lipgloss.WithWhitespaceBackground(t.Background))

	bar := components.RenderWeekBar(win.Days(), selected, a.tr.Base(), a.tr.DaysWithLogs(), cw)

	logs := a.tr.LogsForSelected()
	label := dayStyle.Render(" "+cli.FormatDayLabel(selected, time.Now())) +
		countStyle.Render(fmt.Sprintf("  %d %s", len(logs), plural(len(logs), "set", "sets")))

	used := 1 + components.WeekBarHeight + 2 // range, bar, blank, label
	card := components.ContentCard("", a.renderSetList(logs, components.CardInnerWidth(cw), h-used-2), cw)

	return strings.Join([]string{rangeLine, bar, "", label, card}, "\n")
}

func (a App) renderSetList(logs []model.ExerciseLog, w, maxRows int) string {
	t := theme.Active

	if len(logs) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).
			Render("No sets logged. Press a to add one.")
	}

	timeStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	unknownStyle := lipgloss.NewStyle().Foreground(t.Orange).Italic(true)
	setStyle := lipgloss.NewStyle().Foreground(t.AccentBright)

	maxRows = max(maxRows, 1)
	start := 0
	if a.logCursor >= maxRows {
		start = a.logCursor - maxRows + 1
	}

	var rows []string
	for i := start; i < len(logs) && i < start+maxRows; i++ {
		l := logs[i]
		set := cli.FormatSet(l, a.opts.WeightUnit)
		nameW := max(w-lipgloss.Width(set)-9, 4)

		name := a.tr.ExerciseName(l.ExerciseID)
		ns := nameStyle
		if name == model.UnknownExerciseName {
			ns = unknownStyle
		}

		bg := t.Surface
		marker := "  "
		if i == a.logCursor {
			bg = t.SurfaceHover
			marker = "▸ "
		}
		row := timeStyle.Background(bg).Render(marker+cli.FormatTime(l.Date)+" ") +
			ns.Background(bg).Width(nameW).Render(truncStr(name, nameW)) +
			setStyle.Background(bg).Render(" "+set)
		rows = append(rows, lipgloss.NewStyle().Background(bg).Width(w).Render(row))
	}
	return strings.Join(rows, "\n")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
