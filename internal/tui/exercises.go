package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/liftlog/internal/model"
	"github.com/theirongolddev/liftlog/internal/tui/components"
	"github.com/theirongolddev/liftlog/internal/tui/theme"
)

func newSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "search exercises"
	ti.Prompt = "/ "
	ti.CharLimit = 64
	return ti
}

func (a App) visibleExercises() []model.Exercise {
	return a.tr.SearchExercises(a.query, 0)
}

func (a App) cursorExercise() (model.Exercise, bool) {
	list := a.visibleExercises()
	if a.exCursor < 0 || a.exCursor >= len(list) {
		return model.Exercise{}, false
	}
	return list[a.exCursor], true
}

func (a App) updateExercisesKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "j", "down":
		return a.moveCursor(1), nil
	case "k", "up":
		return a.moveCursor(-1), nil
	case "g":
		a.exCursor = 0
		return a, nil
	case "G":
		a.exCursor = len(a.visibleExercises()) - 1
		a.clampCursors()
		return a, nil
	case "/":
		a.searching = true
		a.search.SetValue(a.query)
		return a, a.search.Focus()
	case "esc":
		a.query = ""
		a.exCursor = 0
		return a, nil
	case "n", "a":
		return a, a.openForm(formNewExercise)
	case "e", "enter":
		if _, ok := a.cursorExercise(); ok {
			return a, a.openForm(formRenameExercise)
		}
	case "d", "x":
		if _, ok := a.cursorExercise(); ok {
			return a, a.openForm(formDeleteExercise)
		}
	case "i":
		if e, ok := a.cursorExercise(); ok {
			return a, a.lastEntryCmd(e.ID)
		}
	}
	return a, nil
}

// updateSearch handles key events while the search box has focus. The
// list filters as the user types.
func (a App) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.searching = false
		a.search.Blur()
		return a, nil
	case "esc":
		a.searching = false
		a.search.Blur()
		a.query = ""
		a.exCursor = 0
		return a, nil
	}

	var cmd tea.Cmd
	a.search, cmd = a.search.Update(msg)
	a.query = strings.TrimSpace(a.search.Value())
	a.exCursor = 0
	return a, cmd
}

func (a App) renderExercisesTab(cw, h int) string {
	t := theme.Active

	hintStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Background)
	queryStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Background).Bold(true)

	var top string
	switch {
	case a.searching:
		top = " " + a.search.View()
	case a.query != "":
		top = hintStyle.Render(" Filter: ") + queryStyle.Render(a.query) + hintStyle.Render("  (esc to clear)")
	default:
		top = hintStyle.Render(" Press / to search")
	}

	list := a.visibleExercises()
	inner := components.CardInnerWidth(cw)
	maxRows := max(h-4, 1) // search line, card border and title

	var body string
	if len(list) == 0 {
		msg := "No exercises yet. Press n to add one."
		if a.query != "" {
			msg = "No exercises match."
		}
		body = lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render(msg)
	} else {
		start := 0
		if a.exCursor >= maxRows {
			start = a.exCursor - maxRows + 1
		}
		rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Width(inner)
		curStyle := rowStyle.Background(t.SurfaceHover).Bold(true)

		var rows []string
		for i := start; i < len(list) && i < start+maxRows; i++ {
			name := truncStr(list[i].Name, inner-2)
			if i == a.exCursor {
				rows = append(rows, curStyle.Render("▸ "+name))
			} else {
				rows = append(rows, rowStyle.Render("  "+name))
			}
		}
		body = strings.Join(rows, "\n")
	}

	title := "Exercises"
	if n := len(list); n > 0 {
		title = "Exercises (" + strconv.Itoa(n) + ")"
	}
	return top + "\n" + components.ContentCard(title, body, cw)
}
