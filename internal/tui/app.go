// Package tui provides the interactive Bubble Tea workout log for liftlog.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/liftlog/internal/tracker"
	"github.com/theirongolddev/liftlog/internal/tui/components"
	"github.com/theirongolddev/liftlog/internal/tui/theme"
)

const (
	tabLogs = iota
	tabExercises
)

const (
	minTerminalWidth = 50
	maxContentWidth  = 100
	minContentHeight = 5

	// Rows above the week bar: tab bar, week range line.
	weekBarTop = 2
)

// Options configures the app.
type Options struct {
	WeightUnit string
	DBPath     string
	// NeedSetup shows the first-run form once the database is open.
	NeedSetup bool
}

// App is the root Bubble Tea model.
type App struct {
	tr   *tracker.Tracker
	open func(context.Context) error
	opts Options

	loaded  bool
	initErr error

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	status    string
	statusErr bool

	logCursor int

	exCursor  int
	searching bool
	search    textinput.Model
	query     string

	// Active huh form, if any. Values live behind a pointer because App
	// is copied on every update.
	form     *huh.Form
	formKind formKind
	formVals *formValues

	spinner spinner.Model
}

// NewApp creates the TUI model. open prepares the database and runs
// before the tracker is started; it may be nil.
func NewApp(tr *tracker.Tracker, open func(context.Context) error, opts Options) App {
	if opts.WeightUnit == "" {
		opts.WeightUnit = "kg"
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	return App{
		tr:      tr,
		open:    open,
		opts:    opts,
		spinner: sp,
		search:  newSearchInput(),
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		startCmd(a.tr, a.open),
		a.spinner.Tick,
	)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.form != nil {
			a.form = a.form.WithWidth(a.formWidth())
		}
		return a, nil

	case startedMsg:
		a.loaded = true
		a.initErr = msg.err
		if msg.err == nil && a.opts.NeedSetup {
			return a, a.openForm(formSetup)
		}
		return a, nil

	case doneMsg:
		a.setStatus(msg.status, msg.err)
		a.clampCursors()
		return a, nil

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case tea.MouseMsg:
		return a.updateMouse(msg)

	case tea.KeyMsg:
		return a.updateKey(msg)
	}

	// Forward unhandled messages to the active form (cursor blinks, etc.)
	if a.form != nil {
		return a.updateForm(msg)
	}
	if a.searching {
		var cmd tea.Cmd
		a.search, cmd = a.search.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// Global: quit
	if key == "ctrl+c" {
		return a, tea.Quit
	}

	if !a.loaded {
		return a, nil
	}

	if a.initErr != nil {
		if key == "q" || key == "esc" || key == "enter" {
			return a, tea.Quit
		}
		return a, nil
	}

	// Forms intercept all keys; esc cancels.
	if a.form != nil {
		if key == "esc" {
			a.closeForm()
			a.setStatus("Cancelled", nil)
			return a, nil
		}
		return a.updateForm(msg)
	}

	if a.searching {
		return a.updateSearch(msg)
	}

	// Help toggle
	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}

	// Dismiss help
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		return a, nil
	case "shift+tab":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		return a, nil
	case "r":
		return a, a.run(func(ctx context.Context) (string, error) {
			return "Reloaded", a.tr.Reload(ctx)
		})
	}

	if len(msg.Runes) == 1 {
		if tab := components.TabIdxByKey(msg.Runes[0]); tab >= 0 {
			a.activeTab = tab
			return a, nil
		}
	}

	if a.activeTab == tabExercises {
		return a.updateExercisesKey(key)
	}
	return a.updateLogsKey(key)
}

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !a.loaded || a.initErr != nil || a.showHelp || a.form != nil {
		return a, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		return a.moveCursor(-1), nil
	case tea.MouseButtonWheelDown:
		return a.moveCursor(1), nil
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return a, nil
		}
		if msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
			return a, nil
		}
		if a.activeTab == tabLogs && msg.Y >= weekBarTop && msg.Y < weekBarTop+components.WeekBarHeight {
			offset := (a.width - a.contentWidth()) / 2
			if i := components.WeekBarDayAtX(msg.X-offset, a.contentWidth()); i >= 0 {
				day := a.tr.Week().Days()[i]
				a.logCursor = 0
				return a, a.run(func(ctx context.Context) (string, error) {
					return "", a.tr.SelectDate(ctx, day)
				})
			}
		}
	}
	return a, nil
}

func (a App) moveCursor(delta int) App {
	if a.activeTab == tabExercises {
		a.exCursor += delta
	} else {
		a.logCursor += delta
	}
	a.clampCursors()
	return a
}

func (a *App) clampCursors() {
	if !a.loaded || a.initErr != nil {
		return
	}
	a.logCursor = clamp(a.logCursor, len(a.tr.LogsForSelected()))
	a.exCursor = clamp(a.exCursor, len(a.visibleExercises()))
}

func clamp(cursor, n int) int {
	if cursor >= n {
		cursor = n - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	return cursor
}

func (a *App) setStatus(status string, err error) {
	if err != nil {
		a.status = err.Error()
		a.statusErr = true
		return
	}
	if status != "" {
		a.status = status
		a.statusErr = false
	}
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if !a.loaded {
		return a.viewLoading()
	}

	if a.initErr != nil {
		return a.viewInitError()
	}

	if a.form != nil {
		return a.viewForm()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  liftlog needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) overlay(body string) string {
	t := theme.Active
	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(body),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewLoading() string {
	t := theme.Active

	logoStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ liftlog"))
	b.WriteString(subtitleStyle.Render(" · Workout Log"))
	b.WriteString("\n\n")
	b.WriteString(a.spinner.View())
	b.WriteString(subtitleStyle.Render(" Opening workouts database..."))

	return a.overlay(b.String())
}

func (a App) viewInitError() string {
	t := theme.Active

	titleStyle := lipgloss.NewStyle().
		Foreground(t.Red).
		Background(t.Surface).
		Bold(true)

	textStyle := lipgloss.NewStyle().
		Foreground(t.TextPrimary).
		Background(t.Surface).
		Width(min(a.width-12, 70))

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Could not open the workouts database"))
	b.WriteString("\n\n")
	b.WriteString(textStyle.Render(a.initErr.Error()))
	if a.opts.DBPath != "" {
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render("Database: " + a.opts.DBPath))
	}
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("Press q to quit"))

	return a.overlay(b.String())
}

func (a App) viewHelp() string {
	t := theme.Active

	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	sectionStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Cyan).
		Background(t.Surface).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	sections := []struct {
		title    string
		bindings []struct{ key, desc string }
	}{
		{"Days", []struct{ key, desc string }{
			{"← → h l", "Previous / Next day"},
			{"[ ] H L", "Previous / Next week"},
			{"t", "Today"},
			{"click", "Select a day in the week bar"},
		}},
		{"Sets", []struct{ key, desc string }{
			{"a", "Log a set"},
			{"e Enter", "Edit selected set"},
			{"d", "Delete selected set"},
			{"i", "Last entry for the exercise"},
		}},
		{"Exercises", []struct{ key, desc string }{
			{"/", "Search"},
			{"n", "New exercise"},
			{"e Enter", "Rename"},
			{"d", "Delete"},
		}},
		{"General", []struct{ key, desc string }{
			{"1 2 Tab", "Switch tab"},
			{"j k", "Move cursor"},
			{"r", "Reload from disk"},
			{"Esc", "Cancel form / clear search"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, s := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(s.title))
		b.WriteString("\n")
		for _, bind := range s.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-8s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return a.overlay(b.String())
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)

	hints := "[?]help  [a]dd  [q]uit"
	if a.activeTab == tabExercises {
		hints = "[?]help  [/]search  [n]ew  [q]uit"
	}
	statusBar := components.RenderStatusBar(w, hints, a.status, a.statusErr)

	contentH := max(h-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	switch a.activeTab {
	case tabExercises:
		content = a.renderExercisesTab(cw, contentH)
	default:
		content = a.renderLogsTab(cw, contentH)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Helpers ────────────────────────────────────────────────────

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
	}
	return strings.Join(lines, "\n")
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}
