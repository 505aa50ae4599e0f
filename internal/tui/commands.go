package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/theirongolddev/liftlog/internal/tracker"
)

// startedMsg is sent once the database is open and the tracker has
// loaded its first week, or failed to.
type startedMsg struct {
	err error
}

// doneMsg reports the outcome of a tracker operation.
type doneMsg struct {
	status string
	err    error
}

// startCmd opens the database and starts the tracker in the background.
func startCmd(tr *tracker.Tracker, open func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if open != nil {
			if err := open(ctx); err != nil {
				return startedMsg{err: err}
			}
		}
		return startedMsg{err: tr.Start(ctx)}
	}
}

// run executes a tracker operation off the update loop. fn returns the
// status line to show on success.
func (a App) run(fn func(ctx context.Context) (string, error)) tea.Cmd {
	return func() tea.Msg {
		status, err := fn(context.Background())
		return doneMsg{status: status, err: err}
	}
}
