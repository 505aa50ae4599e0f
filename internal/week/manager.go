package week

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"
)

// pageReach is how far past the viewport's edge the next page looks.
const pageReach = 3

// DayFetcher loads one day into the log cache.
type DayFetcher interface {
	Fetch(ctx context.Context, date time.Time, force bool) (bool, error)
}

// Manager keeps the week windows the user has visited, sorted by start
// date with no duplicates, and the index of the one in view.
//
// Manager is not safe for concurrent use.
type Manager struct {
	base     time.Time
	windows  []Window
	viewport int
	fetch    DayFetcher
}

// NewManager returns a manager showing base's week. Nothing is fetched
// until Refresh or the first viewport change.
func NewManager(base time.Time, fetch DayFetcher) *Manager {
	return &Manager{
		base:    base,
		windows: []Window{WindowFor(base)},
		fetch:   fetch,
	}
}

// Base returns the date the manager was built around.
func (m *Manager) Base() time.Time { return m.base }

// Viewport returns the window in view.
func (m *Manager) Viewport() Window { return m.windows[m.viewport] }

// ViewportIndex returns the index of the window in view.
func (m *Manager) ViewportIndex() int { return m.viewport }

// Len returns the number of known windows.
func (m *Manager) Len() int { return len(m.windows) }

// Windows returns a copy of the known windows in chronological order.
func (m *Manager) Windows() []Window {
	out := make([]Window, len(m.windows))
	copy(out, m.windows)
	return out
}

// PageWeek moves the viewport one calendar week forward (dir > 0) or
// back (dir < 0). The target is the week of the date pageReach days past
// the viewport's edge; it is reused when already known and inserted in
// order otherwise.
func (m *Manager) PageWeek(ctx context.Context, dir int) error {
	if dir == 0 {
		return nil
	}

	cur := m.Viewport()
	var ref time.Time
	if dir > 0 {
		e := cur.End()
		ref = time.Date(e.Year(), e.Month(), e.Day()+pageReach, 0, 0, 0, 0, e.Location())
	} else {
		s := cur.Start
		ref = time.Date(s.Year(), s.Month(), s.Day()-pageReach, 0, 0, 0, 0, s.Location())
	}

	m.show(WindowFor(ref))
	return m.Refresh(ctx)
}

// JumpTo brings date's week into view. It does nothing when date is
// already in view. Weeks are taken in the base date's location whatever
// location date carries.
func (m *Manager) JumpTo(ctx context.Context, date time.Time) error {
	if m.Viewport().Contains(date) {
		return nil
	}
	m.show(WindowFor(date.In(m.base.Location())))
	return m.Refresh(ctx)
}

// Refresh fetches every day in view without forcing, so days already
// cached are not queried again.
func (m *Manager) Refresh(ctx context.Context) error {
	if m.fetch == nil {
		return nil
	}
	for _, d := range m.Viewport().Days() {
		if _, err := m.fetch.Fetch(ctx, d, false); err != nil {
			return fmt.Errorf("fetching %s: %w", d.Format("2006-01-02"), err)
		}
	}
	return nil
}

// show points the viewport at w, inserting it in sorted position if it
// is new.
func (m *Manager) show(w Window) {
	i, found := m.find(w.Start)
	if !found {
		m.windows = append(m.windows, Window{})
		copy(m.windows[i+1:], m.windows[i:])
		m.windows[i] = w
		slog.Debug("added week window", "start", w.Key(), "windows", len(m.windows))
	}
	m.viewport = i
}

// find returns the index of the window starting at start, or the index
// it would be inserted at.
func (m *Manager) find(start time.Time) (int, bool) {
	i := sort.Search(len(m.windows), func(i int) bool {
		return !m.windows[i].Start.Before(start)
	})
	return i, i < len(m.windows) && m.windows[i].Start.Equal(start)
}
