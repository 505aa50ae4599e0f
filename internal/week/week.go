// Package week computes Monday-first week windows and keeps the pageable
// set of windows behind the date selector.
package week

import (
	"time"

	"github.com/theirongolddev/liftlog/internal/model"
)

// Length is the number of days in a window.
const Length = 7

// StartOfWeek returns local midnight of the Monday at or before d, in d's
// location.
func StartOfWeek(d time.Time) time.Time {
	offset := (int(d.Weekday()) + 6) % 7 // Monday=0 .. Sunday=6
	y, m, day := d.Date()
	return time.Date(y, m, day-offset, 0, 0, 0, 0, d.Location())
}

// WeekDays returns the seven calendar days starting at start.
func WeekDays(start time.Time) [Length]time.Time {
	var days [Length]time.Time
	y, m, d := start.Date()
	for i := range days {
		days[i] = time.Date(y, m, d+i, 0, 0, 0, 0, start.Location())
	}
	return days
}

// Window is one Monday-first week.
type Window struct {
	Start time.Time
}

// WindowFor returns the window containing d.
func WindowFor(d time.Time) Window {
	return Window{Start: StartOfWeek(d)}
}

// Days returns the window's dates, Monday first.
func (w Window) Days() [Length]time.Time {
	return WeekDays(w.Start)
}

// End returns the window's Sunday.
func (w Window) End() time.Time {
	return w.Days()[Length-1]
}

// Key returns the day key of the window's Monday.
func (w Window) Key() model.DayKey {
	return model.DayOf(w.Start)
}

// Contains reports whether d falls on one of the window's days.
func (w Window) Contains(d time.Time) bool {
	return StartOfWeek(d.In(w.Start.Location())).Equal(w.Start)
}
