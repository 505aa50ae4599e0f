package model

import "time"

// DayKeyLayout is the layout of a DayKey.
const DayKeyLayout = "2006-01-02"

// DayKey identifies a calendar day, e.g. "2024-06-10".
type DayKey string

// DayOf returns the key of t's calendar day in t's own location.
func DayOf(t time.Time) DayKey {
	return DayKey(t.Format(DayKeyLayout))
}

// String implements fmt.Stringer.
func (k DayKey) String() string {
	return string(k)
}

// Time parses the key as local midnight.
func (k DayKey) Time() (time.Time, error) {
	return time.ParseInLocation(DayKeyLayout, string(k), time.Local)
}

// StartOfDay returns midnight of t's day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DayBounds returns the first and last millisecond of t's calendar day.
// Both bounds are inclusive.
func DayBounds(t time.Time) (time.Time, time.Time) {
	start := StartOfDay(t)
	end := start.AddDate(0, 0, 1).Add(-time.Millisecond)
	return start, end
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return DayOf(a) == DayOf(b.In(a.Location()))
}

// AtClock returns day's calendar date at clock's time of day, in day's
// location. New sets for a past day keep the moment they were entered.
func AtClock(day, clock time.Time) time.Time {
	y, m, d := day.Date()
	c := clock.In(day.Location())
	return time.Date(y, m, d, c.Hour(), c.Minute(), c.Second(), 0, day.Location())
}
