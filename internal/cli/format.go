// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/theirongolddev/liftlog/internal/model"
)

// FormatWeight formats a weight with one decimal at most.
// e.g., 80 -> "80 kg", 82.5 -> "82.5 kg"
func FormatWeight(w float64, unit string) string {
	s := strconv.FormatFloat(w, 'f', 1, 64)
	if len(s) > 2 && s[len(s)-2:] == ".0" {
		s = s[:len(s)-2]
	}
	if unit == "" {
		return s
	}
	return s + " " + unit
}

// FormatSet formats one logged set, e.g. "82.5 kg × 5".
func FormatSet(l model.ExerciseLog, unit string) string {
	return fmt.Sprintf("%s × %d", FormatWeight(l.Weight, unit), l.Reps)
}

// FormatTime formats the clock time a set was logged at.
func FormatTime(t time.Time) string {
	return t.Format("15:04")
}

// FormatDayOfWeek returns a 3-letter day abbreviation.
func FormatDayOfWeek(d time.Weekday) string {
	days := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	if d >= 0 && int(d) < len(days) {
		return days[d]
	}
	return "???"
}

// FormatDayLetter returns the single-letter weekday shown in the week bar.
func FormatDayLetter(d time.Weekday) string {
	return FormatDayOfWeek(d)[:1]
}

// FormatDayLabel returns the day header: "Today (Jun 10)" for the
// current day, "June 10" otherwise, with the year when it differs from now's.
func FormatDayLabel(d, now time.Time) string {
	if model.SameDay(d, now) {
		return "Today (" + d.Format("Jan 2") + ")"
	}
	if d.Year() != now.Year() {
		return d.Format("January 2, 2006")
	}
	return d.Format("January 2")
}

// FormatWeekRange formats a Monday-first window, e.g. "Jun 10 – Jun 16".
func FormatWeekRange(start, end time.Time) string {
	if start.Year() != end.Year() {
		return start.Format("Jan 2, 2006") + " – " + end.Format("Jan 2, 2006")
	}
	return start.Format("Jan 2") + " – " + end.Format("Jan 2")
}

// ParseDay parses a YYYY-MM-DD argument as local midnight. "today" and
// "yesterday" are accepted relative to now.
func ParseDay(s string, now time.Time) (time.Time, error) {
	switch s {
	case "", "today":
		return model.StartOfDay(now), nil
	case "yesterday":
		return model.StartOfDay(now).AddDate(0, 0, -1), nil
	}
	d, err := model.DayKey(s).Time()
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return d, nil
}
