// Package model defines the workout tracker's core data types.
package model

import "time"

// Exercise is a catalog entry that logs refer to by ID.
type Exercise struct {
	ID   int64
	Name string
}

// ExerciseLog is a single logged set.
type ExerciseLog struct {
	ID         int64
	ExerciseID int64
	Date       time.Time
	Weight     float64
	Reps       int
}

// Day returns the calendar day the set was logged on.
func (l ExerciseLog) Day() DayKey {
	return DayOf(l.Date)
}

// NewExerciseLog is the insert payload for a set; the store assigns the ID.
type NewExerciseLog struct {
	ExerciseID int64
	Date       time.Time
	Weight     float64
	Reps       int
}

// UnknownExerciseName is shown for logs whose exercise was deleted.
const UnknownExerciseName = "Unknown exercise"

// ToMillis converts a time to the epoch-millisecond form stored on disk.
func ToMillis(t time.Time) int64 {
	return t.UnixMilli()
}

// FromMillis converts stored epoch milliseconds back to local time.
func FromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).Local()
}
