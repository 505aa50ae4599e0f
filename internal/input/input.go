// Package input parses and validates form values before they reach the
// tracker.
package input

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrValidation is wrapped by every error this package returns.
var ErrValidation = errors.New("invalid input")

var validate = validator.New()

// Limits on accepted values.
const (
	MaxWeight  = 2000
	MaxReps    = 1000
	MaxNameLen = 100
)

// Log is a validated set ready to be stored.
type Log struct {
	ExerciseID int64   `validate:"gt=0"`
	Weight     float64 `validate:"gte=0,lte=2000"`
	Reps       int     `validate:"gt=0,lte=1000"`
}

// Exercise is a validated exercise name.
type Exercise struct {
	Name string `validate:"required,max=100"`
}

// ParseWeight reads a weight typed by the user. A comma decimal
// separator is accepted and the value is rounded to one decimal.
func ParseWeight(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return 0, fmt.Errorf("%w: weight is required", ErrValidation)
	}
	w, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(w) || math.IsInf(w, 0) {
		return 0, fmt.Errorf("%w: weight %q is not a number", ErrValidation, s)
	}
	return RoundWeight(w), nil
}

// RoundWeight rounds w to one decimal.
func RoundWeight(w float64) float64 {
	return math.Round(w*10) / 10
}

// ParseReps reads a whole rep count.
func ParseReps(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: reps is required", ErrValidation)
	}
	r, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: reps %q is not a whole number", ErrValidation, s)
	}
	return r, nil
}

// ParseLog parses and validates the add/edit set form.
func ParseLog(exerciseID int64, weight, reps string) (Log, error) {
	w, err := ParseWeight(weight)
	if err != nil {
		return Log{}, err
	}
	r, err := ParseReps(reps)
	if err != nil {
		return Log{}, err
	}
	l := Log{ExerciseID: exerciseID, Weight: w, Reps: r}
	if err := validate.Struct(l); err != nil {
		return Log{}, describe(err)
	}
	return l, nil
}

// ParseExercise trims and validates an exercise name.
func ParseExercise(name string) (Exercise, error) {
	e := Exercise{Name: strings.Join(strings.Fields(name), " ")}
	if err := validate.Struct(e); err != nil {
		return Exercise{}, describe(err)
	}
	return e, nil
}

// describe turns the first validator failure into a readable ErrValidation.
func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	fe := verrs[0]
	field := strings.ToLower(fe.Field())
	if fe.Field() == "ExerciseID" {
		return fmt.Errorf("%w: choose an exercise", ErrValidation)
	}
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%w: %s is required", ErrValidation, field)
	case "gt":
		return fmt.Errorf("%w: %s must be greater than %s", ErrValidation, field, fe.Param())
	case "gte":
		return fmt.Errorf("%w: %s must be at least %s", ErrValidation, field, fe.Param())
	case "lte":
		return fmt.Errorf("%w: %s must be at most %s", ErrValidation, field, fe.Param())
	case "max":
		return fmt.Errorf("%w: %s must be at most %s characters", ErrValidation, field, fe.Param())
	default:
		return fmt.Errorf("%w: %s failed %s", ErrValidation, field, fe.Tag())
	}
}
