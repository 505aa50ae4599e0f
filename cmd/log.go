package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/liftlog/internal/cli"
	"github.com/theirongolddev/liftlog/internal/input"
	"github.com/theirongolddev/liftlog/internal/model"
	"github.com/theirongolddev/liftlog/internal/store"
	"github.com/theirongolddev/liftlog/internal/tracker"
)

var flagLogDate string

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Add, edit and remove logged sets",
}

var logAddCmd = &cobra.Command{
	Use:   "add <exercise> <weight> <reps>",
	Short: "Log a set (exercise by id or name)",
	Args:  cobra.ExactArgs(3),
	RunE:  runLogAdd,
}

var logEditCmd = &cobra.Command{
	Use:   "edit <id> <weight> <reps>",
	Short: "Change a set's weight and reps",
	Args:  cobra.ExactArgs(3),
	RunE:  runLogEdit,
}

var logRmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a set",
	Args:    cobra.ExactArgs(1),
	RunE:    runLogRm,
}

var logLastCmd = &cobra.Command{
	Use:   "last <exercise>",
	Short: "Show the most recent set of an exercise",
	Args:  cobra.ExactArgs(1),
	RunE:  runLogLast,
}

func init() {
	logAddCmd.Flags().StringVar(&flagLogDate, "date", "", "Day to log on: YYYY-MM-DD, today or yesterday")
	logCmd.AddCommand(logAddCmd, logEditCmd, logRmCmd, logLastCmd)
	rootCmd.AddCommand(logCmd)
}

func runLogAdd(cmd *cobra.Command, args []string) error {
	now := time.Now()
	day, err := cli.ParseDay(flagLogDate, now)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	e, err := resolveExercise(ctx, s.tr, args[0])
	if err != nil {
		return err
	}
	l, err := input.ParseLog(e.ID, args[1], args[2])
	if err != nil {
		return err
	}

	id, key, err := s.tr.AddExerciseLog(ctx, model.NewExerciseLog{
		ExerciseID: e.ID,
		Date:       model.AtClock(day, now),
		Weight:     l.Weight,
		Reps:       l.Reps,
	})
	if err != nil {
		return err
	}

	report("  Logged #%d %s %s on %s\n", id, e.Name,
		cli.FormatSet(model.ExerciseLog{Weight: l.Weight, Reps: l.Reps}, s.unit()), key)
	return nil
}

func runLogEdit(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	// The exercise id only needs to pass validation; edits keep the set's exercise.
	l, err := input.ParseLog(1, args[1], args[2])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	key, err := s.tr.EditExerciseLog(ctx, id, l.Weight, l.Reps)
	if err != nil {
		return notFound(err, "set", id)
	}
	report("  Updated #%d on %s: %s\n", id, key,
		cli.FormatSet(model.ExerciseLog{Weight: l.Weight, Reps: l.Reps}, s.unit()))
	return nil
}

func runLogRm(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	key, err := s.tr.DeleteExerciseLog(ctx, id)
	if err != nil {
		return notFound(err, "set", id)
	}
	report("  Deleted #%d from %s\n", id, key)
	return nil
}

func runLogLast(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	e, err := resolveExercise(ctx, s.tr, args[0])
	if err != nil {
		return err
	}
	l, err := s.tr.LatestLog(ctx, e.ID)
	if errors.Is(err, store.ErrNotFound) {
		fmt.Printf("  No sets logged for %s yet\n", e.Name)
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Printf("  %s: %s on %s\n", e.Name, cli.FormatSet(l, s.unit()),
		cli.FormatDayLabel(l.Date, time.Now()))
	return nil
}

// resolveExercise accepts an id, an exact name (any case) or a search
// term that matches exactly one exercise.
func resolveExercise(ctx context.Context, tr *tracker.Tracker, arg string) (model.Exercise, error) {
	if id, err := strconv.ParseInt(arg, 10, 64); err == nil {
		e, err := tr.ExerciseByID(ctx, id)
		if err != nil {
			return model.Exercise{}, notFound(err, "exercise", id)
		}
		return e, nil
	}

	matches := tr.SearchExercises(arg, 0)
	for _, e := range matches {
		if strings.EqualFold(e.Name, strings.TrimSpace(arg)) {
			return e, nil
		}
	}
	switch len(matches) {
	case 0:
		return model.Exercise{}, fmt.Errorf("no exercise matches %q", arg)
	case 1:
		return matches[0], nil
	default:
		names := make([]string, 0, len(matches))
		for _, e := range matches {
			names = append(names, e.Name)
		}
		return model.Exercise{}, fmt.Errorf("%q matches %d exercises: %s", arg, len(matches), strings.Join(names, ", "))
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func notFound(err error, what string, id int64) error {
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("no %s with id %d", what, id)
	}
	return err
}

// report prints a confirmation unless --quiet is set.
func report(format string, args ...any) {
	if flagQuiet {
		return
	}
	fmt.Printf(format, args...)
}
