package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/liftlog/internal/cli"
	"github.com/theirongolddev/liftlog/internal/input"
)

var exercisesCmd = &cobra.Command{
	Use:     "exercises [query]",
	Aliases: []string{"ex"},
	Short:   "List the exercise catalog, optionally filtered",
	Args:    cobra.MaximumNArgs(1),
	RunE:    runExercisesList,
}

var exercisesAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add an exercise",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runExercisesAdd,
}

var exercisesRenameCmd = &cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Rename an exercise",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runExercisesRename,
}

var exercisesRmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete an exercise (its logged sets are kept)",
	Args:    cobra.ExactArgs(1),
	RunE:    runExercisesRm,
}

func init() {
	exercisesCmd.AddCommand(exercisesAddCmd, exercisesRenameCmd, exercisesRmCmd)
	rootCmd.AddCommand(exercisesCmd)
}

func runExercisesList(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	list := s.tr.SearchExercises(firstArg(args), 0)
	if len(list) == 0 {
		if len(args) > 0 {
			fmt.Printf("  No exercises match %q.\n", args[0])
		} else {
			fmt.Println("  No exercises yet. Add one with `liftlog exercises add <name>`.")
		}
		return nil
	}

	rows := make([][]string, 0, len(list))
	for _, e := range list {
		rows = append(rows, []string{strconv.FormatInt(e.ID, 10), e.Name})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:      fmt.Sprintf("Exercises (%d)", len(list)),
		Headers:    []string{"ID", "Name"},
		Rows:       rows,
		RightAlign: []int{0},
	}))
	return nil
}

func runExercisesAdd(cmd *cobra.Command, args []string) error {
	e, err := input.ParseExercise(strings.Join(args, " "))
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	id, err := s.tr.AddExercise(ctx, e.Name)
	if err != nil {
		return err
	}
	report("  Added #%d %s\n", id, e.Name)
	return nil
}

func runExercisesRename(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	e, err := input.ParseExercise(strings.Join(args[1:], " "))
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	if _, err := s.tr.ExerciseByID(ctx, id); err != nil {
		return notFound(err, "exercise", id)
	}
	if err := s.tr.EditExercise(ctx, id, e.Name); err != nil {
		return err
	}
	report("  Renamed #%d to %s\n", id, e.Name)
	return nil
}

func runExercisesRm(cmd *cobra.Command, args []string) error {
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

	e, err := s.tr.ExerciseByID(ctx, id)
	if err != nil {
		return notFound(err, "exercise", id)
	}
	if err := s.tr.DeleteExercise(ctx, id); err != nil {
		return err
	}
	report("  Deleted %s\n", e.Name)
	return nil
}
