package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/liftlog/internal/cli"
)

var dayCmd = &cobra.Command{
	Use:   "day [date]",
	Short: "Sets logged on one day (default today)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDay,
}

func init() {
	rootCmd.AddCommand(dayCmd)
}

func runDay(cmd *cobra.Command, args []string) error {
	day, err := cli.ParseDay(firstArg(args), time.Now())
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.tr.SelectDate(ctx, day); err != nil {
		return err
	}
	logs := s.tr.LogsForSelected()

	fmt.Println()
	fmt.Println(cli.RenderTitle(cli.FormatDayLabel(day, time.Now())))
	fmt.Println()

	if len(logs) == 0 {
		fmt.Println(cli.RenderMuted("  No sets logged."))
		return nil
	}

	rows := make([][]string, 0, len(logs))
	for _, l := range logs {
		rows = append(rows, []string{
			strconv.FormatInt(l.ID, 10),
			cli.FormatTime(l.Date),
			s.tr.ExerciseName(l.ExerciseID),
			cli.FormatSet(l, s.unit()),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers:    []string{"ID", "Time", "Exercise", "Set"},
		Rows:       rows,
		RightAlign: []int{0, 3},
	}))
	return nil
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
