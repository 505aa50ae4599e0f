package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/liftlog/internal/cli"
)

var weekCmd = &cobra.Command{
	Use:   "week [date]",
	Short: "Monday-first week overview containing date (default today)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runWeek,
}

func init() {
	rootCmd.AddCommand(weekCmd)
}

func runWeek(cmd *cobra.Command, args []string) error {
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
	w := s.tr.Week()
	days := w.Days()

	fmt.Println()
	fmt.Println(cli.RenderTitle("WEEK  " + cli.FormatWeekRange(w.Start, w.End())))
	fmt.Println()
	fmt.Println(cli.RenderWeekStrip(days, s.tr.Selected(), s.tr.DaysWithLogs()))
	fmt.Println()

	rows := make([][]string, 0, len(days))
	total := 0
	for _, d := range days {
		logs := s.tr.LogsFor(d)
		total += len(logs)

		seen := map[int64]bool{}
		var names []string
		for _, l := range logs {
			if !seen[l.ExerciseID] {
				seen[l.ExerciseID] = true
				names = append(names, s.tr.ExerciseName(l.ExerciseID))
			}
		}
		rows = append(rows, []string{
			d.Format("2006-01-02"),
			cli.FormatDayOfWeek(d.Weekday()),
			strconv.Itoa(len(logs)),
			strings.Join(names, ", "),
		})
	}
	rows = append(rows, []string{"---"}, []string{"Total", "", strconv.Itoa(total), ""})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers:    []string{"Date", "Day", "Sets", "Exercises"},
		Rows:       rows,
		RightAlign: []int{2},
	}))
	return nil
}
