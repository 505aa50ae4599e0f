package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/liftlog/internal/config"
	"github.com/theirongolddev/liftlog/internal/store"
	"github.com/theirongolddev/liftlog/internal/tracker"
	"github.com/theirongolddev/liftlog/internal/tui"
	"github.com/theirongolddev/liftlog/internal/tui/theme"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive workout log (default)",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	needSetup := !config.Exists()
	cfg := loadConfig()
	closeLog := setupFileLogger(cfg)
	defer closeLog()

	theme.SetActive(cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	g := store.New(dbPath(cfg))
	defer func() { _ = g.Close() }()

	tr := tracker.New(g, trackerOptions(cfg))
	app := tui.NewApp(tr, g.Init, tui.Options{
		WeightUnit: cfg.General.WeightUnit,
		DBPath:     g.Path(),
		NeedSetup:  needSetup,
	})
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
