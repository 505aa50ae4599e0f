package cmd

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/liftlog/internal/config"
	"github.com/theirongolddev/liftlog/internal/tui"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Choose theme and weight unit",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	// Load existing config or defaults
	cfg := loadConfig()

	themeName := cfg.Appearance.Theme
	unit := cfg.General.WeightUnit
	if err := tui.SetupForm(&themeName, &unit).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup cancelled, nothing saved.")
			return nil
		}
		return err
	}

	cfg.Appearance.Theme = themeName
	cfg.General.WeightUnit = unit
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `liftlog setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}
