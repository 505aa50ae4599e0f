package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/liftlog/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Database:    %s\n", dbPath(cfg))
	fmt.Printf("    Weight unit: %s\n", cfg.General.WeightUnit)
	fmt.Println()

	fmt.Println("  [Cache]")
	fmt.Printf("    Cache empty days: %v\n", cfg.Cache.CacheEmptyDays)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Log]")
	fmt.Printf("    Level: %s\n", cfg.Log.Level)
	logFile := cfg.Log.File
	if logFile == "" {
		logFile = config.DefaultLogPath()
	}
	fmt.Printf("    File:  %s (TUI only)\n", logFile)
	fmt.Println()

	fmt.Println("  Run `liftlog setup` to reconfigure.")
	return nil
}
