// Package cmd implements the liftlog CLI commands.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/liftlog/internal/cli"
	"github.com/theirongolddev/liftlog/internal/config"
	"github.com/theirongolddev/liftlog/internal/logger"
	"github.com/theirongolddev/liftlog/internal/store"
	"github.com/theirongolddev/liftlog/internal/tracker"
)

var (
	flagDB       string
	flagLogLevel string
	flagQuiet    bool
)

var rootCmd = &cobra.Command{
	Use:           "liftlog",
	Short:         "Workout log for the terminal",
	Long:          "Log sets by day, browse them a week at a time, and keep a catalog of exercises.",
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, cli.RenderError(err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Database file (overrides config and LIFTLOG_DB)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress informational output")
}

// loadConfig reads the config file. A broken file is reported and
// defaults are used so the log stays usable.
func loadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil {
		if !flagQuiet {
			fmt.Fprintf(os.Stderr, "  %s, using defaults\n", err)
		}
		return config.DefaultConfig()
	}
	return cfg
}

func logLevel(cfg config.Config) string {
	if flagLogLevel != "" {
		return flagLogLevel
	}
	return cfg.Log.Level
}

// setupCLILogger logs to stderr at warn unless --log-level says otherwise.
func setupCLILogger(cfg config.Config) {
	level := logLevel(cfg)
	if flagLogLevel == "" && level == "info" {
		level = "warn"
	}
	var w io.Writer = os.Stderr
	if flagQuiet {
		w = io.Discard
	}
	logger.Setup(level, w, logger.Text)
}

// setupFileLogger logs JSON to the configured file. The returned closer
// is never nil.
func setupFileLogger(cfg config.Config) func() {
	path := cfg.Log.File
	if path == "" {
		path = config.DefaultLogPath()
	}
	f, err := logger.OpenFile(path)
	if err != nil {
		logger.Setup(logLevel(cfg), io.Discard, logger.JSON)
		return func() {}
	}
	logger.Setup(logLevel(cfg), f, logger.JSON)
	return func() { _ = f.Close() }
}

func dbPath(cfg config.Config) string {
	if flagDB != "" {
		return flagDB
	}
	return config.DBPath(cfg)
}

func trackerOptions(cfg config.Config) tracker.Options {
	return tracker.Options{CacheEmptyDays: cfg.Cache.CacheEmptyDays}
}

// session is an open database with a started tracker, shared by the
// one-shot commands.
type session struct {
	cfg     config.Config
	gateway *store.Gateway
	tr      *tracker.Tracker
}

func (s *session) Close() {
	if err := s.gateway.Close(); err != nil {
		slog.Warn("closing database", "error", err)
	}
}

func (s *session) unit() string {
	return s.cfg.General.WeightUnit
}

// openSession loads config, opens the database and starts the tracker.
func openSession(ctx context.Context) (*session, error) {
	cfg := loadConfig()
	setupCLILogger(cfg)

	path := dbPath(cfg)
	g, err := store.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	tr := tracker.New(g, trackerOptions(cfg))
	if err := tr.Start(ctx); err != nil {
		_ = g.Close()
		return nil, err
	}
	return &session{cfg: cfg, gateway: g, tr: tr}, nil
}
