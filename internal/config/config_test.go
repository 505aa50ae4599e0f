package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if Exists() {
		t.Fatal("Exists() = true for an empty config dir")
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("Load() = %+v, want defaults", cfg)
	}
}

func TestSaveThenLoad(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.General.WeightUnit = "lb"
	cfg.General.DBPath = "/tmp/lifts.db"
	cfg.Cache.CacheEmptyDays = true
	cfg.Appearance.Theme = "catppuccin-mocha"
	cfg.Log.Level = "debug"

	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !Exists() {
		t.Fatal("Exists() = false after Save")
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != cfg {
		t.Fatalf("Load() = %+v, want %+v", got, cfg)
	}
}

func TestLoadRejectsUnknownUnit(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path := filepath.Join(dir, "liftlog", "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[general]\nweight_unit = \"stone\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "WeightUnit") {
		t.Fatalf("Load() error = %v, want invalid WeightUnit", err)
	}
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path := ConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[general\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(); err == nil || !strings.HasPrefix(err.Error(), "parsing config") {
		t.Fatalf("Load() error = %v, want parsing error", err)
	}
}

func TestDBPathPrecedence(t *testing.T) {
	data := t.TempDir()
	t.Setenv("XDG_DATA_HOME", data)
	t.Setenv("LIFTLOG_DB", "")

	cfg := DefaultConfig()
	if got, want := DBPath(cfg), filepath.Join(data, "liftlog", "workouts.db"); got != want {
		t.Errorf("DBPath(default) = %q, want %q", got, want)
	}

	cfg.General.DBPath = "/srv/lifts.db"
	if got := DBPath(cfg); got != "/srv/lifts.db" {
		t.Errorf("DBPath(config) = %q", got)
	}

	t.Setenv("LIFTLOG_DB", "/env/lifts.db")
	if got := DBPath(cfg); got != "/env/lifts.db" {
		t.Errorf("DBPath(env) = %q", got)
	}
}

func TestLoadAcceptsEveryParsedLogLevel(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "warning", "error"} {
		cfg := DefaultConfig()
		cfg.Log.Level = level
		if err := cfg.Validate(); err != nil {
			t.Errorf("level %q: %v", level, err)
		}
	}

	cfg := DefaultConfig()
	cfg.Log.Level = "verbose"
	if err := cfg.Validate(); err == nil {
		t.Error("level \"verbose\" should be rejected")
	}
}
