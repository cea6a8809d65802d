package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, vault, body string) {
	t.Helper()
	dir := filepath.Join(vault, ".liftlog")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestNewAppliesDefaults(t *testing.T) {
	t.Parallel()

	vault := t.TempDir()
	cfg, err := New(vault)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if cfg.DefaultUnit != "kg" {
		t.Fatalf("default unit = %q, want kg", cfg.DefaultUnit)
	}
	if cfg.ChartWindow != 9 {
		t.Fatalf("chart window = %d, want 9", cfg.ChartWindow)
	}
	if want := filepath.Join(vault, ".liftlog", "liftlog.db"); cfg.DBPath != want {
		t.Fatalf("db path = %q, want %q", cfg.DBPath, want)
	}
}

func TestNewReadsOverrides(t *testing.T) {
	t.Parallel()

	vault := t.TempDir()
	writeConfigFile(t, vault, "default_unit: lb\nchart_window: 20\ndb_file: custom.db\n")

	cfg, err := New(vault)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if cfg.DefaultUnit != "lb" {
		t.Fatalf("default unit = %q, want lb", cfg.DefaultUnit)
	}
	if cfg.ChartWindow != 20 {
		t.Fatalf("chart window = %d, want 20", cfg.ChartWindow)
	}
	if want := filepath.Join(vault, ".liftlog", "custom.db"); cfg.DBPath != want {
		t.Fatalf("db path = %q, want %q", cfg.DBPath, want)
	}
}

func TestNewRejectsBadUnit(t *testing.T) {
	t.Parallel()

	vault := t.TempDir()
	writeConfigFile(t, vault, "default_unit: stone\n")

	if _, err := New(vault); err == nil {
		t.Fatal("expected error for unknown unit")
	}
}

func TestNewRejectsNonPositiveChartWindow(t *testing.T) {
	t.Parallel()

	vault := t.TempDir()
	writeConfigFile(t, vault, "chart_window: 0\n")

	if _, err := New(vault); err == nil {
		t.Fatal("expected error for zero chart window")
	}
}

func TestNewRequiresVaultPath(t *testing.T) {
	t.Parallel()

	if _, err := New(""); err == nil {
		t.Fatal("expected error for empty vault path")
	}
}
