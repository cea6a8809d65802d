package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config carries the resolved paths and defaults for one vault.
// Optional overrides live in <vault>/.liftlog/config.yaml.
type Config struct {
	VaultPath   string
	DBPath      string
	StatePath   string
	DefaultUnit string
	ChartWindow int
}

const (
	defaultUnit        = "kg"
	defaultChartWindow = 9
)

func New(vaultPath string) (Config, error) {
	if vaultPath == "" {
		return Config{}, fmt.Errorf("vault path is required")
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(filepath.Join(vaultPath, ".liftlog"))
	v.SetDefault("db_file", "liftlog.db")
	v.SetDefault("state_file", "state.db")
	v.SetDefault("default_unit", defaultUnit)
	v.SetDefault("chart_window", defaultChartWindow)

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	unit := strings.ToLower(v.GetString("default_unit"))
	if unit != "kg" && unit != "lb" {
		return Config{}, fmt.Errorf("default_unit must be kg or lb, got %q", unit)
	}
	window := v.GetInt("chart_window")
	if window < 1 {
		return Config{}, fmt.Errorf("chart_window must be positive, got %d", window)
	}

	return Config{
		VaultPath:   vaultPath,
		DBPath:      filepath.Join(vaultPath, ".liftlog", v.GetString("db_file")),
		StatePath:   filepath.Join(vaultPath, ".liftlog", v.GetString("state_file")),
		DefaultUnit: unit,
		ChartWindow: window,
	}, nil
}
