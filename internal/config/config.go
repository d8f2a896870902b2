package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Universe source names accepted in configuration.
const (
	SourceCSV   = "csv"
	SourceSP500 = "sp500"
)

// Config holds all application configuration.
type Config struct {
	Universe struct {
		Source  string `yaml:"source"`
		CSVPath string `yaml:"csv_path"`
	} `yaml:"universe"`
	Scan struct {
		DropThreshold float64 `yaml:"drop_threshold"`
		LookbackDays  int     `yaml:"lookback_days"`
		Preset        string  `yaml:"preset"`
		TopDetail     int     `yaml:"top_detail"`
		MaxNews       int     `yaml:"max_news"`
	} `yaml:"scan"`
	Provider struct {
		TimeoutSeconds int    `yaml:"timeout_seconds"`
		Proxy          string `yaml:"proxy"`
	} `yaml:"provider"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Schedule struct {
		Cron string `yaml:"cron"`
	} `yaml:"schedule"`
	Log struct {
		File string `yaml:"file"`
	} `yaml:"log"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error; defaults still apply.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("UNIVERSE_SOURCE"); v != "" {
		cfg.Universe.Source = v
	}
	if v := os.Getenv("TICKERS_CSV"); v != "" {
		cfg.Universe.CSVPath = v
	}
	if v := os.Getenv("DROP_THRESHOLD"); v != "" {
		if t, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Scan.DropThreshold = t
		}
	}
	if v := os.Getenv("RATE_LIMIT_PRESET"); v != "" {
		cfg.Scan.Preset = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Provider.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("SCAN_CRON"); v != "" {
		cfg.Schedule.Cron = v
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		cfg.Log.File = v
	}

	// Defaults
	if cfg.Universe.Source == "" {
		cfg.Universe.Source = SourceCSV
	}
	if cfg.Universe.CSVPath == "" {
		cfg.Universe.CSVPath = "us_public_tickers.csv"
	}
	if cfg.Scan.DropThreshold == 0 {
		cfg.Scan.DropThreshold = -1.0
	}
	if cfg.Scan.LookbackDays == 0 {
		cfg.Scan.LookbackDays = 30
	}
	if cfg.Scan.Preset == "" {
		cfg.Scan.Preset = "balanced"
	}
	if cfg.Scan.TopDetail == 0 {
		cfg.Scan.TopDetail = 5
	}
	if cfg.Scan.MaxNews == 0 {
		cfg.Scan.MaxNews = 3
	}
	if cfg.Provider.TimeoutSeconds == 0 {
		cfg.Provider.TimeoutSeconds = 30
	}

	return cfg, nil
}

// Validate checks that all fields hold usable values.
func (c *Config) Validate() error {
	if c.Universe.Source != SourceCSV && c.Universe.Source != SourceSP500 {
		return fmt.Errorf("universe.source must be %q or %q, got %q", SourceCSV, SourceSP500, c.Universe.Source)
	}
	if c.Universe.Source == SourceCSV && c.Universe.CSVPath == "" {
		return fmt.Errorf("universe.csv_path is required for the csv source")
	}
	if c.Scan.DropThreshold >= 0 {
		return fmt.Errorf("scan.drop_threshold must be negative, got %.2f", c.Scan.DropThreshold)
	}
	if c.Scan.LookbackDays < 2 {
		return fmt.Errorf("scan.lookback_days must be at least 2, got %d", c.Scan.LookbackDays)
	}
	if _, err := PresetByName(c.Scan.Preset); err != nil {
		return err
	}
	return nil
}
