package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, SourceCSV, cfg.Universe.Source)
	assert.Equal(t, "us_public_tickers.csv", cfg.Universe.CSVPath)
	assert.Equal(t, -1.0, cfg.Scan.DropThreshold)
	assert.Equal(t, 30, cfg.Scan.LookbackDays)
	assert.Equal(t, "balanced", cfg.Scan.Preset)
	assert.Equal(t, 5, cfg.Scan.TopDetail)
	assert.Equal(t, 3, cfg.Scan.MaxNews)
	assert.Equal(t, 30, cfg.Provider.TimeoutSeconds)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FileValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `
universe:
  source: sp500
scan:
  drop_threshold: -2.5
  preset: conservative
  lookback_days: 60
database:
  sqlite_path: /tmp/scan.db
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, SourceSP500, cfg.Universe.Source)
	assert.Equal(t, -2.5, cfg.Scan.DropThreshold)
	assert.Equal(t, "conservative", cfg.Scan.Preset)
	assert.Equal(t, 60, cfg.Scan.LookbackDays)
	assert.Equal(t, "/tmp/scan.db", cfg.Database.SQLitePath)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scan:\n  preset: aggressive\n"), 0o644))

	t.Setenv("RATE_LIMIT_PRESET", "ultra_conservative")
	t.Setenv("DROP_THRESHOLD", "-3.0")
	t.Setenv("UNIVERSE_SOURCE", "sp500")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ultra_conservative", cfg.Scan.Preset)
	assert.Equal(t, -3.0, cfg.Scan.DropThreshold)
	assert.Equal(t, SourceSP500, cfg.Universe.Source)
}

func TestLoad_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scan: [not a mapping"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)
		return cfg
	}

	t.Run("positive threshold rejected", func(t *testing.T) {
		cfg := base()
		cfg.Scan.DropThreshold = 1.0
		assert.ErrorContains(t, cfg.Validate(), "drop_threshold")
	})

	t.Run("zero threshold rejected", func(t *testing.T) {
		cfg := base()
		cfg.Scan.DropThreshold = 0
		assert.ErrorContains(t, cfg.Validate(), "drop_threshold")
	})

	t.Run("unknown source rejected", func(t *testing.T) {
		cfg := base()
		cfg.Universe.Source = "nasdaq"
		assert.ErrorContains(t, cfg.Validate(), "universe.source")
	})

	t.Run("csv source requires path", func(t *testing.T) {
		cfg := base()
		cfg.Universe.CSVPath = ""
		assert.ErrorContains(t, cfg.Validate(), "csv_path")
	})

	t.Run("short lookback rejected", func(t *testing.T) {
		cfg := base()
		cfg.Scan.LookbackDays = 1
		assert.ErrorContains(t, cfg.Validate(), "lookback_days")
	})

	t.Run("unknown preset rejected", func(t *testing.T) {
		cfg := base()
		cfg.Scan.Preset = "turbo"
		assert.ErrorContains(t, cfg.Validate(), "unknown preset")
	})
}

func TestPresetByName(t *testing.T) {
	p, err := PresetByName("conservative")
	require.NoError(t, err)
	assert.Equal(t, 1, p.MaxWorkers)
	assert.Equal(t, 20, p.BatchSize)
	assert.Equal(t, 1*time.Second, p.DelayMin)
	assert.Equal(t, 3*time.Second, p.DelayMax)
	assert.Equal(t, 3, p.MaxRetries)

	// Case and surrounding space are forgiven.
	p, err = PresetByName("  Balanced ")
	require.NoError(t, err)
	assert.Equal(t, 3, p.MaxWorkers)
	assert.Equal(t, 50, p.BatchSize)
}

func TestPresetByName_Unknown(t *testing.T) {
	_, err := PresetByName("turbo")
	require.Error(t, err)
	assert.ErrorContains(t, err, "turbo")
	assert.ErrorContains(t, err, "aggressive, balanced, conservative, ultra_conservative")
}

func TestPresetNames_Sorted(t *testing.T) {
	assert.Equal(t, []string{"aggressive", "balanced", "conservative", "ultra_conservative"}, PresetNames())
}

func TestPresetValues(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		batch   int
	}{
		{"aggressive", 5, 100},
		{"balanced", 3, 50},
		{"conservative", 1, 20},
		{"ultra_conservative", 1, 10},
	}
	for _, tt := range tests {
		p, err := PresetByName(tt.name)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.workers, p.MaxWorkers, tt.name)
		assert.Equal(t, tt.batch, p.BatchSize, tt.name)
		assert.Equal(t, tt.name, p.Name)
	}
}
