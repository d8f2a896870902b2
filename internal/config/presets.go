package config

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Preset is a named bundle of concurrency and delay parameters trading
// throughput against provider rate-limit risk. Immutable after load.
type Preset struct {
	Name          string
	MaxWorkers    int
	BatchSize     int
	DelayMin      time.Duration
	DelayMax      time.Duration
	BatchDelayMin time.Duration
	BatchDelayMax time.Duration
	MaxRetries    int
	BackoffBase   time.Duration
}

// The numeric values are tuned defaults, not documented provider limits.
var presets = map[string]Preset{
	"aggressive": {
		Name:          "aggressive",
		MaxWorkers:    5,
		BatchSize:     100,
		DelayMin:      200 * time.Millisecond,
		DelayMax:      1 * time.Second,
		BatchDelayMin: 1 * time.Second,
		BatchDelayMax: 3 * time.Second,
		MaxRetries:    3,
		BackoffBase:   1 * time.Second,
	},
	"balanced": {
		Name:          "balanced",
		MaxWorkers:    3,
		BatchSize:     50,
		DelayMin:      500 * time.Millisecond,
		DelayMax:      2 * time.Second,
		BatchDelayMin: 2 * time.Second,
		BatchDelayMax: 5 * time.Second,
		MaxRetries:    3,
		BackoffBase:   1 * time.Second,
	},
	"conservative": {
		Name:          "conservative",
		MaxWorkers:    1,
		BatchSize:     20,
		DelayMin:      1 * time.Second,
		DelayMax:      3 * time.Second,
		BatchDelayMin: 5 * time.Second,
		BatchDelayMax: 10 * time.Second,
		MaxRetries:    3,
		BackoffBase:   1 * time.Second,
	},
	"ultra_conservative": {
		Name:          "ultra_conservative",
		MaxWorkers:    1,
		BatchSize:     10,
		DelayMin:      2 * time.Second,
		DelayMax:      5 * time.Second,
		BatchDelayMin: 10 * time.Second,
		BatchDelayMax: 20 * time.Second,
		MaxRetries:    3,
		BackoffBase:   1 * time.Second,
	},
}

// PresetNames returns the valid preset names, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PresetByName looks up a preset. Unknown names are rejected with the list
// of valid alternatives.
func PresetByName(name string) (Preset, error) {
	p, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Preset{}, fmt.Errorf("unknown preset %q (valid: %s)", name, strings.Join(PresetNames(), ", "))
	}
	return p, nil
}
