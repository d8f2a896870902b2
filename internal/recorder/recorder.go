package recorder

import (
	"time"

	"github.com/jamiedarville/sp500-analysis/internal/model"
)

// RunSummary describes one completed scan.
type RunSummary struct {
	ID           string // uuid
	StartedAt    time.Time
	Preset       string
	Threshold    float64
	UniverseSize int
	RecordCount  int
	FailureCount int
}

// Recorder persists scan history for later analysis.
type Recorder interface {
	RecordRun(run *RunSummary, records []model.Record) error
	Close() error
}

// NoopRecorder is used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordRun(_ *RunSummary, _ []model.Record) error { return nil }
func (n *NoopRecorder) Close() error                                    { return nil }
