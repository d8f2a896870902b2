package pipeline

import (
	"context"
	"math/rand"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/jamiedarville/sp500-analysis/internal/config"
	"github.com/jamiedarville/sp500-analysis/internal/model"
)

// Result is the outcome of a full universe scan. Failed holds symbols that
// exhausted retries or hit unclassified errors; it is reported separately
// from symbols that simply did not qualify.
type Result struct {
	Records []model.Record
	Failed  []string
	Scanned int
	Batches int
}

// Orchestrator drives the Batcher across the whole universe: fixed-size
// slices processed strictly one after another, with a random pause between
// them. Sequential batches are the backpressure protecting the shared rate
// limit; only within-batch work is concurrent.
type Orchestrator struct {
	batcher *Batcher
	preset  config.Preset
	log     *zap.SugaredLogger
}

// NewOrchestrator creates an Orchestrator.
func NewOrchestrator(b *Batcher, preset config.Preset, log *zap.SugaredLogger) *Orchestrator {
	return &Orchestrator{batcher: b, preset: preset, log: log}
}

// Run scans all symbols and returns the flagged records sorted ascending by
// percent change (most severe drop first). Cancellation stops the loop at
// the next batch boundary; the in-flight batch drains first.
func (o *Orchestrator) Run(ctx context.Context, symbols []string) *Result {
	size := o.preset.BatchSize
	if size < 1 {
		size = 1
	}
	total := (len(symbols) + size - 1) / size
	res := &Result{}

	for start := 0; start < len(symbols); start += size {
		if ctx.Err() != nil {
			o.log.Warnf("scan interrupted after %d/%d symbols", res.Scanned, len(symbols))
			break
		}
		end := start + size
		if end > len(symbols) {
			end = len(symbols)
		}
		batch := symbols[start:end]
		current := start/size + 1

		o.log.Infof("processing batch %d/%d (%d tickers)", current, total, len(batch))
		records, failed := o.batcher.Process(ctx, batch)
		res.Records = append(res.Records, records...)
		res.Failed = append(res.Failed, failed...)
		res.Scanned += len(batch)
		res.Batches++
		o.log.Infof("batch %d complete: %d/%d symbols processed, %d drops in this batch",
			current, res.Scanned, len(symbols), len(records))

		if current < total {
			pause := o.preset.BatchDelayMin
			if spread := o.preset.BatchDelayMax - o.preset.BatchDelayMin; spread > 0 {
				pause += time.Duration(rand.Int63n(int64(spread)))
			}
			o.log.Infof("waiting %s before next batch", pause.Round(100*time.Millisecond))
			select {
			case <-ctx.Done():
			case <-time.After(pause):
			}
		}
	}

	sort.SliceStable(res.Records, func(i, j int) bool {
		return res.Records[i].PercentChange < res.Records[j].PercentChange
	})
	return res
}
