package pipeline

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/jamiedarville/sp500-analysis/internal/model"
)

// Batcher runs one pre-sliced group of symbols through a bounded worker
// pool. Results arrive in completion order; ordering is applied later by
// the orchestrator.
type Batcher struct {
	analyzer *Analyzer
	workers  int
	log      *zap.SugaredLogger
}

// NewBatcher creates a Batcher with the given worker bound.
func NewBatcher(a *Analyzer, workers int, log *zap.SugaredLogger) *Batcher {
	if workers < 1 {
		workers = 1
	}
	return &Batcher{analyzer: a, workers: workers, log: log}
}

// Process drains the whole batch before returning. A symbol's failure is
// recorded and never aborts its siblings.
func (b *Batcher) Process(ctx context.Context, batch []string) ([]model.Record, []string) {
	jobs := make(chan string)

	var (
		mu      sync.Mutex
		records []model.Record
		failed  []string
		wg      sync.WaitGroup
	)

	for i := 0; i < b.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for symbol := range jobs {
				rec, err := b.analyzer.Analyze(ctx, symbol)
				if err != nil {
					if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
						continue
					}
					b.log.Errorf("%s: %v", symbol, err)
					mu.Lock()
					failed = append(failed, symbol)
					mu.Unlock()
					continue
				}
				if rec != nil {
					mu.Lock()
					records = append(records, *rec)
					mu.Unlock()
				}
			}
		}()
	}

feed:
	for _, symbol := range batch {
		select {
		case jobs <- symbol:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	return records, failed
}
