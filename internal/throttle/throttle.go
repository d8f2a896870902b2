// Package throttle enforces minimum spacing between outbound provider calls
// and retries rate-limited calls with exponential backoff.
package throttle

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jamiedarville/sp500-analysis/internal/config"
	"github.com/jamiedarville/sp500-analysis/internal/provider"
)

// ErrRetriesExhausted wraps the last rate-limit error once every retry
// attempt has been spent. The caller records the symbol as failed and moves
// on; nothing past this boundary may abort a batch.
var ErrRetriesExhausted = errors.New("retries exhausted")

// Throttle is shared by every concurrent worker of a scan. The spacing
// between any two successive call starts is drawn uniformly at random from
// the preset delay range on each acquisition, so concurrent workers never
// fall into synchronized bursts.
type Throttle struct {
	delayMin    time.Duration
	delayMax    time.Duration
	maxRetries  int
	backoffBase time.Duration
	log         *zap.SugaredLogger

	mu       sync.Mutex
	next     time.Time // earliest start time for the next call
	requests int64
}

// New builds a Throttle from a preset.
func New(p config.Preset, log *zap.SugaredLogger) *Throttle {
	if p.MaxRetries < 1 {
		p.MaxRetries = 1
	}
	return &Throttle{
		delayMin:    p.DelayMin,
		delayMax:    p.DelayMax,
		maxRetries:  p.MaxRetries,
		backoffBase: p.BackoffBase,
		log:         log,
	}
}

// Wait blocks until the caller may start the next outbound call, then
// reserves the slot. The read-modify-write of the shared timestamp happens
// under the mutex so concurrent callers cannot both observe a stale value
// and proceed together.
func (t *Throttle) Wait(ctx context.Context) error {
	spacing := t.delayMin
	if t.delayMax > t.delayMin {
		spacing += time.Duration(rand.Int63n(int64(t.delayMax - t.delayMin)))
	}

	t.mu.Lock()
	start := time.Now()
	if t.next.After(start) {
		start = t.next
	}
	t.next = start.Add(spacing)
	t.requests++
	n := t.requests
	t.mu.Unlock()

	if n%50 == 0 {
		t.log.Infof("issued %d provider requests so far", n)
	}

	if d := time.Until(start); d > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(d):
		}
	}
	return nil
}

// Requests returns the cumulative number of acquired call slots.
func (t *Throttle) Requests() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.requests
}

// Do acquires a slot and runs op. Rate-limited failures are retried up to
// the preset's MaxRetries invocations with backoff base*2^attempt plus up to
// a second of jitter, re-acquiring the slot each time. Any other error
// propagates immediately without retry.
func (t *Throttle) Do(ctx context.Context, label string, op func() error) error {
	var lastErr error
	for attempt := 0; attempt < t.maxRetries; attempt++ {
		if err := t.Wait(ctx); err != nil {
			return err
		}
		err := op()
		if err == nil {
			return nil
		}
		if !provider.IsRateLimited(err) {
			return err
		}
		lastErr = err
		delay := t.backoffBase*time.Duration(1<<attempt) + time.Duration(rand.Int63n(int64(time.Second)))
		t.log.Warnf("%s: rate limited on attempt %d/%d, backing off %s",
			label, attempt+1, t.maxRetries, delay.Round(time.Millisecond))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return fmt.Errorf("%s: %w: %w", label, ErrRetriesExhausted, lastErr)
}
