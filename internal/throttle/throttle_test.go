package throttle

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jamiedarville/sp500-analysis/internal/config"
	"github.com/jamiedarville/sp500-analysis/internal/provider"
)

func testPreset() config.Preset {
	return config.Preset{
		DelayMin:    20 * time.Millisecond,
		DelayMax:    40 * time.Millisecond,
		MaxRetries:  3,
		BackoffBase: time.Millisecond,
	}
}

func TestWait_MinimumSpacing(t *testing.T) {
	th := New(testPreset(), zap.NewNop().Sugar())
	ctx := context.Background()

	var starts []time.Time
	for i := 0; i < 5; i++ {
		require.NoError(t, th.Wait(ctx))
		starts = append(starts, time.Now())
	}

	// Allow a little scheduler jitter below the configured 20ms floor.
	for i := 1; i < len(starts); i++ {
		gap := starts[i].Sub(starts[i-1])
		assert.GreaterOrEqual(t, gap, 15*time.Millisecond, "gap %d", i)
	}
	assert.Equal(t, int64(5), th.Requests())
}

func TestWait_ConcurrentCallersStaySpaced(t *testing.T) {
	th := New(testPreset(), zap.NewNop().Sugar())
	ctx := context.Background()

	var (
		mu     sync.Mutex
		starts []time.Time
		wg     sync.WaitGroup
	)
	for w := 0; w < 3; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 3; i++ {
				require.NoError(t, th.Wait(ctx))
				mu.Lock()
				starts = append(starts, time.Now())
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Len(t, starts, 9)
	sort.Slice(starts, func(i, j int) bool { return starts[i].Before(starts[j]) })
	for i := 1; i < len(starts); i++ {
		gap := starts[i].Sub(starts[i-1])
		assert.GreaterOrEqual(t, gap, 15*time.Millisecond, "gap %d", i)
	}
}

func TestWait_Cancelled(t *testing.T) {
	th := New(testPreset(), zap.NewNop().Sugar())
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, th.Wait(ctx))
	cancel()
	err := th.Wait(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDo_RetriesRateLimitExactlyMaxTimes(t *testing.T) {
	th := New(testPreset(), zap.NewNop().Sugar())

	calls := 0
	err := th.Do(context.Background(), "AAPL history", func() error {
		calls++
		return &provider.RateLimitError{StatusCode: 429, Message: "slow down"}
	})

	assert.Equal(t, 3, calls)
	assert.ErrorIs(t, err, ErrRetriesExhausted)
	var rl *provider.RateLimitError
	assert.ErrorAs(t, err, &rl)
}

func TestDo_NonRateLimitErrorNotRetried(t *testing.T) {
	th := New(testPreset(), zap.NewNop().Sugar())

	boom := errors.New("malformed response")
	calls := 0
	err := th.Do(context.Background(), "AAPL quote", func() error {
		calls++
		return boom
	})

	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrRetriesExhausted)
}

func TestDo_SucceedsAfterTransientRateLimit(t *testing.T) {
	th := New(testPreset(), zap.NewNop().Sugar())

	calls := 0
	err := th.Do(context.Background(), "AAPL history", func() error {
		calls++
		if calls == 1 {
			return &provider.RateLimitError{StatusCode: 429}
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}
