package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jamiedarville/sp500-analysis/internal/model"
)

// Provider defines the interface for the per-symbol market data source.
type Provider interface {
	DailyBars(ctx context.Context, symbol string, days int) ([]model.Bar, error)
	Quote(ctx context.Context, symbol string) (*model.Info, error)
	News(ctx context.Context, symbol string, max int) ([]model.NewsItem, error)
	Name() string
}

// RateLimitError marks a provider response that should be retried with
// backoff rather than treated as a hard failure.
type RateLimitError struct {
	StatusCode int
	Message    string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited: status %d: %s", e.StatusCode, e.Message)
}

// IsRateLimited reports whether err is throttling-related. Besides typed
// errors, textual 429 / rate-limit markers are recognized because the
// provider sometimes buries them inside generic error strings.
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}
	var rl *RateLimitError
	if errors.As(err, &rl) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "too many requests")
}
