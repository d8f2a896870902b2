// Package pipeline implements the rate-limited batch fetch/analyze pipeline:
// per-symbol analysis, bounded intra-batch concurrency and strictly
// sequential batches.
package pipeline

import (
	"context"

	"go.uber.org/zap"

	"github.com/jamiedarville/sp500-analysis/internal/calculator"
	"github.com/jamiedarville/sp500-analysis/internal/model"
	"github.com/jamiedarville/sp500-analysis/internal/provider"
	"github.com/jamiedarville/sp500-analysis/internal/throttle"
)

// Analyzer evaluates a single symbol against the drop threshold, gating
// every provider call through the shared throttle.
type Analyzer struct {
	provider  provider.Provider
	throttle  *throttle.Throttle
	threshold float64 // negative percent, e.g. -1.0
	lookback  int     // calendar days of history
	maxNews   int
	log       *zap.SugaredLogger
}

// NewAnalyzer creates an Analyzer.
func NewAnalyzer(p provider.Provider, t *throttle.Throttle, threshold float64, lookbackDays, maxNews int, log *zap.SugaredLogger) *Analyzer {
	return &Analyzer{
		provider:  p,
		throttle:  t,
		threshold: threshold,
		lookback:  lookbackDays,
		maxNews:   maxNews,
		log:       log,
	}
}

// Analyze returns a Record when the symbol's latest day-over-day change is
// at or below the threshold, nil when it does not qualify or has
// insufficient history, and an error when processing failed. The
// descriptive-info call is skipped entirely for non-qualifying symbols.
func (a *Analyzer) Analyze(ctx context.Context, symbol string) (*model.Record, error) {
	var bars []model.Bar
	err := a.throttle.Do(ctx, symbol+" history", func() error {
		var err error
		bars, err = a.provider.DailyBars(ctx, symbol, a.lookback)
		return err
	})
	if err != nil {
		return nil, err
	}
	if len(bars) < 2 {
		a.log.Debugf("%s: insufficient history (%d bars), skipping", symbol, len(bars))
		return nil, nil
	}

	previous := bars[len(bars)-2].Close
	current := bars[len(bars)-1].Close
	if previous == 0 {
		a.log.Debugf("%s: zero previous close, skipping", symbol)
		return nil, nil
	}
	change := calculator.PercentChange(previous, current)
	if change > a.threshold {
		return nil, nil
	}

	var info *model.Info
	err = a.throttle.Do(ctx, symbol+" quote", func() error {
		var err error
		info, err = a.provider.Quote(ctx, symbol)
		return err
	})
	if err != nil {
		return nil, err
	}
	if info == nil {
		info = &model.Info{}
	}

	rec := &model.Record{
		Symbol:        symbol,
		CompanyName:   info.CompanyName,
		Sector:        info.Sector,
		CurrentPrice:  current,
		PreviousClose: previous,
		PercentChange: change,
		Volume:        bars[len(bars)-1].Volume,
		AvgVolume:     calculator.MeanVolume(bars),
		Indicators:    calculator.Technical(bars),
		Ratios:        calculator.Fundamentals(info),
	}
	if rec.CompanyName == "" {
		rec.CompanyName = symbol
	}
	if rec.Sector == "" {
		rec.Sector = "Unknown"
	}
	if info.MarketCap != nil {
		rec.MarketCap = *info.MarketCap
	}
	if info.FiftyTwoWeekHigh != nil {
		rec.FiftyTwoWeekHigh = *info.FiftyTwoWeekHigh
	}
	if info.FiftyTwoWeekLow != nil {
		rec.FiftyTwoWeekLow = *info.FiftyTwoWeekLow
	}
	rec.DistanceFromHigh = calculator.DistanceFromHigh(current, rec.FiftyTwoWeekHigh)
	return rec, nil
}

// News fetches recent headlines for a symbol through the rate gate. Errors
// degrade to an empty list; headlines are decoration, not data.
func (a *Analyzer) News(ctx context.Context, symbol string) []model.NewsItem {
	var items []model.NewsItem
	err := a.throttle.Do(ctx, symbol+" news", func() error {
		var err error
		items, err = a.provider.News(ctx, symbol, a.maxNews)
		return err
	})
	if err != nil {
		a.log.Warnf("%s: news fetch failed: %v", symbol, err)
		return nil
	}
	return items
}
