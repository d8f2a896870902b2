package provider

import (
	"context"

	"github.com/jamiedarville/sp500-analysis/internal/model"
)

// Mock returns controllable data for development and testing. Unset hooks
// fall back to empty results.
type Mock struct {
	BarsFn func(symbol string) ([]model.Bar, error)
	InfoFn func(symbol string) (*model.Info, error)
	NewsFn func(symbol string) ([]model.NewsItem, error)
}

func (m *Mock) Name() string { return "mock" }

func (m *Mock) DailyBars(_ context.Context, symbol string, _ int) ([]model.Bar, error) {
	if m.BarsFn != nil {
		return m.BarsFn(symbol)
	}
	return nil, nil
}

func (m *Mock) Quote(_ context.Context, symbol string) (*model.Info, error) {
	if m.InfoFn != nil {
		return m.InfoFn(symbol)
	}
	return &model.Info{}, nil
}

func (m *Mock) News(_ context.Context, symbol string, _ int) ([]model.NewsItem, error) {
	if m.NewsFn != nil {
		return m.NewsFn(symbol)
	}
	return nil, nil
}
