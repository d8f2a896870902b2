package report

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamiedarville/sp500-analysis/internal/model"
)

func TestFormatMarketCap(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1.5e12, "$1.50T"},
		{2.5e9, "$2.50B"},
		{3e6, "$3.00M"},
		{500, "$500"},
		{0, "$0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatMarketCap(tt.in), "in=%v", tt.in)
	}
}

func TestFormatLargeNumber(t *testing.T) {
	assert.Equal(t, "N/A", FormatLargeNumber(nil))
	assert.Equal(t, "$1.20B", FormatLargeNumber(model.Float(1.2e9)))
	assert.Equal(t, "$-4.50B", FormatLargeNumber(model.Float(-4.5e9)))
	assert.Equal(t, "$12.30K", FormatLargeNumber(model.Float(12_300)))
	assert.Equal(t, "$900", FormatLargeNumber(model.Float(900)))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exactly te", truncate("exactly ten chars", 10))
	assert.Equal(t, "", truncate("", 5))
}

func sampleRecord() model.Record {
	return model.Record{
		Symbol:           "AAPL",
		CompanyName:      "Apple Inc.",
		Sector:           "Technology",
		CurrentPrice:     88,
		PreviousClose:    100,
		PercentChange:    -12,
		MarketCap:        2.8e12,
		FiftyTwoWeekHigh: 110,
		FiftyTwoWeekLow:  70,
		DistanceFromHigh: -20,
		Volume:           52_000_000,
		AvgVolume:        48_000_000,
		Indicators: model.Indicators{
			RSI:  model.Float(24.51),
			MACD: model.Float(-1.2345),
			OBV:  model.Int(1_234_567),
		},
		Ratios: model.Ratios{
			PE:            model.Float(23.46),
			DividendYield: model.Float(0.55),
		},
	}
}

func TestConsole_PrintEmpty(t *testing.T) {
	var buf bytes.Buffer
	c := &Console{Out: &buf, TopDetail: 5}
	c.Print(nil, nil)
	assert.Contains(t, buf.String(), "No stocks found with significant drops today!")
}

func TestConsole_PrintRankedTableAndDetail(t *testing.T) {
	var buf bytes.Buffer
	c := &Console{Out: &buf, TopDetail: 5}

	newsCalls := 0
	news := func(symbol string) []model.NewsItem {
		newsCalls++
		return []model.NewsItem{{Title: "Apple drops on guidance", Publisher: "Newswire", Published: "2026-08-24"}}
	}
	c.Print([]model.Record{sampleRecord()}, news)

	out := buf.String()
	assert.Contains(t, out, "Found 1 stocks with significant drops:")
	assert.Contains(t, out, "AAPL")
	assert.Contains(t, out, "$2.80T")
	assert.Contains(t, out, "RSI indicates oversold conditions")
	assert.Contains(t, out, "52,000,000")
	assert.Contains(t, out, "Apple drops on guidance")
	assert.Equal(t, 1, newsCalls)
}

func TestConsole_TopDetailCapsDeepDives(t *testing.T) {
	var buf bytes.Buffer
	c := &Console{Out: &buf, TopDetail: 1}

	records := []model.Record{sampleRecord(), sampleRecord()}
	records[1].Symbol = "MSFT"
	c.Print(records, nil)

	out := buf.String()
	assert.Contains(t, out, "DETAILED ANALYSIS - Top 1 Drops:")
	assert.Contains(t, out, "1. AAPL")
	assert.NotContains(t, out, "2. MSFT")
}

func TestConsole_PrintFailures(t *testing.T) {
	var buf bytes.Buffer
	c := &Console{Out: &buf}

	c.PrintFailures(nil)
	assert.Empty(t, buf.String())

	c.PrintFailures([]string{"AAA", "BBB"})
	assert.Contains(t, buf.String(), "failed to process 2 tickers")
	assert.Contains(t, buf.String(), "AAA, BBB")
}

func TestWriteCSV(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 8, 24, 9, 30, 0, 0, time.UTC)

	rec := sampleRecord()
	path, err := WriteCSV(dir, []model.Record{rec}, now)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "us_stock_drops_20260824_093000.csv"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	header := rows[0]
	assert.Equal(t, csvHeader, header)

	row := rows[1]
	require.Len(t, row, len(header))
	byName := make(map[string]string, len(header))
	for i, name := range header {
		byName[name] = row[i]
	}
	assert.Equal(t, "AAPL", byName["symbol"])
	assert.Equal(t, "-12", byName["percent_change"])
	assert.Equal(t, "24.51", byName["rsi"])
	assert.Equal(t, "1234567", byName["obv"])
	// Unknown metrics are empty cells, not zeros.
	assert.Equal(t, "", byName["macd_signal"])
	assert.Equal(t, "", byName["debt_to_equity"])
}

func TestWriteCSV_BadDirectory(t *testing.T) {
	_, err := WriteCSV(filepath.Join(t.TempDir(), "missing"), nil, time.Now())
	assert.Error(t, err)
}
