// Package report renders scan results: the ranked console table with
// deep-dive sections, and the delimited output file.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/jamiedarville/sp500-analysis/internal/model"
)

// NewsFetcher supplies headlines for the deep-dive sections. May be nil.
type NewsFetcher func(symbol string) []model.NewsItem

// Meta describes the run being reported.
type Meta struct {
	Threshold    float64
	Preset       string
	UniverseSize int
	StartedAt    time.Time
}

// Console writes the human-readable report.
type Console struct {
	Out       io.Writer
	TopDetail int
}

// PrintBanner writes the run header before scanning starts.
func (c *Console) PrintBanner(m Meta) {
	line := strings.Repeat("=", 80)
	fmt.Fprintln(c.Out, line)
	fmt.Fprintln(c.Out, "US STOCK SIGNIFICANT DROP ANALYSIS")
	fmt.Fprintf(c.Out, "Threshold: %.1f%% or lower\n", m.Threshold)
	fmt.Fprintf(c.Out, "Analysis Date: %s\n", m.StartedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(c.Out, "Analyzing %d tickers (preset: %s)\n", m.UniverseSize, m.Preset)
	fmt.Fprintln(c.Out, line)
}

// Print writes the ranked table and the deep-dive sections for the most
// severe drops. Records are assumed already sorted ascending by percent
// change.
func (c *Console) Print(records []model.Record, news NewsFetcher) {
	if len(records) == 0 {
		fmt.Fprintln(c.Out, "\nNo stocks found with significant drops today!")
		return
	}

	rule := strings.Repeat("-", 120)
	fmt.Fprintf(c.Out, "\nFound %d stocks with significant drops:\n", len(records))
	fmt.Fprintln(c.Out, rule)
	fmt.Fprintf(c.Out, "%-8s %-30s %-20s %-8s %-10s %-10s %-12s\n",
		"Symbol", "Company", "Sector", "Change", "Price", "Mkt Cap", "From 52W High")
	fmt.Fprintln(c.Out, rule)
	for _, r := range records {
		fmt.Fprintf(c.Out, "%-8s %-30s %-20s %7.2f%% $%8.2f %-10s %10.1f%%\n",
			r.Symbol,
			truncate(r.CompanyName, 29),
			truncate(r.Sector, 19),
			r.PercentChange,
			r.CurrentPrice,
			FormatMarketCap(r.MarketCap),
			r.DistanceFromHigh)
	}
	fmt.Fprintln(c.Out, rule)

	top := c.TopDetail
	if top > len(records) {
		top = len(records)
	}
	fmt.Fprintf(c.Out, "\nDETAILED ANALYSIS - Top %d Drops:\n", top)
	fmt.Fprintln(c.Out, strings.Repeat("=", 80))

	for i := 0; i < top; i++ {
		c.printDetail(i+1, records[i], news)
	}
}

func (c *Console) printDetail(rank int, r model.Record, news NewsFetcher) {
	fmt.Fprintf(c.Out, "\n%d. %s - %s\n", rank, r.Symbol, r.CompanyName)
	fmt.Fprintf(c.Out, "   Sector: %s\n", r.Sector)
	fmt.Fprintf(c.Out, "   Price Change: $%.2f -> $%.2f (%.2f%%)\n", r.PreviousClose, r.CurrentPrice, r.PercentChange)
	fmt.Fprintf(c.Out, "   Market Cap: %s\n", FormatMarketCap(r.MarketCap))
	fmt.Fprintf(c.Out, "   52-Week Range: $%.2f - $%.2f\n", r.FiftyTwoWeekLow, r.FiftyTwoWeekHigh)
	fmt.Fprintf(c.Out, "   Volume: %s (Avg: %s)\n",
		humanize.Comma(int64(r.Volume)), humanize.Comma(int64(r.AvgVolume)))

	fmt.Fprintln(c.Out, "\n   FUNDAMENTAL METRICS:")
	fmt.Fprintf(c.Out, "   - P/E Ratio: %s\n", na(r.Ratios.PE))
	fmt.Fprintf(c.Out, "   - PEG Ratio: %s\n", na(r.Ratios.PEG))
	fmt.Fprintf(c.Out, "   - Debt-to-Equity: %s\n", na(r.Ratios.DebtToEquity))
	if r.Ratios.DividendYield != nil {
		fmt.Fprintf(c.Out, "   - Dividend Yield: %s%%\n", na(r.Ratios.DividendYield))
	} else {
		fmt.Fprintln(c.Out, "   - Dividend Yield: N/A")
	}
	fmt.Fprintf(c.Out, "   - Free Cash Flow: %s\n", FormatLargeNumber(r.Ratios.FreeCashFlow))

	fmt.Fprintln(c.Out, "\n   TECHNICAL INDICATORS:")
	fmt.Fprintf(c.Out, "   - RSI (14): %s\n", na(r.Indicators.RSI))
	fmt.Fprintf(c.Out, "   - MACD: %s\n", na(r.Indicators.MACD))
	fmt.Fprintf(c.Out, "   - MACD Signal: %s\n", na(r.Indicators.MACDSignal))
	if r.Indicators.OBV != nil {
		fmt.Fprintf(c.Out, "   - OBV: %s\n", humanize.Comma(*r.Indicators.OBV))
	} else {
		fmt.Fprintln(c.Out, "   - OBV: N/A")
	}
	if rsi := r.Indicators.RSI; rsi != nil {
		switch {
		case *rsi < 30:
			fmt.Fprintln(c.Out, "     -> RSI indicates oversold conditions")
		case *rsi > 70:
			fmt.Fprintln(c.Out, "     -> RSI indicates overbought conditions")
		default:
			fmt.Fprintln(c.Out, "     -> RSI indicates neutral conditions")
		}
	}

	var items []model.NewsItem
	if news != nil {
		items = news(r.Symbol)
	}
	if len(items) > 0 {
		fmt.Fprintln(c.Out, "\n   RECENT NEWS:")
		for _, n := range items {
			fmt.Fprintf(c.Out, "     - %s\n", truncate(n.Title, 80))
			fmt.Fprintf(c.Out, "       %s - %s\n", n.Publisher, n.Published)
		}
	} else {
		fmt.Fprintln(c.Out, "\n   No recent news available")
	}
	fmt.Fprintln(c.Out, strings.Repeat("-", 80))
}

// PrintFailures reports symbols that could not be processed. These are
// distinct from symbols that simply did not qualify.
func (c *Console) PrintFailures(failed []string) {
	if len(failed) == 0 {
		return
	}
	sample := failed
	if len(sample) > 10 {
		sample = sample[:10]
	}
	fmt.Fprintf(c.Out, "\nWARNING: failed to process %d tickers due to rate limiting or errors: %s\n",
		len(failed), strings.Join(sample, ", "))
}
