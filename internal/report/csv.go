package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jamiedarville/sp500-analysis/internal/model"
)

var csvHeader = []string{
	"symbol", "company_name", "sector",
	"current_price", "previous_close", "percent_change",
	"market_cap", "fifty_two_week_high", "fifty_two_week_low", "distance_from_high",
	"volume", "avg_volume",
	"rsi", "macd", "macd_signal", "macd_histogram", "obv",
	"pe_ratio", "forward_pe", "peg_ratio", "debt_to_equity", "free_cash_flow",
	"dividend_yield", "book_value", "price_to_book", "return_on_equity",
}

// WriteCSV persists one row per record into dir, with the run timestamp in
// the filename, and returns the written path. Callers should only invoke it
// when at least one record qualified.
func WriteCSV(dir string, records []model.Record, now time.Time) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("us_stock_drops_%s.csv", now.Format("20060102_150405")))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create results file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return "", fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range records {
		row := []string{
			r.Symbol, r.CompanyName, r.Sector,
			ff(r.CurrentPrice), ff(r.PreviousClose), ff(r.PercentChange),
			ff(r.MarketCap), ff(r.FiftyTwoWeekHigh), ff(r.FiftyTwoWeekLow), ff(r.DistanceFromHigh),
			ff(r.Volume), ff(r.AvgVolume),
			fp(r.Indicators.RSI), fp(r.Indicators.MACD), fp(r.Indicators.MACDSignal), fp(r.Indicators.MACDHistogram), fi(r.Indicators.OBV),
			fp(r.Ratios.PE), fp(r.Ratios.ForwardPE), fp(r.Ratios.PEG), fp(r.Ratios.DebtToEquity), fp(r.Ratios.FreeCashFlow),
			fp(r.Ratios.DividendYield), fp(r.Ratios.BookValue), fp(r.Ratios.PriceToBook), fp(r.Ratios.ReturnOnEquity),
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}
	return path, nil
}

func ff(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// Nullable fields serialize as empty cells.
func fp(v *float64) string {
	if v == nil {
		return ""
	}
	return ff(*v)
}

func fi(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}
