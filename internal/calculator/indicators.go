// Package calculator holds the pure numeric transforms applied to fetched
// price series and descriptive info.
package calculator

import (
	"math"

	"github.com/jamiedarville/sp500-analysis/internal/model"
)

// minIndicatorBars is the minimum window for the 14-period indicator set.
const minIndicatorBars = 14

// Technical computes the RSI/MACD/OBV indicator set over a daily window.
// With fewer than 14 bars, or on any malformed input, every field is nil;
// indicators are all-or-nothing per symbol.
func Technical(bars []model.Bar) model.Indicators {
	var out model.Indicators
	if len(bars) < minIndicatorBars {
		return out
	}
	closes := model.Closes(bars)
	volumes := model.Volumes(bars)
	for _, c := range closes {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return out
		}
	}

	r, ok := rsi(closes, 14)
	if !ok {
		return out
	}
	macd, signal, histogram := macdSeries(closes)

	out.RSI = model.Float(round2(r))
	out.MACD = model.Float(round4(macd))
	out.MACDSignal = model.Float(round4(signal))
	out.MACDHistogram = model.Float(round4(histogram))
	out.OBV = model.Int(obv(closes, volumes))
	return out
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
