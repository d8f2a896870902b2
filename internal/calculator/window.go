package calculator

import "github.com/jamiedarville/sp500-analysis/internal/model"

// PercentChange returns the day-over-day change in percent.
func PercentChange(previous, current float64) float64 {
	return (current - previous) / previous * 100
}

// DistanceFromHigh returns how far the current price sits below the 52-week
// high, in percent. Returns 0 when the high is unknown or zero.
func DistanceFromHigh(current, high float64) float64 {
	if high == 0 {
		return 0
	}
	return (current - high) / high * 100
}

// MeanVolume returns the average volume over the window.
func MeanVolume(bars []model.Bar) float64 {
	if len(bars) == 0 {
		return 0
	}
	var sum float64
	for _, b := range bars {
		sum += b.Volume
	}
	return sum / float64(len(bars))
}
