package report

import (
	"fmt"
	"math"
	"strconv"
)

// FormatMarketCap renders a market capitalization with a T/B/M suffix.
func FormatMarketCap(v float64) string {
	switch {
	case v >= 1e12:
		return fmt.Sprintf("$%.2fT", v/1e12)
	case v >= 1e9:
		return fmt.Sprintf("$%.2fB", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("$%.2fM", v/1e6)
	default:
		return fmt.Sprintf("$%.0f", v)
	}
}

// FormatLargeNumber renders a nullable dollar amount (free cash flow etc.)
// with a magnitude suffix, or "N/A" when unknown.
func FormatLargeNumber(v *float64) string {
	if v == nil {
		return "N/A"
	}
	n := *v
	switch {
	case math.Abs(n) >= 1e12:
		return fmt.Sprintf("$%.2fT", n/1e12)
	case math.Abs(n) >= 1e9:
		return fmt.Sprintf("$%.2fB", n/1e9)
	case math.Abs(n) >= 1e6:
		return fmt.Sprintf("$%.2fM", n/1e6)
	case math.Abs(n) >= 1e3:
		return fmt.Sprintf("$%.2fK", n/1e3)
	default:
		return fmt.Sprintf("$%.0f", n)
	}
}

// na renders a nullable metric or "N/A".
func na(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
