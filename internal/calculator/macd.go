package calculator

// ema returns the exponential moving average series for the given span,
// seeded from the first value.
func ema(values []float64, span int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	alpha := 2.0 / (float64(span) + 1.0)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}

// macdSeries computes the 12/26 MACD line, its 9-period signal line and the
// histogram, returning the final values of each.
func macdSeries(closes []float64) (macd, signal, histogram float64) {
	fast := ema(closes, 12)
	slow := ema(closes, 26)
	line := make([]float64, len(closes))
	for i := range closes {
		line[i] = fast[i] - slow[i]
	}
	sig := ema(line, 9)

	last := len(closes) - 1
	macd = line[last]
	signal = sig[last]
	histogram = macd - signal
	return macd, signal, histogram
}
