package calculator

// rsi computes the Wilder-smoothed relative strength index over closing
// prices and returns the final period's value. The seed average uses up to
// `period` changes; a window of exactly period bars degrades to the
// available period-1 changes instead of going undefined.
func rsi(closes []float64, period int) (float64, bool) {
	if period <= 0 || len(closes) < 2 {
		return 0, false
	}
	seed := period
	if len(closes)-1 < seed {
		seed = len(closes) - 1
	}

	var avgGain, avgLoss float64
	for i := 1; i <= seed; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(seed)
	avgLoss /= float64(seed)

	// Wilder smoothing for the remaining bars
	for i := seed + 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
	}

	if avgLoss == 0 {
		return 100.0, true
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs), true
}
