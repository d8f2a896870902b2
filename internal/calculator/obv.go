package calculator

// obv computes cumulative on-balance volume over the window and returns the
// final value. The first bar contributes its full volume.
func obv(closes, volumes []float64) int64 {
	if len(closes) == 0 {
		return 0
	}
	total := volumes[0]
	for i := 1; i < len(closes); i++ {
		switch {
		case closes[i] > closes[i-1]:
			total += volumes[i]
		case closes[i] < closes[i-1]:
			total -= volumes[i]
		}
	}
	return int64(total)
}
