package indicators

import "math"

// ATR computes the Average True Range using Wilder smoothing. Entries
// before the first full window are NaN.
func ATR(highs, lows, closes []float64, period int) []float64 {
	length := len(closes)
	out := make([]float64, length)
	for i := range out {
		out[i] = math.NaN()
	}
	if length < period || period <= 0 {
		return out
	}

	tr := make([]float64, length)
	tr[0] = highs[0] - lows[0]
	for i := 1; i < length; i++ {
		hl := highs[i] - lows[i]
		hc := math.Abs(highs[i] - closes[i-1])
		lc := math.Abs(lows[i] - closes[i-1])
		tr[i] = math.Max(hl, math.Max(hc, lc))
	}

	sum := 0.0
	for i := 0; i < period; i++ {
		sum += tr[i]
	}
	out[period-1] = sum / float64(period)

	for i := period; i < length; i++ {
		out[i] = (out[i-1]*float64(period-1) + tr[i]) / float64(period)
	}
	return out
}
