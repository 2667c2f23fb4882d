// Package indicators computes the fixed technical-indicator catalog over a
// bounded OHLCV series: EMA, RSI, MACD, Bollinger Bands, ATR and ADX.
//
// Every function takes oldest-to-newest slices and returns a same-length
// series where entries before the indicator warms up are math.NaN(), never
// zero — a zero value is indistinguishable from a real reading and would
// silently corrupt the signal engine's scoring.
package indicators

import "math"

// EMA computes the Exponential Moving Average with smoothing factor
// alpha = 2/(period+1). The first `period-1` entries are NaN; entry
// period-1 is seeded with the simple average of the first `period` closes.
func EMA(data []float64, period int) []float64 {
	out := make([]float64, len(data))
	for i := range out {
		out[i] = math.NaN()
	}
	if len(data) < period || period <= 0 {
		return out
	}

	sum := 0.0
	for i := 0; i < period; i++ {
		sum += data[i]
	}
	out[period-1] = sum / float64(period)

	alpha := 2.0 / (float64(period) + 1.0)
	for i := period; i < len(data); i++ {
		out[i] = data[i]*alpha + out[i-1]*(1-alpha)
	}
	return out
}

// EMAOverSeries runs EMA over an already-partial series (e.g. the MACD
// line) skipping leading NaNs so the seed average only sees defined values.
func EMAOverSeries(data []float64, period int) []float64 {
	out := make([]float64, len(data))
	for i := range out {
		out[i] = math.NaN()
	}
	start := -1
	for i, v := range data {
		if !math.IsNaN(v) {
			start = i
			break
		}
	}
	if start < 0 {
		return out
	}
	defined := data[start:]
	sub := EMA(defined, period)
	copy(out[start:], sub)
	return out
}

func last(series []float64) float64 {
	if len(series) == 0 {
		return math.NaN()
	}
	return series[len(series)-1]
}
