package indicators

import "math"

// RSI computes the Wilder Relative Strength Index. The seed average
// gain/loss is a plain mean over the first `period` deltas; thereafter
// both averages smooth as avg = (avg_prev*(period-1) + x) / period.
// Undefined (NaN) before index period, i.e. until more than `period`
// closes are available.
func RSI(closes []float64, period int) []float64 {
	length := len(closes)
	out := make([]float64, length)
	for i := range out {
		out[i] = math.NaN()
	}
	if length <= period || period <= 0 {
		return out
	}

	var gainSum, lossSum float64
	for i := 1; i <= period; i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			gainSum += delta
		} else {
			lossSum += -delta
		}
	}
	avgGain := gainSum / float64(period)
	avgLoss := lossSum / float64(period)
	out[period] = rsiFromAverages(avgGain, avgLoss)

	for i := period + 1; i < length; i++ {
		delta := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if delta > 0 {
			gain = delta
		} else {
			loss = -delta
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		out[i] = rsiFromAverages(avgGain, avgLoss)
	}
	return out
}

func rsiFromAverages(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		if avgGain == 0 {
			return 50
		}
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}
