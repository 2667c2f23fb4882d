package indicators

import "math"

// BollingerBands holds the three band series produced by Bollinger.
type BollingerBands struct {
	Upper  []float64
	Middle []float64
	Lower  []float64
	Width  []float64 // (Upper-Lower)/Middle, NaN until warm
}

// Bollinger computes a simple-moving-average middle band with
// population-standard-deviation upper/lower bands.
func Bollinger(closes []float64, period int, mult float64) BollingerBands {
	length := len(closes)
	bb := BollingerBands{
		Upper:  make([]float64, length),
		Middle: make([]float64, length),
		Lower:  make([]float64, length),
		Width:  make([]float64, length),
	}
	for i := 0; i < length; i++ {
		bb.Upper[i], bb.Middle[i], bb.Lower[i], bb.Width[i] = math.NaN(), math.NaN(), math.NaN(), math.NaN()
	}
	if length < period || period <= 0 {
		return bb
	}

	for i := period - 1; i < length; i++ {
		sum := 0.0
		for j := 0; j < period; j++ {
			sum += closes[i-j]
		}
		ma := sum / float64(period)

		sumSq := 0.0
		for j := 0; j < period; j++ {
			diff := closes[i-j] - ma
			sumSq += diff * diff
		}
		sd := math.Sqrt(sumSq / float64(period))

		bb.Middle[i] = ma
		bb.Upper[i] = ma + mult*sd
		bb.Lower[i] = ma - mult*sd
		if ma != 0 {
			bb.Width[i] = (bb.Upper[i] - bb.Lower[i]) / ma
		}
	}
	return bb
}
