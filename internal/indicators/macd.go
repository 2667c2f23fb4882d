package indicators

// MACD holds the three MACD series.
type MACD struct {
	Line      []float64
	Signal    []float64
	Histogram []float64
}

// ComputeMACD computes fast-EMA minus slow-EMA as the line, an EMA of the
// line as the signal, and line-minus-signal as the histogram.
func ComputeMACD(closes []float64, fast, slow, signal int) MACD {
	length := len(closes)
	emaFast := EMA(closes, fast)
	emaSlow := EMA(closes, slow)

	line := make([]float64, length)
	for i := 0; i < length; i++ {
		line[i] = emaFast[i] - emaSlow[i] // NaN - NaN / NaN - x all correctly propagate to NaN
	}

	sig := EMAOverSeries(line, signal)

	hist := make([]float64, length)
	for i := 0; i < length; i++ {
		hist[i] = line[i] - sig[i]
	}

	return MACD{Line: line, Signal: sig, Histogram: hist}
}
