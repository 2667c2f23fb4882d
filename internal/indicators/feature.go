package indicators

import "signalengine/internal/barmodel"

// Compute runs the full indicator catalog over a closed-bar series (oldest
// first) and returns the latest reading as a FeatureRow. Any indicator that
// has not warmed up yet is left as math.NaN() in the returned row.
func Compute(opens, highs, lows, closes, volumes []float64, p Params) barmodel.FeatureRow {
	_ = opens
	_ = volumes

	emaFast := EMA(closes, p.EMAFast)
	emaSlow := EMA(closes, p.EMASlow)
	rsi := RSI(closes, p.RSILength)
	macd := ComputeMACD(closes, p.MACDFast, p.MACDSlow, p.MACDSignal)
	bb := Bollinger(closes, p.BBLength, p.BBStd)
	atr := ATR(highs, lows, closes, p.ATRLength)
	adx := ADX(highs, lows, closes, p.ADXLength)

	return barmodel.FeatureRow{
		EMAFast:  last(emaFast),
		EMASlow:  last(emaSlow),
		RSI:      last(rsi),
		MACDLine: last(macd.Line),
		MACDSig:  last(macd.Signal),
		MACDHist: last(macd.Histogram),
		BBUpper:  last(bb.Upper),
		BBLower:  last(bb.Lower),
		BBWidth:  last(bb.Width),
		ATR:      last(atr),
		ADX:      last(adx),
		Close:    last(closes),
	}
}
