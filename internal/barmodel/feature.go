package barmodel

import "math"

// FeatureRow is the latest indicator reading for one (symbol, tf) series.
// A field holds math.NaN() when the underlying indicator has not warmed up
// (NullFeature); callers must treat NaN as missing, never as a value.
type FeatureRow struct {
	EMAFast   float64
	EMASlow   float64
	RSI       float64
	MACDLine  float64
	MACDSig   float64
	MACDHist  float64
	BBUpper   float64
	BBLower   float64
	BBWidth   float64
	ATR       float64
	ADX       float64
	Close     float64
}

// Defined reports whether v is a usable (non-missing) feature value.
func Defined(v float64) bool {
	return !math.IsNaN(v)
}

// IndicatorSnapshot is the subset of FeatureRow carried on an emitted
// TfSignal message, matching the wire shape in the notifier sink contract.
type IndicatorSnapshot struct {
	EMAFast  *float64 `json:"ema_fast"`
	EMASlow  *float64 `json:"ema_slow"`
	RSI      *float64 `json:"rsi"`
	ADX      *float64 `json:"adx"`
	ATR      *float64 `json:"atr"`
	BBWidth  *float64 `json:"bb_width"`
	MACDHist *float64 `json:"macd_hist"`
}

func ptr(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

// ToIndicatorSnapshot builds the wire-shaped indicator subset, mapping NaN to null.
func (f FeatureRow) ToIndicatorSnapshot() IndicatorSnapshot {
	return IndicatorSnapshot{
		EMAFast:  ptr(f.EMAFast),
		EMASlow:  ptr(f.EMASlow),
		RSI:      ptr(f.RSI),
		ADX:      ptr(f.ADX),
		ATR:      ptr(f.ATR),
		BBWidth:  ptr(f.BBWidth),
		MACDHist: ptr(f.MACDHist),
	}
}
