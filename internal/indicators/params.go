package indicators

// Params holds the indicator engine's configured lookback lengths, matching
// spec §4.4 one-for-one so the dispatcher can load them straight from YAML.
type Params struct {
	EMAFast    int
	EMASlow    int
	RSILength  int
	MACDFast   int
	MACDSlow   int
	MACDSignal int
	BBLength   int
	BBStd      float64
	ATRLength  int
	ADXLength  int
}

// DefaultParams returns the defaults listed in spec §4.4.
func DefaultParams() Params {
	return Params{
		EMAFast:    50,
		EMASlow:    200,
		RSILength:  14,
		MACDFast:   12,
		MACDSlow:   26,
		MACDSignal: 9,
		BBLength:   20,
		BBStd:      2.0,
		ATRLength:  14,
		ADXLength:  14,
	}
}

// WarmupFloor is the minimum closed-bar count required before a FeatureRow
// may be used as an emitted signal (spec §4.4).
func (p Params) WarmupFloor() int {
	floor := p.EMASlow
	if v := p.ADXLength * 2; v > floor {
		floor = v
	}
	if p.BBLength > floor {
		floor = p.BBLength
	}
	if v := p.MACDSlow + p.MACDSignal; v > floor {
		floor = v
	}
	return floor
}
