// Package barmodel holds the shared data types passed between every stage
// of the pipeline: bars, S/R zones, feature rows, per-timeframe signals and
// per-symbol consensus snapshots.
package barmodel

// Timeframe tags recognized by the pipeline.
const (
	TF1m  = "1m"
	TFM15 = "M15"
	TFH1  = "H1"
	TFH4  = "H4"
	TFD1  = "D1"
	TFW1  = "W1"
)

// Bar is an OHLCV candle for one (symbol, timeframe) window. Immutable
// once Closed is true.
type Bar struct {
	Symbol    string  `json:"symbol"`
	Timeframe string  `json:"timeframe"`
	TOpen     int64   `json:"t_open"`
	TClose    int64   `json:"t_close"`
	Open      float64 `json:"o"`
	High      float64 `json:"h"`
	Low       float64 `json:"l"`
	Close     float64 `json:"c"`
	Volume    float64 `json:"v"`
	Closed    bool    `json:"closed"`
}

// Zone is a price band built from merged pivot levels.
type Zone struct {
	PriceLow     float64
	PriceHigh    float64
	Score        float64
	Touches      int
	CreatedIdx   int
	LastTouchIdx int
}

// Pair returns the wire-shaped [low, high] representation, or nil if z is nil.
func (z *Zone) Pair() *[2]float64 {
	if z == nil {
		return nil
	}
	return &[2]float64{z.PriceLow, z.PriceHigh}
}
