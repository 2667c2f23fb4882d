package barmodel

// Regime is the coarse market classification for one (symbol, tf) reading.
type Regime string

const (
	RegimeTrendBull Regime = "trend_bull"
	RegimeTrendBear Regime = "trend_bear"
	RegimeRange     Regime = "range"
)

// Direction is the signal engine's final call.
type Direction string

const (
	DirectionLong    Direction = "LONG"
	DirectionShort   Direction = "SHORT"
	DirectionNeutral Direction = "NEUTRAL"
)

// SRHint carries the nearest support/resistance zones as wire-shaped pairs.
type SRHint struct {
	NearestSupport    *[2]float64 `json:"nearest_support"`
	NearestResistance *[2]float64 `json:"nearest_resistance"`
}

// TfSignal is emitted once per closed higher-timeframe bar.
type TfSignal struct {
	Symbol     string             `json:"symbol"`
	Timeframe  string             `json:"timeframe"`
	ClosedAt   int64              `json:"closed_at"`
	Regime     Regime             `json:"regime"`
	Direction  Direction          `json:"signal"`
	Score      int                `json:"score"`
	Price      float64            `json:"price"`
	Indicators IndicatorSnapshot  `json:"indicators"`
	SR         SRHint             `json:"sr"`
	EntryHint  float64            `json:"entry_hint"`
	SLHint     float64            `json:"sl_hint"`
	TPHint     float64            `json:"tp_hint"`
	Rationale  []string           `json:"rationale"`
}

// Snapshot is the per-symbol multi-timeframe consensus message, produced
// only once every configured timeframe has at least one TfSignal.
type Snapshot struct {
	Type      string              `json:"type"`
	Symbol    string              `json:"symbol"`
	ClosedAt  int64               `json:"closed_at"`
	Consensus string              `json:"consensus"`
	PerTF     map[string]TfSignal `json:"per_tf"`
}

const (
	ConsensusStrongLong  = "STRONG_LONG"
	ConsensusStrongShort = "STRONG_SHORT"
	ConsensusMixed       = "MIXED"
)
