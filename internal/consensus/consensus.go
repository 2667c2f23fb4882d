// Package consensus combines the latest per-timeframe signal for each
// symbol into a multi-timeframe Snapshot once every configured timeframe
// has reported at least once.
package consensus

import "signalengine/internal/barmodel"

// Aggregator is the single-writer per-symbol tf -> TfSignal store.
type Aggregator struct {
	configuredTFs []string
	perSymbol     map[string]map[string]barmodel.TfSignal
}

// New returns an Aggregator expecting a TfSignal for every tf in
// configuredTFs before it will emit a Snapshot.
func New(configuredTFs []string) *Aggregator {
	return &Aggregator{
		configuredTFs: configuredTFs,
		perSymbol:     make(map[string]map[string]barmodel.TfSignal),
	}
}

// Observe records sig and returns a Snapshot, emitting one only once every
// configured timeframe for sig.Symbol has at least one recorded TfSignal.
func (a *Aggregator) Observe(sig barmodel.TfSignal) (barmodel.Snapshot, bool) {
	perTF, ok := a.perSymbol[sig.Symbol]
	if !ok {
		perTF = make(map[string]barmodel.TfSignal)
		a.perSymbol[sig.Symbol] = perTF
	}
	perTF[sig.Timeframe] = sig

	for _, tf := range a.configuredTFs {
		if _, ok := perTF[tf]; !ok {
			return barmodel.Snapshot{}, false
		}
	}

	longs, shorts := 0, 0
	out := make(map[string]barmodel.TfSignal, len(a.configuredTFs))
	for _, tf := range a.configuredTFs {
		s := perTF[tf]
		out[tf] = s
		switch s.Direction {
		case barmodel.DirectionLong:
			longs++
		case barmodel.DirectionShort:
			shorts++
		}
	}

	consensus := barmodel.ConsensusMixed
	switch {
	case longs >= 2:
		consensus = barmodel.ConsensusStrongLong
	case shorts >= 2:
		consensus = barmodel.ConsensusStrongShort
	}

	return barmodel.Snapshot{
		Type:      "snapshot",
		Symbol:    sig.Symbol,
		ClosedAt:  sig.ClosedAt,
		Consensus: consensus,
		PerTF:     out,
	}, true
}
