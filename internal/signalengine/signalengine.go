// Package signalengine classifies market regime and scores a directional
// trading signal from the latest FeatureRow and nearest S/R zones.
// Grounded on the original Python signal_engine.py's scoring-table shape,
// normalized onto the explicit adx_trend_threshold/score_threshold variant
// called out in the design notes (step5/step6).
package signalengine

import (
	"math"

	"signalengine/internal/barmodel"
)

// Params holds the per-timeframe thresholds from spec §4.6.
type Params struct {
	AdxTrendThreshold float64
	ScoreThreshold    int
}

// DefaultParams returns the §4.6 defaults.
func DefaultParams() Params {
	return Params{AdxTrendThreshold: 20, ScoreThreshold: 70}
}

const maxRationaleTags = 6

// Classify derives the coarse regime from EMA slope and ADX strength. A
// missing EMA or ADX reading always falls back to range (spec §4.6, §7
// NullFeature).
func Classify(f barmodel.FeatureRow, p Params) barmodel.Regime {
	if !barmodel.Defined(f.EMAFast) || !barmodel.Defined(f.EMASlow) || !barmodel.Defined(f.ADX) {
		return barmodel.RegimeRange
	}
	switch {
	case f.EMAFast > f.EMASlow && f.ADX >= p.AdxTrendThreshold:
		return barmodel.RegimeTrendBull
	case f.EMAFast < f.EMASlow && f.ADX >= p.AdxTrendThreshold:
		return barmodel.RegimeTrendBear
	default:
		return barmodel.RegimeRange
	}
}

// candidate is the intermediate result of a scoring profile before the
// score_threshold gate is applied.
type candidate struct {
	direction barmodel.Direction
	score     int
	reasons   []string
	entry     float64
	sl        float64
	tp        float64
}

// Decide runs the regime-selected scoring profile and applies the
// score_threshold gate, producing the final direction/score/hints/rationale.
func Decide(f barmodel.FeatureRow, support, resistance *barmodel.Zone, regime barmodel.Regime, p Params) (direction barmodel.Direction, score int, entry, sl, tp float64, rationale []string) {
	var cand candidate
	switch regime {
	case barmodel.RegimeTrendBull:
		cand = trendPullbackLong(f, resistance, support)
	case barmodel.RegimeTrendBear:
		cand = trendPullbackShort(f, support, resistance)
	default:
		cand = rangeReversal(f, support, resistance)
	}

	direction = barmodel.DirectionNeutral
	if cand.score >= p.ScoreThreshold {
		direction = cand.direction
	}

	rationale = cand.reasons
	if len(rationale) > maxRationaleTags {
		rationale = rationale[:maxRationaleTags]
	}
	return direction, clampScore(cand.score), cand.entry, cand.sl, cand.tp, rationale
}

func clampScore(s int) int {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

func trendPullbackLong(f barmodel.FeatureRow, resistance, support *barmodel.Zone) candidate {
	var score int
	var reasons []string
	add := func(pts int, tag string) {
		score += pts
		reasons = append(reasons, tag)
	}

	if barmodel.Defined(f.EMAFast) && barmodel.Defined(f.EMASlow) && f.EMAFast > f.EMASlow {
		add(25, "EMAfast>EMAslow")
	}
	if barmodel.Defined(f.RSI) && f.RSI > 50 {
		add(25, "RSI>50")
	}
	if barmodel.Defined(f.MACDHist) && f.MACDHist > 0 {
		add(20, "MACD_hist>0")
	}
	if resistance != nil && barmodel.Defined(f.Close) && barmodel.Defined(f.ATR) &&
		f.Close > resistance.PriceHigh+0.1*f.ATR {
		add(30, "Break>R+buffer")
	} else if resistance == nil {
		add(10, "No nearby R")
	}

	entry := f.Close
	sl := f.Close - 1.5*f.ATR
	if support != nil {
		sl = math.Min(sl, support.PriceHigh-0.1*f.ATR)
	}
	tp := entry + 2*(entry-sl)

	return candidate{direction: barmodel.DirectionLong, score: score, reasons: reasons, entry: entry, sl: sl, tp: tp}
}

func trendPullbackShort(f barmodel.FeatureRow, support, resistance *barmodel.Zone) candidate {
	var score int
	var reasons []string
	add := func(pts int, tag string) {
		score += pts
		reasons = append(reasons, tag)
	}

	if barmodel.Defined(f.EMAFast) && barmodel.Defined(f.EMASlow) && f.EMAFast < f.EMASlow {
		add(25, "EMAfast<EMAslow")
	}
	if barmodel.Defined(f.RSI) && f.RSI < 50 {
		add(25, "RSI<50")
	}
	if barmodel.Defined(f.MACDHist) && f.MACDHist < 0 {
		add(20, "MACD_hist<0")
	}
	if support != nil && barmodel.Defined(f.Close) && barmodel.Defined(f.ATR) &&
		f.Close < support.PriceLow-0.1*f.ATR {
		add(30, "Break<S-buffer")
	} else if support == nil {
		add(10, "No nearby S")
	}

	entry := f.Close
	sl := f.Close + 1.5*f.ATR
	if resistance != nil {
		sl = math.Max(sl, resistance.PriceLow+0.1*f.ATR)
	}
	tp := entry - 2*(sl-entry)

	return candidate{direction: barmodel.DirectionShort, score: score, reasons: reasons, entry: entry, sl: sl, tp: tp}
}

func rangeReversal(f barmodel.FeatureRow, support, resistance *barmodel.Zone) candidate {
	distSupport := math.Inf(1)
	if support != nil {
		distSupport = math.Abs(f.Close - support.PriceHigh)
	}
	distResistance := math.Inf(1)
	if resistance != nil {
		distResistance = math.Abs(resistance.PriceLow - f.Close)
	}

	if distSupport < distResistance {
		return rangeReversalLong(f, support)
	}
	return rangeReversalShort(f, resistance)
}

func rangeReversalLong(f barmodel.FeatureRow, support *barmodel.Zone) candidate {
	var score int
	var reasons []string
	add := func(pts int, tag string) {
		score += pts
		reasons = append(reasons, tag)
	}

	if support != nil && barmodel.Defined(f.Close) && barmodel.Defined(f.ATR) &&
		f.Close >= support.PriceLow-0.1*f.ATR && f.Close <= support.PriceHigh+0.1*f.ATR {
		add(40, "AtSupportZone")
	}
	if barmodel.Defined(f.RSI) && f.RSI < 45 {
		add(15, "RSI<45")
	}
	if barmodel.Defined(f.MACDHist) && f.MACDHist >= 0 {
		add(10, "MACD_hist>=0")
	}

	entry := f.Close
	sl := f.Close - 1.2*f.ATR
	if support != nil {
		sl = math.Min(sl, support.PriceLow-0.1*f.ATR)
	}
	tp := entry + 2*(entry-sl)

	return candidate{direction: barmodel.DirectionLong, score: score, reasons: reasons, entry: entry, sl: sl, tp: tp}
}

func rangeReversalShort(f barmodel.FeatureRow, resistance *barmodel.Zone) candidate {
	var score int
	var reasons []string
	add := func(pts int, tag string) {
		score += pts
		reasons = append(reasons, tag)
	}

	if resistance != nil && barmodel.Defined(f.Close) && barmodel.Defined(f.ATR) &&
		f.Close >= resistance.PriceLow-0.1*f.ATR && f.Close <= resistance.PriceHigh+0.1*f.ATR {
		add(40, "AtResistanceZone")
	}
	if barmodel.Defined(f.RSI) && f.RSI > 55 {
		add(15, "RSI>55")
	}
	if barmodel.Defined(f.MACDHist) && f.MACDHist <= 0 {
		add(10, "MACD_hist<=0")
	}

	entry := f.Close
	sl := f.Close + 1.2*f.ATR
	if resistance != nil {
		sl = math.Max(sl, resistance.PriceHigh+0.1*f.ATR)
	}
	tp := entry - 2*(sl-entry)

	return candidate{direction: barmodel.DirectionShort, score: score, reasons: reasons, entry: entry, sl: sl, tp: tp}
}
