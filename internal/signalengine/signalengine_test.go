package signalengine

import (
	"math"
	"testing"

	"signalengine/internal/barmodel"
)

func TestClassifyFallsBackToRangeOnMissingFeature(t *testing.T) {
	p := DefaultParams()
	f := barmodel.FeatureRow{EMAFast: 110, EMASlow: 100, ADX: math.NaN()}
	if got := Classify(f, p); got != barmodel.RegimeRange {
		t.Fatalf("expected range with missing ADX, got %s", got)
	}
}

func TestClassifyTrendBull(t *testing.T) {
	p := DefaultParams()
	f := barmodel.FeatureRow{EMAFast: 110, EMASlow: 100, ADX: 25}
	if got := Classify(f, p); got != barmodel.RegimeTrendBull {
		t.Fatalf("expected trend_bull, got %s", got)
	}
}

func TestTrendBullBreakoutScenario(t *testing.T) {
	p := DefaultParams()
	f := barmodel.FeatureRow{
		EMAFast: 110, EMASlow: 100, RSI: 60, MACDHist: 0.5, ADX: 25, ATR: 1.0, Close: 120,
	}
	resistance := &barmodel.Zone{PriceLow: 118, PriceHigh: 119}
	support := &barmodel.Zone{PriceLow: 115, PriceHigh: 116}

	regime := Classify(f, p)
	direction, score, _, sl, tp, _ := Decide(f, support, resistance, regime, p)

	if score != 100 {
		t.Fatalf("expected score 100, got %d", score)
	}
	if direction != barmodel.DirectionLong {
		t.Fatalf("expected LONG, got %s", direction)
	}
	if math.Abs(sl-115.9) > 1e-9 {
		t.Fatalf("expected sl=115.9, got %v", sl)
	}
	if math.Abs(tp-128.2) > 1e-9 {
		t.Fatalf("expected tp=128.2, got %v", tp)
	}
}

func TestRangeReversalPicksNearerSideAndGatesNeutral(t *testing.T) {
	p := DefaultParams()
	f := barmodel.FeatureRow{RSI: 40, MACDHist: 0.1, ATR: 0.01, Close: 100}
	support := &barmodel.Zone{PriceLow: 99, PriceHigh: 100}
	resistance := &barmodel.Zone{PriceLow: 110, PriceHigh: 111}

	direction, score, _, _, _, rationale := Decide(f, support, resistance, barmodel.RegimeRange, p)
	if score != 65 {
		t.Fatalf("expected score 65, got %d", score)
	}
	if direction != barmodel.DirectionNeutral {
		t.Fatalf("expected NEUTRAL below threshold, got %s", direction)
	}
	if len(rationale) == 0 || rationale[0] != "AtSupportZone" {
		t.Fatalf("expected AtSupportZone as first rationale tag, got %v", rationale)
	}
}

func TestRationaleTruncatedToSixTags(t *testing.T) {
	p := Params{AdxTrendThreshold: 20, ScoreThreshold: 0}
	f := barmodel.FeatureRow{EMAFast: 110, EMASlow: 100, RSI: 60, MACDHist: 0.5, ATR: 1.0, Close: 120}
	_, _, _, _, _, rationale := Decide(f, nil, nil, barmodel.RegimeTrendBull, p)
	if len(rationale) > 6 {
		t.Fatalf("rationale exceeds 6 tags: %v", rationale)
	}
}
