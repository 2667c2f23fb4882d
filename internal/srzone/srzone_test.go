package srzone

import (
	"testing"

	"signalengine/internal/barmodel"
)

func TestPivotFormationCreatesSingleZone(t *testing.T) {
	p := DefaultParams()
	p.PivotWindow = 2
	d := New(p)

	highs := []float64{10, 11, 12, 15, 12, 11, 10}
	for _, h := range highs {
		// Flat lows: a constant array never satisfies the strict pivot-low
		// inequality, so only the high-side pivot fires here.
		d.Update("BTCUSDT", "M15", h, 5, h-0.5)
	}

	s := d.slots[key{"BTCUSDT", "M15"}]
	if len(s.zones) != 1 {
		t.Fatalf("expected exactly 1 zone, got %d", len(s.zones))
	}
	z := s.zones[0]
	if !(z.PriceLow < 15 && z.PriceHigh > 15) {
		t.Fatalf("expected band bracketing level 15, got [%v, %v]", z.PriceLow, z.PriceHigh)
	}
	if z.Touches != 1 || !almostEqual(z.Score, 1.0) {
		t.Fatalf("expected touches=1 score=1.0, got touches=%d score=%v", z.Touches, z.Score)
	}
}

// TestMergeOrCreateToleranceIsPercentOnly exercises merge_or_create in
// isolation with atr=0, matching the spec's synthetic scenario where the
// percent term alone determines the tolerance band.
func TestMergeOrCreateToleranceIsPercentOnly(t *testing.T) {
	p := DefaultParams() // merge_tolerance_pct=0.1 -> 0.001 fraction
	d := New(p)
	s := &slot{atr: 0}

	d.mergeOrCreate(s, 15, 0)
	if len(s.zones) != 1 {
		t.Fatalf("expected 1 zone, got %d", len(s.zones))
	}
	z := s.zones[0]
	wantLow, wantHigh := 15*(1-0.001), 15*(1+0.001)
	if !almostEqual(z.PriceLow, wantLow) || !almostEqual(z.PriceHigh, wantHigh) {
		t.Fatalf("unexpected band: [%v, %v], want [%v, %v]", z.PriceLow, z.PriceHigh, wantLow, wantHigh)
	}
	if z.Touches != 1 || !almostEqual(z.Score, 1.0) {
		t.Fatalf("expected touches=1 score=1.0, got touches=%d score=%v", z.Touches, z.Score)
	}

	// A second pivot at 15.005 falls inside the existing band and merges.
	d.mergeOrCreate(s, 15.005, 1)
	if len(s.zones) != 1 {
		t.Fatalf("expected zone count to remain 1 after merge, got %d", len(s.zones))
	}
	if s.zones[0].Touches != 2 || !almostEqual(s.zones[0].Score, 2.0) {
		t.Fatalf("expected touches=2 score=2.0 after merge, got touches=%d score=%v", s.zones[0].Touches, s.zones[0].Score)
	}
}

func TestNearestSupportAndResistance(t *testing.T) {
	p := DefaultParams()
	p.PivotWindow = 2
	d := New(p)

	k := key{"BTCUSDT", "M15"}
	d.slots[k] = &slot{
		zones: []*barmodel.Zone{
			{PriceLow: 95, PriceHigh: 96, CreatedIdx: 0},
			{PriceLow: 104, PriceHigh: 105, CreatedIdx: 1},
			{PriceLow: 99, PriceHigh: 101, CreatedIdx: 2}, // straddles 100, excluded from both sides
		},
	}

	support, resistance := d.Nearest("BTCUSDT", "M15", 100)
	if support == nil || support.PriceHigh != 96 {
		t.Fatalf("expected support band ending at 96, got %+v", support)
	}
	if resistance == nil || resistance.PriceLow != 104 {
		t.Fatalf("expected resistance band starting at 104, got %+v", resistance)
	}
}

func TestNearestReturnsNilWhenEmpty(t *testing.T) {
	d := New(DefaultParams())
	support, resistance := d.Nearest("BTCUSDT", "M15", 100)
	if support != nil || resistance != nil {
		t.Fatal("expected nil, nil for an unknown (symbol, tf)")
	}
}

func almostEqual(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-9
}
