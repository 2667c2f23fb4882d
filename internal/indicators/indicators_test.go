package indicators

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestEMAUndefinedBeforeWindow(t *testing.T) {
	data := []float64{1, 2, 3}
	out := EMA(data, 5)
	for i, v := range out {
		if !math.IsNaN(v) {
			t.Fatalf("index %d: expected NaN, got %v", i, v)
		}
	}
}

func TestEMASeedIsSimpleAverage(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5}
	out := EMA(data, 3)
	if math.IsNaN(out[0]) == false || math.IsNaN(out[1]) == false {
		t.Fatalf("expected NaN before index 2, got %v", out[:2])
	}
	want := (1.0 + 2.0 + 3.0) / 3.0
	if !almostEqual(out[2], want) {
		t.Fatalf("seed EMA = %v, want %v", out[2], want)
	}
	alpha := 2.0 / 4.0
	wantNext := 4.0*alpha + out[2]*(1-alpha)
	if !almostEqual(out[3], wantNext) {
		t.Fatalf("EMA[3] = %v, want %v", out[3], wantNext)
	}
}

func TestRSIAllGainsIs100(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = float64(i + 1)
	}
	out := RSI(closes, 14)
	if !almostEqual(out[14], 100) {
		t.Fatalf("RSI with only gains = %v, want 100", out[14])
	}
}

func TestRSIFlatClosesIs50(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 100
	}
	out := RSI(closes, 14)
	if !almostEqual(out[14], 50) {
		t.Fatalf("RSI on flat closes = %v, want 50", out[14])
	}
}

func TestATRSeedIsSimpleMeanOfFirstNTrueRanges(t *testing.T) {
	highs := []float64{10, 11, 12, 13}
	lows := []float64{9, 10, 11, 12}
	closes := []float64{9.5, 10.5, 11.5, 12.5}
	out := ATR(highs, lows, closes, 3)
	if !math.IsNaN(out[0]) || !math.IsNaN(out[1]) {
		t.Fatalf("expected NaN before index 2")
	}
	// TR_0 = h-l = 1; TR_1 = max(1, |11-9.5|, |10-9.5|) = 1.5; TR_2 = max(1, |12-10.5|,|11-10.5|) = 1.5
	want := (1.0 + 1.5 + 1.5) / 3.0
	if !almostEqual(out[2], want) {
		t.Fatalf("ATR seed = %v, want %v", out[2], want)
	}
}

func TestADXUndefinedBeforeSecondWindow(t *testing.T) {
	n := 10
	highs := make([]float64, n)
	lows := make([]float64, n)
	closes := make([]float64, n)
	for i := 0; i < n; i++ {
		highs[i] = float64(i) + 1
		lows[i] = float64(i)
		closes[i] = float64(i) + 0.5
	}
	out := ADX(highs, lows, closes, 14) // needs 2*14+1 = 29 bars, have 10
	for i, v := range out {
		if !math.IsNaN(v) {
			t.Fatalf("index %d: expected NaN with insufficient bars, got %v", i, v)
		}
	}
}

func TestBollingerWidthIsNonNegativeOnceDefined(t *testing.T) {
	closes := []float64{10, 11, 9, 12, 8, 13, 7, 14, 6, 15, 5, 16, 4, 17, 3, 18, 2, 19, 1, 20}
	bb := Bollinger(closes, 20, 2.0)
	last := len(closes) - 1
	if math.IsNaN(bb.Width[last]) {
		t.Fatalf("expected defined width at last index")
	}
	if bb.Width[last] < 0 {
		t.Fatalf("width = %v, want >= 0", bb.Width[last])
	}
	if bb.Upper[last] <= bb.Lower[last] {
		t.Fatalf("upper %v must exceed lower %v", bb.Upper[last], bb.Lower[last])
	}
}

func TestMACDHistogramIsLineMinusSignal(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100 + float64(i)*0.5
	}
	m := ComputeMACD(closes, 12, 26, 9)
	last := len(closes) - 1
	if math.IsNaN(m.Histogram[last]) {
		t.Fatalf("expected defined histogram at last index")
	}
	want := m.Line[last] - m.Signal[last]
	if !almostEqual(m.Histogram[last], want) {
		t.Fatalf("histogram = %v, want %v", m.Histogram[last], want)
	}
}

func TestWarmupFloorMatchesDefaults(t *testing.T) {
	p := DefaultParams()
	// max(ema_slow=200, adx_length*2=28, bb_length=20, macd_slow+macd_signal=35)
	if got := p.WarmupFloor(); got != 200 {
		t.Fatalf("WarmupFloor() = %d, want 200", got)
	}
}
