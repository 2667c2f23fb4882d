package timegrid

import "testing"

func TestDurationUnknownTF(t *testing.T) {
	if _, err := Duration("M5"); err == nil {
		t.Fatal("expected error for unrecognized timeframe")
	}
}

func TestAlignOpenIdempotent(t *testing.T) {
	tfs := []string{"1m", "M15", "H1", "H4", "D1", "W1"}
	samples := []int64{0, 1, 59999, 900000, 1_700_000_000_000, 1_700_000_123_456}
	for _, tf := range tfs {
		for _, ts := range samples {
			a1, err := AlignOpen(ts, tf)
			if err != nil {
				t.Fatalf("AlignOpen(%d,%s): %v", ts, tf, err)
			}
			a2, err := AlignOpen(a1, tf)
			if err != nil {
				t.Fatalf("AlignOpen(%d,%s) second pass: %v", a1, tf, err)
			}
			if a1 != a2 {
				t.Fatalf("%s not idempotent at ts=%d: %d != %d", tf, ts, a1, a2)
			}
		}
	}
}

func TestAlignOpenM15Grid(t *testing.T) {
	open, err := AlignOpen(900000, "M15")
	if err != nil {
		t.Fatal(err)
	}
	if open != 900000 {
		t.Fatalf("expected 900000, got %d", open)
	}
	open, err = AlignOpen(899999, "M15")
	if err != nil {
		t.Fatal(err)
	}
	if open != 0 {
		t.Fatalf("expected 0, got %d", open)
	}
}

func TestEndFromOpen(t *testing.T) {
	end, err := EndFromOpen(0, "M15")
	if err != nil {
		t.Fatal(err)
	}
	if end != 900000 {
		t.Fatalf("expected 900000, got %d", end)
	}
}

func TestAlignOpenW1MondayAnchor(t *testing.T) {
	// 1970-01-05 00:00:00 UTC is a Monday (epoch was a Thursday).
	mondayMs := int64(4 * msPerDay)
	open, err := AlignOpen(mondayMs+123456, "W1")
	if err != nil {
		t.Fatal(err)
	}
	if open != mondayMs {
		t.Fatalf("expected week to open at %d, got %d", mondayMs, open)
	}
}
