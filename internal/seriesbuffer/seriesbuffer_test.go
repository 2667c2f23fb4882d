package seriesbuffer

import "testing"

func TestAppendAndSnapshotOrder(t *testing.T) {
	b := New(0)
	for i := 0; i < 5; i++ {
		b.Append("BTCUSDT", "M15", Bar{Close: float64(i)})
	}
	snap := b.Snapshot("BTCUSDT", "M15")
	if len(snap) != 5 {
		t.Fatalf("expected 5 bars, got %d", len(snap))
	}
	for i, bar := range snap {
		if bar.Close != float64(i) {
			t.Fatalf("bar %d: expected close %d, got %v", i, i, bar.Close)
		}
	}
	if b.Len("BTCUSDT", "M15") != 5 {
		t.Fatalf("expected Len 5, got %d", b.Len("BTCUSDT", "M15"))
	}
}

func TestAppendEvictsOldest(t *testing.T) {
	b := New(3)
	for i := 0; i < 5; i++ {
		b.Append("ETHUSDT", "H1", Bar{Close: float64(i)})
	}
	snap := b.Snapshot("ETHUSDT", "H1")
	if len(snap) != 3 {
		t.Fatalf("expected 3 bars after eviction, got %d", len(snap))
	}
	want := []float64{2, 3, 4}
	for i, bar := range snap {
		if bar.Close != want[i] {
			t.Fatalf("bar %d: expected %v, got %v", i, want[i], bar.Close)
		}
	}
}

func TestKeysAreIndependent(t *testing.T) {
	b := New(0)
	b.Append("BTCUSDT", "M15", Bar{Close: 1})
	b.Append("BTCUSDT", "H1", Bar{Close: 2})
	if b.Len("BTCUSDT", "M15") != 1 || b.Len("BTCUSDT", "H1") != 1 {
		t.Fatal("expected independent slots per (symbol, tf)")
	}
}
