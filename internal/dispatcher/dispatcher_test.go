package dispatcher

import (
	"context"
	"testing"

	"signalengine/internal/barmodel"
	"signalengine/internal/feed"
	"signalengine/internal/indicators"
	"signalengine/internal/srzone"
)

// sliceSource replays a fixed list of events, then stops the dispatcher by
// canceling its own context, standing in for a feed that has run dry.
type sliceSource struct {
	events []feed.Event
	i      int
	cancel context.CancelFunc
}

func (s *sliceSource) Next(ctx context.Context) (feed.Event, error) {
	if s.i < len(s.events) {
		e := s.events[s.i]
		s.i++
		return e, nil
	}
	s.cancel()
	return feed.Event{}, ctx.Err()
}

type captureSink struct {
	signals   []barmodel.TfSignal
	snapshots []barmodel.Snapshot
}

func (c *captureSink) NotifySignal(sig barmodel.TfSignal)    { c.signals = append(c.signals, sig) }
func (c *captureSink) NotifySnapshot(snap barmodel.Snapshot) { c.snapshots = append(c.snapshots, snap) }

func flatMinuteEvents(n int) []feed.Event {
	events := make([]feed.Event, n)
	for i := 0; i < n; i++ {
		tOpen := int64(i) * 60000
		events[i] = feed.Event{
			Symbol: "BTCUSDT", TOpenMs: tOpen, TCloseMs: tOpen + 60000,
			Open: 100, High: 100, Low: 100, Close: 100, Volume: 1, Closed: true,
		}
	}
	return events
}

func TestM15RollupEndToEndSuppressesUntilWarm(t *testing.T) {
	sink := &captureSink{}
	cfg := Config{
		Symbols:         map[string]bool{"BTCUSDT": true},
		Timeframes:      []TFConfig{{TF: barmodel.TFM15, AdxTrendThreshold: 20, ScoreThreshold: 70}},
		IndicatorParams: indicators.DefaultParams(),
		SRParams:        srzone.DefaultParams(),
		Sink:            sink,
	}
	d := New(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	src := &sliceSource{events: flatMinuteEvents(15), cancel: cancel}
	if err := d.Run(ctx, src); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	// Since warmup floor (>=200 bars for default ema_slow) is far above a
	// single M15 close, no signal should have been emitted despite exactly
	// one roll-up closing.
	if len(sink.signals) != 0 {
		t.Fatalf("expected no emitted signal below warmup floor, got %d", len(sink.signals))
	}
}

func TestDispatcherDropsUnconfiguredSymbol(t *testing.T) {
	sink := &captureSink{}
	cfg := Config{
		Symbols:         map[string]bool{"ETHUSDT": true},
		Timeframes:      []TFConfig{{TF: barmodel.TFM15, AdxTrendThreshold: 20, ScoreThreshold: 70}},
		IndicatorParams: indicators.DefaultParams(),
		SRParams:        srzone.DefaultParams(),
		Sink:            sink,
	}
	d := New(cfg)
	ctx, cancel := context.WithCancel(context.Background())
	src := &sliceSource{events: flatMinuteEvents(15), cancel: cancel}
	if err := d.Run(ctx, src); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if d.buffer.Len("BTCUSDT", barmodel.TFM15) != 0 {
		t.Fatal("expected BTCUSDT bars to be dropped as an unconfigured symbol")
	}
}
