// Package aggregator folds a stream of closed 1-minute bars into higher
// timeframe candles, emitting an on-close callback per (symbol, timeframe)
// once a window ends. Grounded on the teacher's single-writer usecase loop
// shape, generalized from per-symbol REST polling to an incremental fold.
package aggregator

import (
	"fmt"
	"log"

	"signalengine/internal/barmodel"
	"signalengine/internal/timegrid"
)

// OnClose is invoked synchronously with each bar that just closed. A panic
// from it is recovered and logged; it never aborts ingest of
// subsequent bars (spec §4.2, §7 SinkFailure is not propagated here — this
// is the aggregator's own on-close boundary, distinct from the notifier).
type OnClose func(bar barmodel.Bar)

type key struct {
	symbol string
	tf     string
}

// Aggregator is the single-writer candle roll-up state machine.
type Aggregator struct {
	targets []string // configured target timeframes, e.g. {M15, H1, H4, D1, W1}
	active  map[key]*barmodel.Bar
	onClose OnClose
}

// New returns an Aggregator that rolls 1m bars up into targets and invokes
// onClose for every timeframe window that closes.
func New(targets []string, onClose OnClose) *Aggregator {
	return &Aggregator{
		targets: targets,
		active:  make(map[key]*barmodel.Bar),
		onClose: onClose,
	}
}

// IngestOneMinute folds one closed 1-minute bar into every configured
// target timeframe. bar1m.Timeframe must be "1m".
func (a *Aggregator) IngestOneMinute(symbol string, bar1m barmodel.Bar) error {
	if bar1m.Timeframe != barmodel.TF1m {
		return fmt.Errorf("aggregator: invalid input: expected 1m bar, got %q", bar1m.Timeframe)
	}

	for _, tf := range a.targets {
		tOpen, err := timegrid.AlignOpen(bar1m.TOpen, tf)
		if err != nil {
			return fmt.Errorf("aggregator: %w", err)
		}
		tClose, err := timegrid.EndFromOpen(tOpen, tf)
		if err != nil {
			return fmt.Errorf("aggregator: %w", err)
		}

		k := key{symbol, tf}
		cur := a.active[k]
		if cur == nil || cur.TOpen != tOpen {
			cur = &barmodel.Bar{
				Symbol:    symbol,
				Timeframe: tf,
				TOpen:     tOpen,
				TClose:    tClose,
				Open:      bar1m.Open,
				High:      bar1m.High,
				Low:       bar1m.Low,
				Close:     bar1m.Close,
				Volume:    bar1m.Volume,
			}
			a.active[k] = cur
		} else {
			if bar1m.High > cur.High {
				cur.High = bar1m.High
			}
			if bar1m.Low < cur.Low {
				cur.Low = bar1m.Low
			}
			cur.Close = bar1m.Close
			cur.Volume += bar1m.Volume
		}

		if bar1m.TClose >= tClose {
			cur.Closed = true
			closed := *cur
			delete(a.active, k)
			a.dispatchClose(closed)
		}
	}
	return nil
}

// dispatchClose invokes the on-close sink, recovering from a panic so one
// bad downstream consumer never stalls subsequent bars.
func (a *Aggregator) dispatchClose(bar barmodel.Bar) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("aggregator: on-close sink panicked for %s %s: %v", bar.Symbol, bar.Timeframe, r)
		}
	}()
	a.onClose(bar)
}
