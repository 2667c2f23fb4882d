// Package dispatcher wires a feed source through the aggregator, buffer,
// S/R detector, indicator engine and signal engine, handing finished
// TfSignal/Snapshot messages to the notifier sink. It is the single-writer
// chain described in spec §5: each closed 1-minute bar is processed to
// completion, through every configured timeframe, before the next is read.
package dispatcher

import (
	"context"
	"errors"
	"log"
	"strings"

	"signalengine/internal/aggregator"
	"signalengine/internal/barmodel"
	"signalengine/internal/consensus"
	"signalengine/internal/feed"
	"signalengine/internal/indicators"
	"signalengine/internal/notify"
	"signalengine/internal/seriesbuffer"
	"signalengine/internal/signalengine"
	"signalengine/internal/srzone"
)

// TFConfig is one configured target timeframe and its signal-engine
// thresholds (spec §6 configuration: timeframes list).
type TFConfig struct {
	TF                string
	AdxTrendThreshold float64
	ScoreThreshold    int
}

// Config bundles everything the dispatcher needs to wire the pipeline.
type Config struct {
	Symbols          map[string]bool // uppercase symbol set
	Timeframes       []TFConfig      // order defines display/consensus iteration order
	IndicatorParams  indicators.Params
	SRParams         srzone.Params
	BufferLimit      int
	Sink             notify.Sink
}

// Dispatcher binds a feed.Source to the pipeline for the lifetime of Run.
type Dispatcher struct {
	cfg        Config
	buffer     *seriesbuffer.Buffer
	detector   *srzone.Detector
	consensus  *consensus.Aggregator
	agg        *aggregator.Aggregator
	tfParams   map[string]signalengine.Params
	targetTFs  []string
}

// New builds a Dispatcher wired per cfg.
func New(cfg Config) *Dispatcher {
	targetTFs := make([]string, len(cfg.Timeframes))
	tfParams := make(map[string]signalengine.Params, len(cfg.Timeframes))
	for i, tf := range cfg.Timeframes {
		targetTFs[i] = tf.TF
		tfParams[tf.TF] = signalengine.Params{
			AdxTrendThreshold: tf.AdxTrendThreshold,
			ScoreThreshold:    tf.ScoreThreshold,
		}
	}

	d := &Dispatcher{
		cfg:       cfg,
		buffer:    seriesbuffer.New(cfg.BufferLimit),
		detector:  srzone.New(cfg.SRParams),
		consensus: consensus.New(targetTFs),
		tfParams:  tfParams,
		targetTFs: targetTFs,
	}
	d.agg = aggregator.New(targetTFs, d.onBarClosed)
	return d
}

// Run consumes src until ctx is canceled. It stops feed consumption at the
// next suspension point on cancellation; any in-flight synchronous step
// completes first (spec §5). Any other error from src is logged and Run
// keeps reading; it does not return when src runs out of events.
func (d *Dispatcher) Run(ctx context.Context, src feed.Source) error {
	for {
		ev, err := src.Next(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			log.Printf("dispatcher: feed source error: %v", err)
			continue
		}

		if !ev.Closed {
			continue
		}
		symbol := strings.ToUpper(ev.Symbol)
		if !d.cfg.Symbols[symbol] {
			continue
		}

		bar := barmodel.Bar{
			Symbol:    symbol,
			Timeframe: barmodel.TF1m,
			TOpen:     ev.TOpenMs,
			TClose:    ev.TCloseMs,
			Open:      ev.Open,
			High:      ev.High,
			Low:       ev.Low,
			Close:     ev.Close,
			Volume:    ev.Volume,
			Closed:    true,
		}
		if err := d.agg.IngestOneMinute(symbol, bar); err != nil {
			log.Printf("dispatcher: %v", err)
		}
	}
}

// onBarClosed is the aggregator's on-close callback: it runs the rest of
// the single-writer chain for one closed higher-timeframe bar.
func (d *Dispatcher) onBarClosed(bar barmodel.Bar) {
	d.buffer.Append(bar.Symbol, bar.Timeframe, seriesbuffer.Bar{
		Open: bar.Open, High: bar.High, Low: bar.Low, Close: bar.Close, Volume: bar.Volume,
	})
	d.detector.Update(bar.Symbol, bar.Timeframe, bar.High, bar.Low, bar.Close)

	floor := d.cfg.IndicatorParams.WarmupFloor()
	if d.buffer.Len(bar.Symbol, bar.Timeframe) < floor {
		log.Printf("dispatcher: %s %s warmup (%d/%d bars)", bar.Symbol, bar.Timeframe, d.buffer.Len(bar.Symbol, bar.Timeframe), floor)
		return
	}

	snap := d.buffer.Snapshot(bar.Symbol, bar.Timeframe)
	opens, highs, lows, closes, volumes := splitBars(snap)
	features := indicators.Compute(opens, highs, lows, closes, volumes, d.cfg.IndicatorParams)

	support, resistance := d.detector.Nearest(bar.Symbol, bar.Timeframe, features.Close)
	tfParams := d.tfParams[bar.Timeframe]
	regime := signalengine.Classify(features, tfParams)
	direction, score, entry, sl, tp, rationale := signalengine.Decide(features, support, resistance, regime, tfParams)

	sig := barmodel.TfSignal{
		Symbol:     bar.Symbol,
		Timeframe:  bar.Timeframe,
		ClosedAt:   bar.TClose,
		Regime:     regime,
		Direction:  direction,
		Score:      score,
		Price:      bar.Close,
		Indicators: features.ToIndicatorSnapshot(),
		SR: barmodel.SRHint{
			NearestSupport:    support.Pair(),
			NearestResistance: resistance.Pair(),
		},
		EntryHint: entry,
		SLHint:    sl,
		TPHint:    tp,
		Rationale: rationale,
	}

	log.Printf("dispatcher: %s %s signal=%s score=%d regime=%s", sig.Symbol, sig.Timeframe, sig.Direction, sig.Score, sig.Regime)

	if d.cfg.Sink != nil {
		d.cfg.Sink.NotifySignal(sig)
	}
	if snapshotMsg, ok := d.consensus.Observe(sig); ok {
		log.Printf("dispatcher: %s snapshot consensus=%s", snapshotMsg.Symbol, snapshotMsg.Consensus)
		if d.cfg.Sink != nil {
			d.cfg.Sink.NotifySnapshot(snapshotMsg)
		}
	}
}

func splitBars(bars []seriesbuffer.Bar) (opens, highs, lows, closes, volumes []float64) {
	opens = make([]float64, len(bars))
	highs = make([]float64, len(bars))
	lows = make([]float64, len(bars))
	closes = make([]float64, len(bars))
	volumes = make([]float64, len(bars))
	for i, b := range bars {
		opens[i], highs[i], lows[i], closes[i], volumes[i] = b.Open, b.High, b.Low, b.Close, b.Volume
	}
	return
}
