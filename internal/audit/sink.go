package audit

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"signalengine/internal/barmodel"
)

// Sink persists every emitted TfSignal/Snapshot as a row, for later
// backtesting/audit queries. Write failures are logged and swallowed,
// same as every other notify.Sink (a SinkFailure must never propagate
// back into the dispatcher).
type Sink struct {
	pool *pgxpool.Pool
}

// NewSink wraps an already-migrated pool as a notify.Sink.
func NewSink(pool *pgxpool.Pool) *Sink {
	return &Sink{pool: pool}
}

// NotifySignal inserts one signal_log row for sig.
func (s *Sink) NotifySignal(sig barmodel.TfSignal) {
	rationale, err := json.Marshal(sig.Rationale)
	if err != nil {
		log.Printf("audit: marshal rationale error: %v", err)
		return
	}
	indicators, err := json.Marshal(sig.Indicators)
	if err != nil {
		log.Printf("audit: marshal indicators error: %v", err)
		return
	}
	sr, err := json.Marshal(sig.SR)
	if err != nil {
		log.Printf("audit: marshal sr error: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err = s.pool.Exec(ctx, `
		insert into signal_log(
			symbol, timeframe, closed_at, regime, signal, score, price,
			entry_hint, sl_hint, tp_hint, rationale, indicators, sr
		) values ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`,
		sig.Symbol, sig.Timeframe, sig.ClosedAt, string(sig.Regime), string(sig.Direction), sig.Score, sig.Price,
		sig.EntryHint, sig.SLHint, sig.TPHint, rationale, indicators, sr,
	)
	if err != nil {
		log.Printf("audit: insert signal_log error: %v", err)
	}
}

// NotifySnapshot inserts one snapshot_log row for snap.
func (s *Sink) NotifySnapshot(snap barmodel.Snapshot) {
	perTF, err := json.Marshal(snap.PerTF)
	if err != nil {
		log.Printf("audit: marshal per_tf error: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err = s.pool.Exec(ctx, `
		insert into snapshot_log(symbol, closed_at, consensus, per_tf)
		values ($1,$2,$3,$4)
	`, snap.Symbol, snap.ClosedAt, snap.Consensus, perTF)
	if err != nil {
		log.Printf("audit: insert snapshot_log error: %v", err)
	}
}
