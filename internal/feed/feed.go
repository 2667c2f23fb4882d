// Package feed defines the abstract upstream market-data source the
// dispatcher consumes. Concrete implementations (see feed/binance) own
// their own connection lifecycle and reconnection policy.
package feed

import "context"

// Event is a decoded bar event for the 1-minute timeframe (spec §6's feed
// source contract). The pipeline only acts on events with Closed == true.
type Event struct {
	Symbol   string
	TOpenMs  int64
	TCloseMs int64
	Open     float64
	High     float64
	Low      float64
	Close    float64
	Volume   float64
	Closed   bool
}

// Source is a lazy sequence of Events. Next blocks until an event is ready,
// ctx is canceled, or the source is exhausted.
type Source interface {
	Next(ctx context.Context) (Event, error)
}
