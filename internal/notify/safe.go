package notify

import (
	"log"

	"signalengine/internal/barmodel"
)

func safeNotifySignal(s Sink, sig barmodel.TfSignal) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("notify: sink panicked on signal %s %s: %v", sig.Symbol, sig.Timeframe, r)
		}
	}()
	s.NotifySignal(sig)
}

func safeNotifySnapshot(s Sink, snap barmodel.Snapshot) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("notify: sink panicked on snapshot %s: %v", snap.Symbol, r)
		}
	}()
	s.NotifySnapshot(snap)
}
