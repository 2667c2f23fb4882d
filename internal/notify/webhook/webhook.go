// Package webhook posts emitted TfSignal/Snapshot messages as JSON to a
// configured URL, grounded on the original Python Notifier.send_json (a
// plain POST with a short client timeout, errors logged and swallowed).
package webhook

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"signalengine/internal/barmodel"
)

// Sink posts JSON messages to a single webhook URL.
type Sink struct {
	url    string
	client *http.Client
}

// New returns a webhook Sink posting to url with a 10s request timeout.
func New(url string) *Sink {
	return &Sink{url: url, client: &http.Client{Timeout: 10 * time.Second}}
}

// NotifySignal posts sig's wire JSON shape.
func (s *Sink) NotifySignal(sig barmodel.TfSignal) {
	s.post(sig)
}

// NotifySnapshot posts snap's wire JSON shape.
func (s *Sink) NotifySnapshot(snap barmodel.Snapshot) {
	s.post(snap)
}

func (s *Sink) post(v any) {
	if s.url == "" {
		return
	}
	body, err := json.Marshal(v)
	if err != nil {
		log.Printf("webhook: marshal error: %v", err)
		return
	}
	resp, err := s.client.Post(s.url, "application/json", bytes.NewReader(body))
	if err != nil {
		log.Printf("webhook: post error: %v", err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		log.Printf("webhook: unexpected status %d", resp.StatusCode)
	}
}
