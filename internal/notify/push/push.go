// Package push delivers TfSignal/Snapshot messages via Firebase Cloud
// Messaging. Adapted from the teacher's internal/infrastructure/fcm.Client,
// retargeted from ad-hoc coin-status alerts to the pipeline's own messages,
// and with the teacher's cooldown/dedup map dropped (alert rate-limiting is
// an explicit non-goal).
package push

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"signalengine/internal/barmodel"
)

// Sink pushes a notification per emitted message to every registered device
// token. A Sink with no initialized client is inert (FCM disabled).
type Sink struct {
	client *messaging.Client

	mu     sync.RWMutex
	tokens []string
}

// New initializes a Firebase Messaging client from credPath. An empty
// credPath disables the sink (FCM not configured), matching the teacher's
// fallback when no credentials are present.
func New(credPath string) (*Sink, error) {
	if credPath == "" {
		log.Println("push: no Firebase credentials configured, push sink disabled")
		return &Sink{}, nil
	}

	ctx := context.Background()
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credPath))
	if err != nil {
		return nil, fmt.Errorf("push: initializing firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("push: getting messaging client: %w", err)
	}
	return &Sink{client: client}, nil
}

// RegisterToken adds a device token to the broadcast set.
func (s *Sink) RegisterToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = append(s.tokens, token)
}

func (s *Sink) snapshotTokens() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.tokens))
	copy(out, s.tokens)
	return out
}

// NotifySignal pushes a title/body summary of sig to every registered token.
func (s *Sink) NotifySignal(sig barmodel.TfSignal) {
	title := fmt.Sprintf("%s %s %s", sig.Symbol, sig.Timeframe, sig.Direction)
	body := fmt.Sprintf("score %d regime %s price %.4f", sig.Score, sig.Regime, sig.Price)
	s.send(title, body, map[string]string{
		"symbol": sig.Symbol, "timeframe": sig.Timeframe, "signal": string(sig.Direction),
	})
}

// NotifySnapshot pushes a consensus summary of snap to every registered token.
func (s *Sink) NotifySnapshot(snap barmodel.Snapshot) {
	title := fmt.Sprintf("%s consensus %s", snap.Symbol, snap.Consensus)
	body := fmt.Sprintf("closed_at %d", snap.ClosedAt)
	s.send(title, body, map[string]string{"symbol": snap.Symbol, "type": "snapshot"})
}

func (s *Sink) send(title, body string, data map[string]string) {
	if s.client == nil {
		return
	}
	tokens := s.snapshotTokens()
	if len(tokens) == 0 {
		return
	}

	msg := &messaging.MulticastMessage{
		Tokens:       tokens,
		Notification: &messaging.Notification{Title: title, Body: body},
		Data:         data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "signalengine_alerts",
				Priority:  messaging.PriorityHigh,
			},
		},
	}

	resp, err := s.client.SendEachForMulticast(context.Background(), msg)
	if err != nil {
		log.Printf("push: send error: %v", err)
		return
	}
	log.Printf("push: sent %d messages (%d failures)", resp.SuccessCount, resp.FailureCount)
}

// CredentialsFromEnv mirrors the teacher's fallback of accepting either a
// credentials file path or an inline JSON blob written to a temp file, used
// when the config file leaves firebase_credentials_path empty.
func CredentialsFromEnv() (string, error) {
	if p := os.Getenv("FIREBASE_CREDENTIALS_PATH"); p != "" {
		return p, nil
	}
	blob := os.Getenv("FIREBASE_CREDENTIALS_JSON")
	if blob == "" {
		return "", nil
	}
	f, err := os.CreateTemp("", "firebase-credentials-*.json")
	if err != nil {
		return "", fmt.Errorf("push: creating temp credentials file: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(blob); err != nil {
		return "", fmt.Errorf("push: writing temp credentials file: %w", err)
	}
	return f.Name(), nil
}
