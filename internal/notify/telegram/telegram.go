// Package telegram posts formatted TfSignal/Snapshot messages to a Telegram
// chat via the bot sendMessage API. Adapted from gatiella-binance-trading-bot's
// telegram.Notifier (PostForm against api.telegram.org), retargeted from
// trade alerts to the pipeline's own message shapes, with formatting also
// grounded on the original Python fmt_signal_msg.
package telegram

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"signalengine/internal/barmodel"
)

// Sink posts messages to one Telegram chat.
type Sink struct {
	botToken string
	chatID   string
	client   *http.Client
}

// New returns a telegram Sink for botToken/chatID.
func New(botToken, chatID string) *Sink {
	return &Sink{botToken: botToken, chatID: chatID, client: &http.Client{Timeout: 10 * time.Second}}
}

// NotifySignal sends a formatted summary of sig.
func (s *Sink) NotifySignal(sig barmodel.TfSignal) {
	s.send(formatSignal(sig))
}

// NotifySnapshot sends a formatted summary of snap.
func (s *Sink) NotifySnapshot(snap barmodel.Snapshot) {
	s.send(formatSnapshot(snap))
}

func (s *Sink) send(text string) {
	if s.botToken == "" || s.chatID == "" {
		return
	}
	apiURL := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", s.botToken)
	data := url.Values{}
	data.Set("chat_id", s.chatID)
	data.Set("text", text)
	data.Set("parse_mode", "HTML")
	data.Set("disable_web_page_preview", "true")

	resp, err := s.client.PostForm(apiURL, data)
	if err != nil {
		log.Printf("telegram: send error: %v", err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Printf("telegram: unexpected status %d", resp.StatusCode)
	}
}

func formatSignal(sig barmodel.TfSignal) string {
	sup, res := "None", "None"
	if sig.SR.NearestSupport != nil {
		sup = fmt.Sprintf("%.2f-%.2f", sig.SR.NearestSupport[0], sig.SR.NearestSupport[1])
	}
	if sig.SR.NearestResistance != nil {
		res = fmt.Sprintf("%.2f-%.2f", sig.SR.NearestResistance[0], sig.SR.NearestResistance[1])
	}
	reasons := sig.Rationale
	if len(reasons) > 4 {
		reasons = reasons[:4]
	}
	return fmt.Sprintf(
		"[%s] %s • %s • Score %d\n"+
			"Regime: %s | Close: %.2f\n"+
			"S/R: S %s | R %s\n"+
			"Entry %.2f | SL %.2f | TP %.2f\n"+
			"Reasons: %s",
		sig.Symbol, sig.Timeframe, sig.Direction, sig.Score,
		sig.Regime, sig.Price,
		sup, res,
		sig.EntryHint, sig.SLHint, sig.TPHint,
		strings.Join(reasons, ", "),
	)
}

func formatSnapshot(snap barmodel.Snapshot) string {
	return fmt.Sprintf("[%s] consensus=%s at %d", snap.Symbol, snap.Consensus, snap.ClosedAt)
}
