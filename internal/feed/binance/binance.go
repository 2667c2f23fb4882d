// Package binance dials the exchange's combined kline websocket stream and
// decodes 1-minute kline events into feed.Events. Reconnection uses the
// doubling backoff (capped at 30s) from the original Python
// ws_binance.py's kline_1m_events, generalized to gorilla/websocket's
// client-dial idiom (the teacher only uses gorilla/websocket server-side;
// this reuses the same library for the client leg).
package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"signalengine/internal/feed"
)

const (
	spotBase    = "wss://stream.binance.com:9443/stream"
	futuresBase = "wss://fstream.binance.com/stream"

	initialBackoff = 1 * time.Second
	maxBackoff     = 30 * time.Second
	pingInterval   = 15 * time.Second
	pongTimeout    = 20 * time.Second
)

// Client streams decoded 1-minute kline events for a fixed symbol set.
type Client struct {
	url    string
	events chan feed.Event
}

// Dial starts the background connect/reconnect loop and returns a Client
// ready to be read via Next. marketType selects the futures vs. spot
// stream host ("usdt_perp"/"coin_perp" -> futures, anything else -> spot).
func Dial(ctx context.Context, symbols []string, marketType string) *Client {
	c := &Client{
		url:    streamURL(marketType, klineStreams(symbols)),
		events: make(chan feed.Event),
	}
	go c.run(ctx)
	return c
}

// Next blocks for the next decoded event, or returns ctx.Err() once ctx is
// done.
func (c *Client) Next(ctx context.Context) (feed.Event, error) {
	select {
	case <-ctx.Done():
		return feed.Event{}, ctx.Err()
	case ev, ok := <-c.events:
		if !ok {
			return feed.Event{}, fmt.Errorf("binance: stream closed")
		}
		return ev, nil
	}
}

func streamURL(marketType string, streams []string) string {
	base := spotBase
	switch strings.ToLower(marketType) {
	case "usdt_perp", "coin_perp":
		base = futuresBase
	}
	return fmt.Sprintf("%s?streams=%s", base, strings.Join(streams, "/"))
}

func klineStreams(symbols []string) []string {
	out := make([]string, len(symbols))
	for i, s := range symbols {
		out[i] = strings.ToLower(s) + "@kline_1m"
	}
	return out
}

func (c *Client) run(ctx context.Context) {
	defer close(c.events)
	backoff := initialBackoff
	for ctx.Err() == nil {
		if err := c.readOnce(ctx); err != nil {
			log.Printf("binance: reconnecting after error: %v", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(backoff):
			}
			backoff *= 2
			if backoff > maxBackoff {
				backoff = maxBackoff
			}
			continue
		}
		backoff = initialBackoff
	}
}

func (c *Client) readOnce(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(pongTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongTimeout))
		return nil
	})

	stopPing := make(chan struct{})
	defer close(stopPing)
	go func() {
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			case <-stopPing:
				return
			}
		}
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("read: %w", err)
		}
		ev, ok := decodeKlineEvent(raw)
		if !ok {
			continue
		}
		select {
		case c.events <- ev:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

type combinedStreamMessage struct {
	Data klineMessage `json:"data"`
}

type klineMessage struct {
	EventType string    `json:"e"`
	Symbol    string    `json:"s"`
	Kline     klineBody `json:"k"`
}

type klineBody struct {
	OpenTime  int64  `json:"t"`
	CloseTime int64  `json:"T"`
	Open      string `json:"o"`
	High      string `json:"h"`
	Low       string `json:"l"`
	Close     string `json:"c"`
	Volume    string `json:"v"`
	Closed    bool   `json:"x"`
}

func decodeKlineEvent(raw []byte) (feed.Event, bool) {
	var msg combinedStreamMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return feed.Event{}, false
	}
	if msg.Data.EventType != "kline" {
		return feed.Event{}, false
	}
	k := msg.Data.Kline
	return feed.Event{
		Symbol:   msg.Data.Symbol,
		TOpenMs:  k.OpenTime,
		TCloseMs: k.CloseTime,
		Open:     parseFloat(k.Open),
		High:     parseFloat(k.High),
		Low:      parseFloat(k.Low),
		Close:    parseFloat(k.Close),
		Volume:   parseFloat(k.Volume),
		Closed:   k.Closed,
	}, true
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}
