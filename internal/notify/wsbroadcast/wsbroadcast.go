// Package wsbroadcast pushes emitted TfSignal/Snapshot messages to
// connected websocket clients as soon as they are produced. Adapted from
// the teacher's internal/delivery/websocket.Handler, which polled a
// repository on a 5s ticker; here the hub is driven by emission instead of
// polling, since the pipeline already knows exactly when a message exists.
package wsbroadcast

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"signalengine/internal/barmodel"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

const clientSendBuffer = 16

// Hub is a set of connected websocket clients, each fed from its own
// buffered channel so one slow reader cannot block message delivery to the
// rest.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// New returns an empty Hub, usable immediately as a notify.Sink.
func New() *Hub {
	return &Hub{clients: make(map[*client]struct{})}
}

// Handle upgrades an incoming HTTP request to a websocket connection and
// registers it for broadcast until the connection closes.
func (h *Hub) Handle(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("wsbroadcast: upgrade error: %v", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, clientSendBuffer)}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	log.Println("wsbroadcast: client connected")
	go h.writeLoop(c)
	go h.readLoop(c) // discard inbound traffic, detect disconnects
}

func (h *Hub) writeLoop(c *client) {
	defer h.remove(c)
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

func (h *Hub) readLoop(c *client) {
	defer h.remove(c)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
		c.conn.Close()
	}
	h.mu.Unlock()
}

func (h *Hub) broadcast(v any) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Printf("wsbroadcast: marshal error: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- body:
		default:
			log.Println("wsbroadcast: client send buffer full, dropping message")
		}
	}
}

// NotifySignal broadcasts sig to every connected client.
func (h *Hub) NotifySignal(sig barmodel.TfSignal) { h.broadcast(sig) }

// NotifySnapshot broadcasts snap to every connected client.
func (h *Hub) NotifySnapshot(snap barmodel.Snapshot) { h.broadcast(snap) }
