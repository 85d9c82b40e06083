package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"golang.org/x/net/websocket"

	"github.com/buildwithgo/radioitems/host"
)

const (
	// DefaultQueueSize is how many messages a subscriber may lag behind
	// before it is dropped.
	DefaultQueueSize = 16
	// DefaultWriteTimeout bounds a single frame write.
	DefaultWriteTimeout = 5 * time.Second
)

// Handler is a type alias for the websocket handler function.
type Handler func(*websocket.Conn)

// New creates a host handler that upgrades the connection to a WebSocket.
func New(handler Handler) host.Handler {
	return func(c *host.Context) error {
		// ServeHTTP hijacks the connection and returns when it closes
		websocket.Handler(handler).ServeHTTP(c.Writer, c.Request)
		return nil
	}
}

type subscriber struct {
	ws    *websocket.Conn
	queue chan []byte
}

// Hub fans JSON messages out to every subscribed connection. Broadcast never
// waits on the network: each subscriber has its own queue drained by a
// writer goroutine, and a subscriber whose queue is full is disconnected.
type Hub struct {
	queueSize    int
	writeTimeout time.Duration

	mu     sync.Mutex
	subs   map[*websocket.Conn]*subscriber
	closed bool
}

// HubOption configures a Hub.
type HubOption func(*Hub)

// WithQueueSize sets how many pending messages a subscriber may hold.
func WithQueueSize(n int) HubOption {
	return func(h *Hub) {
		if n > 0 {
			h.queueSize = n
		}
	}
}

// WithWriteTimeout sets the deadline for writing one message.
func WithWriteTimeout(d time.Duration) HubOption {
	return func(h *Hub) {
		if d > 0 {
			h.writeTimeout = d
		}
	}
}

// NewHub creates an empty hub.
func NewHub(opts ...HubOption) *Hub {
	h := &Hub{
		queueSize:    DefaultQueueSize,
		writeTimeout: DefaultWriteTimeout,
		subs:         make(map[*websocket.Conn]*subscriber),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Subscribe registers ws and starts its writer. It returns false once the
// hub is closed.
func (h *Hub) Subscribe(ws *websocket.Conn) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	if _, ok := h.subs[ws]; ok {
		return true
	}
	s := &subscriber{ws: ws, queue: make(chan []byte, h.queueSize)}
	h.subs[ws] = s
	go h.write(s)
	return true
}

// Unsubscribe removes ws and stops its writer.
func (h *Hub) Unsubscribe(ws *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.drop(ws)
}

// Len returns the number of subscribers.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Broadcast queues v, encoded as JSON, for every subscriber. Subscribers
// with a full queue are closed and dropped.
func (h *Hub) Broadcast(v any) error {
	msg, err := json.Marshal(v)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for ws, s := range h.subs {
		select {
		case s.queue <- msg:
		default:
			ws.Close()
			h.drop(ws)
		}
	}
	return nil
}

// Close disconnects all subscribers and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for ws := range h.subs {
		ws.Close()
		h.drop(ws)
	}
}

// drop must be called with h.mu held.
func (h *Hub) drop(ws *websocket.Conn) {
	if s, ok := h.subs[ws]; ok {
		delete(h.subs, ws)
		close(s.queue)
	}
}

// write sends queued messages until the queue is closed or a write fails.
func (h *Hub) write(s *subscriber) {
	for msg := range s.queue {
		if err := s.ws.SetWriteDeadline(time.Now().Add(h.writeTimeout)); err != nil {
			s.ws.Close()
			h.Unsubscribe(s.ws)
			return
		}
		if err := websocket.Message.Send(s.ws, string(msg)); err != nil {
			s.ws.Close()
			h.Unsubscribe(s.ws)
			return
		}
	}
}

// Stream returns a handler that subscribes each connection to h and keeps
// it open until the client goes away. Incoming frames are discarded.
func (h *Hub) Stream() Handler {
	return func(ws *websocket.Conn) {
		if !h.Subscribe(ws) {
			ws.Close()
			return
		}
		defer h.Unsubscribe(ws)

		var discard string
		for {
			if err := websocket.Message.Receive(ws, &discard); err != nil {
				return
			}
		}
	}
}
