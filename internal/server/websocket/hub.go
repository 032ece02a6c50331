// Package websocket streams card events to WebSocket clients.
package websocket

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	queueSize    = 256
	writeTimeout = 10 * time.Second
	pongTimeout  = 60 * time.Second
	pingInterval = pongTimeout * 9 / 10
	readLimit    = 512
)

// Hub fans card events out to every attached client. Membership is
// guarded by a mutex; Run owns delivery.
type Hub struct {
	mu      sync.Mutex
	members map[*Client]struct{}
	stopped bool

	queue    chan Message
	done     chan struct{}
	stopOnce sync.Once
	logger   *zerolog.Logger
}

// NewHub returns a hub that delivers nothing until Run is called.
func NewHub(logger *zerolog.Logger) *Hub {
	return &Hub{
		members: make(map[*Client]struct{}),
		queue:   make(chan Message, queueSize),
		done:    make(chan struct{}),
		logger:  logger,
	}
}

// Run delivers queued messages until ctx ends. On exit every client queue
// is closed, which makes its write pump send a close frame.
func (h *Hub) Run(ctx context.Context) {
	defer h.stopOnce.Do(func() { close(h.done) })

	for {
		select {
		case <-ctx.Done():
			h.detachAll()
			return
		case msg := <-h.queue:
			h.fanOut(msg)
		}
	}
}

func (h *Hub) fanOut(msg Message) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.members {
		select {
		case c.send <- msg:
		default:
			delete(h.members, c)
			close(c.send)
			h.logger.Warn().Str("client_id", c.id).Msg("websocket client too slow, disconnected")
		}
	}
}

func (h *Hub) detachAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stopped = true
	for c := range h.members {
		close(c.send)
	}
	clear(h.members)
	h.logger.Debug().Msg("websocket hub stopped")
}

// Register attaches c. A client registered after the hub stopped has its
// queue closed at once.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopped {
		close(c.send)
		return
	}
	h.members[c] = struct{}{}
	h.logger.Debug().Str("client_id", c.id).Int("clients", len(h.members)).Msg("websocket client attached")
}

// Unregister detaches c. Unknown clients are ignored.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.members[c]; !ok {
		return
	}
	delete(h.members, c)
	close(c.send)
	h.logger.Debug().Str("client_id", c.id).Int("clients", len(h.members)).Msg("websocket client detached")
}

// Broadcast queues msg for delivery. It never blocks; when the queue is
// full the message is dropped.
func (h *Hub) Broadcast(msg Message) {
	select {
	case h.queue <- msg:
	default:
		h.logger.Warn().Str("type", msg.Type).Msg("websocket queue full, message dropped")
	}
}

// ClientCount reports attached clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.members)
}

// Message is the JSON envelope written to clients.
type Message struct {
	ID        string    `json:"id,omitempty"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// Client is one subscriber. conn may be nil for in-process consumers that
// read Messages directly.
type Client struct {
	id   string
	hub  *Hub
	conn *websocket.Conn
	send chan Message
}

func NewClient(id string, hub *Hub, conn *websocket.Conn) *Client {
	return &Client{id: id, hub: hub, conn: conn, send: make(chan Message, queueSize)}
}

func (c *Client) ID() string { return c.id }

// Messages is closed when the client is detached.
func (c *Client) Messages() <-chan Message { return c.send }

// ReadPump discards inbound frames so pongs and close frames are handled.
// It detaches the client when the peer goes away.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	extend := func(string) error { return c.conn.SetReadDeadline(time.Now().Add(pongTimeout)) }
	c.conn.SetReadLimit(readLimit)
	_ = extend("")
	c.conn.SetPongHandler(extend)

	for {
		_, _, err := c.conn.ReadMessage()
		if err == nil {
			continue
		}
		if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
			c.hub.logger.Warn().Err(err).Str("client_id", c.id).Msg("websocket read failed")
		}
		return
	}
}

// WritePump encodes queued messages onto the connection and keeps it
// alive with pings.
func (c *Client) WritePump() {
	ping := time.NewTicker(pingInterval)
	defer ping.Stop()
	defer c.conn.Close()

	for {
		var err error
		select {
		case msg, open := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if !open {
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			err = c.conn.WriteJSON(msg)
		case <-ping.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			err = c.conn.WriteMessage(websocket.PingMessage, nil)
		}
		if err != nil {
			c.hub.logger.Debug().Err(err).Str("client_id", c.id).Msg("websocket write failed")
			return
		}
	}
}
