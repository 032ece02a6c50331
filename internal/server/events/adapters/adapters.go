// Package adapters connects the event broker to the streaming transports.
package adapters

import (
	"github.com/agentstation/cardmap/internal/server/events"
	"github.com/agentstation/cardmap/internal/server/sse"
	ws "github.com/agentstation/cardmap/internal/server/websocket"
)

// WebSocketSubscriber forwards broker events to a WebSocket hub.
type WebSocketSubscriber struct {
	hub *ws.Hub
}

// NewWebSocketSubscriber creates a subscriber for hub.
func NewWebSocketSubscriber(hub *ws.Hub) *WebSocketSubscriber {
	return &WebSocketSubscriber{hub: hub}
}

// Send implements events.Subscriber.
func (s *WebSocketSubscriber) Send(e events.Event) error {
	s.hub.Broadcast(ws.Message{
		ID:        e.ID,
		Type:      string(e.Type),
		Timestamp: e.Timestamp,
		Data:      e.Data,
	})
	return nil
}

// Close implements events.Subscriber. The hub stops with its own context.
func (s *WebSocketSubscriber) Close() error { return nil }

// SSESubscriber forwards broker events to an SSE broadcaster.
type SSESubscriber struct {
	broadcaster *sse.Broadcaster
}

// NewSSESubscriber creates a subscriber for b.
func NewSSESubscriber(b *sse.Broadcaster) *SSESubscriber {
	return &SSESubscriber{broadcaster: b}
}

// Send implements events.Subscriber.
func (s *SSESubscriber) Send(e events.Event) error {
	s.broadcaster.Broadcast(sse.Event{
		Event: string(e.Type),
		ID:    e.ID,
		Data:  e.Data,
	})
	return nil
}

// Close implements events.Subscriber.
func (s *SSESubscriber) Close() error { return nil }
