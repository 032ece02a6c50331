// Package events fans card list changes out to the streaming transports
// (SSE and WebSocket) through one broker.
package events

import "time"

// EventType names a change notification.
type EventType string

// Event types.
const (
	// Presentation state changes.
	CardsChanged   EventType = "cards.changed"
	LoadingChanged EventType = "loading.changed"
	ErrorChanged   EventType = "error.changed"

	// Per-card changes reported by a refresh.
	CardAdded   EventType = "card.added"
	CardUpdated EventType = "card.updated"
	CardRemoved EventType = "card.removed"

	// Transport events.
	ClientConnected EventType = "client.connected"
)

// Event is one notification with its payload.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}
