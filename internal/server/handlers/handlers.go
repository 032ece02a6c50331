// Package handlers provides HTTP request handlers for the cardmap API.
package handlers

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/agentstation/cardmap/cmd/application"
	"github.com/agentstation/cardmap/internal/server/cache"
	"github.com/agentstation/cardmap/internal/server/sse"
	ws "github.com/agentstation/cardmap/internal/server/websocket"
	"github.com/agentstation/cardmap/pkg/viewmodel"
)

// Handlers provides access to all HTTP handlers.
type Handlers struct {
	catalog        application.Catalog
	list           *viewmodel.CardList
	cache          *cache.Cache
	wsHub          *ws.Hub
	sseBroadcaster *sse.Broadcaster
	upgrader       websocket.Upgrader
	logger         *zerolog.Logger
	startTime      time.Time
}

// New creates a new Handlers instance.
func New(
	catalog application.Catalog,
	list *viewmodel.CardList,
	cache *cache.Cache,
	wsHub *ws.Hub,
	sseBroadcaster *sse.Broadcaster,
	upgrader websocket.Upgrader,
	logger *zerolog.Logger,
) *Handlers {
	return &Handlers{
		catalog:        catalog,
		list:           list,
		cache:          cache,
		wsHub:          wsHub,
		sseBroadcaster: sseBroadcaster,
		upgrader:       upgrader,
		logger:         logger,
		startTime:      time.Now(),
	}
}

// State is the presentation state snapshot.
type State struct {
	Count   int    `json:"count"`
	Loading bool   `json:"loading"`
	Error   string `json:"error"`
}

func (h *Handlers) state() State {
	return State{
		Count:   len(h.list.Cards().Get()),
		Loading: h.list.Loading().Get(),
		Error:   h.list.Error().Get(),
	}
}
