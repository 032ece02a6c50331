package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	ws "github.com/agentstation/cardmap/internal/server/websocket"
)

// HandleWebSocket handles GET /api/v1/updates/ws.
func (h *Handlers) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	client := ws.NewClient(uuid.NewString(), h.wsHub, conn)
	h.wsHub.Register(client)

	h.wsHub.Broadcast(ws.Message{
		Type:      "client.connected",
		Timestamp: time.Now().UTC(),
		Data: map[string]any{
			"client_id": client.ID(),
			"state":     h.state(),
		},
	})

	go client.WritePump()
	go client.ReadPump()
}

// HandleSSE handles GET /api/v1/updates/stream.
func (h *Handlers) HandleSSE(w http.ResponseWriter, r *http.Request) {
	h.sseBroadcaster.ServeHTTP(w, r)
}
