package handlers

import (
	"net/http"
	"time"

	"github.com/agentstation/cardmap/internal/server/response"
)

// HandleHealth handles GET /health (liveness).
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"status":  "healthy",
		"service": "cardmap-api",
		"version": "v1",
	})
}

// HandleReady handles GET /api/v1/ready. The server is ready once the card
// store answers.
func (h *Handlers) HandleReady(w http.ResponseWriter, r *http.Request) {
	cached, err := h.catalog.Cached(r.Context())
	if err != nil {
		h.logger.Warn().Err(err).Msg("Readiness check failed")
		response.ServiceUnavailable(w, "Card store not available")
		return
	}

	response.OK(w, map[string]any{
		"status":            "ready",
		"cached_cards":      len(cached),
		"uptime_seconds":    int64(time.Since(h.startTime).Seconds()),
		"cache":             h.cache.GetStats(),
		"websocket_clients": h.wsHub.ClientCount(),
		"sse_clients":       h.sseBroadcaster.ClientCount(),
	})
}
