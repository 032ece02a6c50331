package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/agentstation/cardmap/internal/server/cache"
	"github.com/agentstation/cardmap/internal/server/filter"
	"github.com/agentstation/cardmap/internal/server/response"
	"github.com/agentstation/cardmap/pkg/cards"
	"github.com/agentstation/cardmap/pkg/errors"
)

// HandleListCards handles GET /api/v1/cards. It serves the card list the
// presentation state currently shows, filtered and paged by query.
func (h *Handlers) HandleListCards(w http.ResponseWriter, r *http.Request) {
	f := filter.ParseCardFilter(r)

	key := cache.ListKey(r.URL.RawQuery)
	filtered, found := h.cache.Cards(key)
	if !found {
		gen := h.cache.Generation()
		filtered = f.Apply(h.list.Cards().Get())
		h.cache.SetCards(key, filtered, gen)
	}

	page, total := f.Page(filtered)
	response.OK(w, map[string]any{
		"cards": page,
		"pagination": map[string]any{
			"total":  total,
			"limit":  f.Limit,
			"offset": f.Offset,
			"count":  len(page),
		},
	})
}

// HandleGetCard handles GET /api/v1/cards/{id}.
func (h *Handlers) HandleGetCard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	card, ok, err := h.list.CardByID(r.Context(), id)
	if err != nil {
		h.logger.Error().Err(err).Str("card_id", id).Msg("Card lookup failed")
		response.ErrorFromType(w, err)
		return
	}
	if !ok {
		response.ErrorFromType(w, errors.NewNotFoundError("card", id))
		return
	}

	response.OK(w, map[string]any{
		"card":    card,
		"details": card.Details(),
	})
}

// HandleSearchCards handles GET /api/v1/cards/search?q=. Search runs
// against the local cache only.
func (h *Handlers) HandleSearchCards(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	key := cache.SearchKey(q)
	results, found := h.cache.Cards(key)
	if !found {
		gen := h.cache.Generation()
		var err error
		results, err = h.catalog.SearchCached(r.Context(), q)
		if err != nil {
			response.ErrorFromType(w, err)
			return
		}
		if results == nil {
			results = []cards.Card{}
		}
		h.cache.SetCards(key, results, gen)
	}

	response.OK(w, map[string]any{
		"query": q,
		"cards": results,
		"count": len(results),
	})
}

// HandleRefresh handles POST /api/v1/cards/refresh. The load runs in the
// background; progress arrives on the update streams.
func (h *Handlers) HandleRefresh(w http.ResponseWriter, _ *http.Request) {
	h.list.Load()
	response.Accepted(w, h.state())
}

// HandleState handles GET /api/v1/state.
func (h *Handlers) HandleState(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, h.state())
}
