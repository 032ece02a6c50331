package cardmap

import (
	"reflect"
	"sync"

	"github.com/agentstation/cardmap/pkg/cards"
)

// Hook function types for card events
type (
	// CardAddedHook is called for a refreshed card that was not cached before
	CardAddedHook func(card cards.Card)

	// CardUpdatedHook is called for a refreshed card whose fields changed
	CardUpdatedHook func(old, new cards.Card)

	// CardRemovedHook is called for a card a mirror refresh dropped
	CardRemovedHook func(card cards.Card)
)

// hooks manages event callbacks for cache changes
type hooks struct {
	mu            sync.RWMutex
	onCardAdded   []CardAddedHook
	onCardUpdated []CardUpdatedHook
	onCardRemoved []CardRemovedHook
}

func newHooks() *hooks {
	return &hooks{}
}

// OnCardAdded registers a callback for cards added by a refresh.
func (s *Service) OnCardAdded(fn CardAddedHook) {
	s.hooks.mu.Lock()
	defer s.hooks.mu.Unlock()
	s.hooks.onCardAdded = append(s.hooks.onCardAdded, fn)
}

// OnCardUpdated registers a callback for cards changed by a refresh.
func (s *Service) OnCardUpdated(fn CardUpdatedHook) {
	s.hooks.mu.Lock()
	defer s.hooks.mu.Unlock()
	s.hooks.onCardUpdated = append(s.hooks.onCardUpdated, fn)
}

// OnCardRemoved registers a callback for cards dropped by a mirror refresh.
func (s *Service) OnCardRemoved(fn CardRemovedHook) {
	s.hooks.mu.Lock()
	defer s.hooks.mu.Unlock()
	s.hooks.onCardRemoved = append(s.hooks.onCardRemoved, fn)
}

func (h *hooks) registered() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.onCardAdded)+len(h.onCardUpdated)+len(h.onCardRemoved) > 0
}

// trigger compares the cache before a refresh with the fetched cards.
// Removals are only reported when the refresh replaced the whole cache.
func (h *hooks) trigger(before, fetched []cards.Card, replaced bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	old := make(map[string]cards.Card, len(before))
	for _, c := range before {
		old[c.ID] = c
	}

	seen := make(map[string]struct{}, len(fetched))
	for _, c := range fetched {
		seen[c.ID] = struct{}{}
		prev, exists := old[c.ID]
		switch {
		case !exists:
			for _, hook := range h.onCardAdded {
				hook(c)
			}
		case !reflect.DeepEqual(prev, c):
			for _, hook := range h.onCardUpdated {
				hook(prev, c)
			}
		}
	}

	if !replaced {
		return
	}
	for _, c := range before {
		if _, ok := seen[c.ID]; !ok {
			for _, hook := range h.onCardRemoved {
				hook(c)
			}
		}
	}
}
