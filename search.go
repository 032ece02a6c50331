package cardmap

import (
	"context"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/agentstation/cardmap/pkg/cards"
)

// nameSource adapts a card slice to fuzzy.Source.
type nameSource []cards.Card

func (n nameSource) String(i int) string { return n[i].Name }
func (n nameSource) Len() int            { return len(n) }

// SearchCached fuzzy-matches query against cached card names, best match
// first. It works offline.
func (s *Service) SearchCached(ctx context.Context, query string) ([]cards.Card, error) {
	all, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return limit(all, s.config.searchLimit), nil
	}

	matches := fuzzy.FindFrom(query, nameSource(all))
	out := make([]cards.Card, 0, min(len(matches), s.config.searchLimit))
	for _, m := range matches {
		if len(out) == s.config.searchLimit {
			break
		}
		out = append(out, all[m.Index])
	}
	return out, nil
}

func limit(cs []cards.Card, n int) []cards.Card {
	if len(cs) > n {
		return cs[:n]
	}
	return cs
}
