// Package filter parses card list query parameters and applies them.
package filter

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/agentstation/cardmap/pkg/cards"
)

// Paging bounds.
const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// CardFilter holds card list filter criteria. Empty fields match anything;
// string fields match case-insensitively.
type CardFilter struct {
	NameContains string
	Supertype    string
	Subtype      string
	Rarity       string
	Set          string
	Artist       string

	Limit  int
	Offset int
}

// ParseCardFilter extracts filter parameters from the request query.
func ParseCardFilter(r *http.Request) CardFilter {
	q := r.URL.Query()

	f := CardFilter{
		NameContains: strings.TrimSpace(q.Get("name_contains")),
		Supertype:    q.Get("supertype"),
		Subtype:      q.Get("subtype"),
		Rarity:       q.Get("rarity"),
		Set:          q.Get("set"),
		Artist:       q.Get("artist"),
		Limit:        parseIntOrDefault(q.Get("limit"), DefaultLimit),
		Offset:       parseIntOrDefault(q.Get("offset"), 0),
	}

	if f.Limit <= 0 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}

// Apply returns the cards matching f, keeping their order.
func (f CardFilter) Apply(cs []cards.Card) []cards.Card {
	results := make([]cards.Card, 0, len(cs))
	for _, c := range cs {
		if f.matches(c) {
			results = append(results, c)
		}
	}
	return results
}

// Page slices cs by Offset and Limit and reports the total before paging.
func (f CardFilter) Page(cs []cards.Card) (page []cards.Card, total int) {
	total = len(cs)
	if f.Offset >= total {
		return []cards.Card{}, total
	}
	end := min(f.Offset+f.Limit, total)
	return cs[f.Offset:end], total
}

func (f CardFilter) matches(c cards.Card) bool {
	if f.NameContains != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(f.NameContains)) {
		return false
	}
	return matchField(c.Supertype, f.Supertype) &&
		matchField(c.Subtype, f.Subtype) &&
		matchField(c.Rarity, f.Rarity) &&
		(matchField(c.Set, f.Set) || matchField(c.SetCode, f.Set)) &&
		matchField(c.Artist, f.Artist)
}

// matchField matches an optional card field. A set filter never matches an
// absent field.
func matchField(field *string, want string) bool {
	if want == "" {
		return true
	}
	return field != nil && strings.EqualFold(*field, want)
}

// parseIntOrDefault parses an integer or returns def.
func parseIntOrDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return def
}
