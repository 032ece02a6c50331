package filter

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/cardmap/internal/utils/ptr"
	"github.com/agentstation/cardmap/pkg/cards"
)

func TestParseCardFilter(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  CardFilter
	}{
		{"empty", "", CardFilter{Limit: DefaultLimit}},
		{
			"fields",
			"name_contains=char&supertype=Pok%C3%A9mon&rarity=Rare+Holo&set=base1",
			CardFilter{NameContains: "char", Supertype: "Pokémon", Rarity: "Rare Holo", Set: "base1", Limit: DefaultLimit},
		},
		{"paging", "limit=10&offset=5", CardFilter{Limit: 10, Offset: 5}},
		{"limit capped", "limit=5000", CardFilter{Limit: MaxLimit}},
		{"bad numbers", "limit=abc&offset=-3", CardFilter{Limit: DefaultLimit}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/api/v1/cards?"+tt.query, nil)
			assert.Equal(t, tt.want, ParseCardFilter(r))
		})
	}
}

func testCards() []cards.Card {
	return []cards.Card{
		{ID: "base1-91", Name: "Bill", Supertype: ptr.To("Trainer")},
		{ID: "base1-4", Name: "Charizard", Supertype: ptr.To("Pokémon"), Rarity: ptr.To("Rare Holo"), Set: ptr.To("Base"), SetCode: ptr.To("base1")},
		{ID: "base2-4", Name: "Charmander", Supertype: ptr.To("Pokémon"), Rarity: ptr.To("Common"), Set: ptr.To("Jungle"), SetCode: ptr.To("base2")},
	}
}

func TestCardFilter_Apply(t *testing.T) {
	tests := []struct {
		name string
		f    CardFilter
		want []string
	}{
		{"no filter", CardFilter{}, []string{"base1-91", "base1-4", "base2-4"}},
		{"name contains", CardFilter{NameContains: "CHAR"}, []string{"base1-4", "base2-4"}},
		{"supertype", CardFilter{Supertype: "trainer"}, []string{"base1-91"}},
		{"rarity skips absent", CardFilter{Rarity: "common"}, []string{"base2-4"}},
		{"set by name", CardFilter{Set: "base"}, []string{"base1-4"}},
		{"set by code", CardFilter{Set: "base2"}, []string{"base2-4"}},
		{"combined", CardFilter{NameContains: "char", Rarity: "rare holo"}, []string{"base1-4"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cards.IDs(tt.f.Apply(testCards())))
		})
	}
}

func TestCardFilter_Page(t *testing.T) {
	cs := testCards()

	page, total := CardFilter{Limit: 2}.Page(cs)
	assert.Equal(t, 3, total)
	assert.Equal(t, []string{"base1-91", "base1-4"}, cards.IDs(page))

	page, _ = CardFilter{Limit: 2, Offset: 2}.Page(cs)
	assert.Equal(t, []string{"base2-4"}, cards.IDs(page))

	page, total = CardFilter{Limit: 2, Offset: 10}.Page(cs)
	assert.Equal(t, 3, total)
	assert.Empty(t, page)
}
