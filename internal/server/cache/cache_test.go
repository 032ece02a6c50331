package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/cardmap/pkg/cards"
)

func TestCache_CardsRoundTrip(t *testing.T) {
	c := New(time.Minute, time.Minute)
	want := []cards.Card{{ID: "base1-4", Name: "Charizard", ImageURL: "https://img/4.png"}}

	_, ok := c.Cards(ListKey(""))
	assert.False(t, ok)

	c.SetCards(ListKey(""), want, c.Generation())
	got, ok := c.Cards(ListKey(""))
	require.True(t, ok)
	assert.Equal(t, want, got)
	assert.Equal(t, 1, c.ItemCount())
}

func TestCache_Expiry(t *testing.T) {
	c := New(20*time.Millisecond, time.Hour)
	c.SetCards(ListKey(""), []cards.Card{{ID: "a"}}, c.Generation())

	require.Eventually(t, func() bool {
		_, ok := c.Cards(ListKey(""))
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestCache_Clear(t *testing.T) {
	c := New(time.Minute, time.Minute)
	c.SetCards(ListKey(""), []cards.Card{{ID: "a"}}, c.Generation())
	c.SetCards(SearchKey("char"), []cards.Card{{ID: "b"}}, c.Generation())

	assert.Equal(t, 2, c.GetStats().ItemCount)

	c.Clear()
	assert.Zero(t, c.ItemCount())
}

func TestCache_SetCardsDropsWritesFromBeforeClear(t *testing.T) {
	c := New(time.Minute, time.Minute)
	gen := c.Generation()
	stale := []cards.Card{{ID: "old"}}

	// The list changes between reading it and caching it.
	c.Clear()
	assert.False(t, c.SetCards(ListKey(""), stale, gen))
	_, ok := c.Cards(ListKey(""))
	assert.False(t, ok)

	fresh := []cards.Card{{ID: "new"}}
	assert.True(t, c.SetCards(ListKey(""), fresh, c.Generation()))
	got, ok := c.Cards(ListKey(""))
	require.True(t, ok)
	assert.Equal(t, fresh, got)
}

func TestSearchKey_Normalizes(t *testing.T) {
	assert.Equal(t, SearchKey("char"), SearchKey("  CHAR "))
	assert.NotEqual(t, SearchKey("char"), ListKey("char"))
}
