// Package cache holds rendered card responses for the HTTP server. Entries
// expire after a TTL and the whole cache is flushed when the card list
// changes.
package cache

import (
	"strings"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/agentstation/cardmap/pkg/cards"
)

// Key prefixes.
const (
	listPrefix   = "cards:"
	searchPrefix = "search:"
)

// Cache wraps go-cache with card-typed accessors. Every Clear starts a new
// generation; writes computed from data read in an earlier generation are
// dropped.
type Cache struct {
	store *gocache.Cache

	mu  sync.RWMutex
	gen uint64
}

// New creates a cache whose entries live for ttl and are swept every
// cleanupInterval.
func New(ttl, cleanupInterval time.Duration) *Cache {
	return &Cache{store: gocache.New(ttl, cleanupInterval)}
}

// ListKey is the key for a card list response with the given raw query.
func ListKey(rawQuery string) string { return listPrefix + rawQuery }

// SearchKey is the key for a search response. Queries are case-insensitive.
func SearchKey(query string) string {
	return searchPrefix + strings.ToLower(strings.TrimSpace(query))
}

// Cards returns a cached card slice.
func (c *Cache) Cards(key string) ([]cards.Card, bool) {
	v, ok := c.store.Get(key)
	if !ok {
		return nil, false
	}
	cs, ok := v.([]cards.Card)
	return cs, ok
}

// Generation returns the current generation. Read it before reading the
// data that will be passed to SetCards.
func (c *Cache) Generation() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gen
}

// SetCards caches cs under key with the default TTL, unless the cache was
// cleared since gen was read. It reports whether the entry was stored.
func (c *Cache) SetCards(key string, cs []cards.Card, gen uint64) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if gen != c.gen {
		return false
	}
	c.store.Set(key, cs, gocache.DefaultExpiration)
	return true
}

// Clear removes all items from the cache and starts a new generation.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.store.Flush()
}

// ItemCount returns the number of items in the cache, expired ones included
// until the next sweep.
func (c *Cache) ItemCount() int {
	return c.store.ItemCount()
}

// Stats is a cache snapshot for the readiness endpoint.
type Stats struct {
	ItemCount int `json:"item_count"`
}

// GetStats returns current cache statistics.
func (c *Cache) GetStats() Stats {
	return Stats{ItemCount: c.store.ItemCount()}
}
