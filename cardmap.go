// Package cardmap keeps a local, offline-readable mirror of a remote trading
// card catalog. A Service refreshes the mirror from the remote catalog and
// serves reads from the local store.
//
//	st, _ := store.Open("cards.db")
//	svc, _ := cardmap.New(st, tcgapi.NewClient())
//	fresh, err := svc.Refresh(ctx, apiKey)
//	cached, _ := svc.Cached(ctx)
package cardmap

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/agentstation/cardmap/internal/store"
	"github.com/agentstation/cardmap/pkg/cards"
	"github.com/agentstation/cardmap/pkg/errors"
)

// Store is the persistent card cache a Service reads and writes.
type Store interface {
	UpsertAll(ctx context.Context, cs []cards.Card) error
	ReplaceAll(ctx context.Context, cs []cards.Card) error
	GetAll(ctx context.Context) ([]cards.Card, error)
	GetByID(ctx context.Context, id string) (cards.Card, bool, error)
	Clear(ctx context.Context) error
}

// SyncRecorder is implemented by stores that remember the last refresh.
type SyncRecorder interface {
	RecordSync(ctx context.Context, info store.SyncInfo) error
	LastSync(ctx context.Context) (store.SyncInfo, bool, error)
}

// Fetcher is the remote catalog.
type Fetcher interface {
	FetchPage(ctx context.Context, credential string, page, pageSize int) (*cards.Page, error)
	Search(ctx context.Context, credential, query string, page, pageSize int) (*cards.Page, error)
}

// Service orchestrates the remote catalog and the local store.
type Service struct {
	store   Store
	fetcher Fetcher
	config  *config
	logger  *zerolog.Logger
	hooks   *hooks

	group singleflight.Group

	// lookups caches CachedByID hits. generation is bumped on every write so
	// that a read racing a refresh cannot re-insert a stale card.
	lookupMu   sync.Mutex
	lookups    *lru.Cache
	generation atomic.Uint64

	autoMu     sync.Mutex
	autoStop   chan struct{}
	autoTicker *time.Ticker
}

// New creates a Service over store and fetcher.
func New(st Store, fetcher Fetcher, opts ...Option) (*Service, error) {
	if st == nil {
		return nil, errors.NewValidationError("store", nil, "is required")
	}
	if fetcher == nil {
		return nil, errors.NewValidationError("fetcher", nil, "is required")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	lookups, err := lru.New(cfg.lookupCacheSize)
	if err != nil {
		return nil, errors.NewConfigError("cardmap", "creating lookup cache", err)
	}

	return &Service{
		store:   st,
		fetcher: fetcher,
		config:  cfg,
		logger:  cfg.logger,
		hooks:   newHooks(),
		lookups: lookups,
	}, nil
}

// Cached returns every cached card ordered by name.
func (s *Service) Cached(ctx context.Context) ([]cards.Card, error) {
	return s.store.GetAll(ctx)
}

// CachedByID returns one cached card. ok is false when it is not cached.
func (s *Service) CachedByID(ctx context.Context, id string) (cards.Card, bool, error) {
	if v, ok := s.lookups.Get(id); ok {
		return v.(cards.Card), true, nil
	}

	gen := s.generation.Load()
	c, ok, err := s.store.GetByID(ctx, id)
	if err != nil || !ok {
		return c, ok, err
	}

	s.lookupMu.Lock()
	if s.generation.Load() == gen {
		s.lookups.Add(id, c)
	}
	s.lookupMu.Unlock()
	return c, true, nil
}

// Clear empties the local cache.
func (s *Service) Clear(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return err
	}
	s.invalidate()
	s.logger.Info().Msg("Cleared card cache")
	return nil
}

// LastSync reports the last successful refresh, if the store records it.
func (s *Service) LastSync(ctx context.Context) (store.SyncInfo, bool, error) {
	rec, ok := s.store.(SyncRecorder)
	if !ok {
		return store.SyncInfo{}, false, nil
	}
	return rec.LastSync(ctx)
}

func (s *Service) invalidate() {
	s.lookupMu.Lock()
	s.generation.Add(1)
	s.lookups.Purge()
	s.lookupMu.Unlock()
}
