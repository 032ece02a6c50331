// Package app wires the cardmap CLI together. An App owns the loaded
// configuration and logger and opens the card store and catalog service
// the first time a command needs them.
package app

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/cardmap"
	"github.com/agentstation/cardmap/cmd/application"
	"github.com/agentstation/cardmap/internal/store"
	"github.com/agentstation/cardmap/internal/tcgapi"
	"github.com/agentstation/cardmap/pkg/errors"
)

// App implements application.Application for the real binary.
type App struct {
	version, commit, date, builtBy string

	config *Config
	logger *zerolog.Logger

	mu      sync.RWMutex // guards the fields below
	store   *store.Store
	fetcher cardmap.Fetcher
	catalog application.Catalog
}

// New loads configuration from the environment and default config file,
// then applies opts. Nothing is opened yet.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	cfg, err := LoadConfig("")
	if err != nil {
		return nil, err
	}
	logger := NewLogger(cfg)
	a := &App{version: version, commit: commit, date: date, builtBy: builtBy, config: cfg, logger: &logger}

	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func (a *App) Version() string { return a.version }
func (a *App) Commit() string  { return a.commit }
func (a *App) Date() string    { return a.date }
func (a *App) BuiltBy() string { return a.builtBy }

func (a *App) Config() *Config         { return a.config }
func (a *App) Logger() *zerolog.Logger { return a.logger }

// OutputFormat is the --format value; empty means auto-detect.
func (a *App) OutputFormat() string { return a.config.Format }

// APIKey returns the catalog credential, or "" when none is configured.
func (a *App) APIKey() string { return a.config.APIKey }

// DatabasePath returns the card cache location.
func (a *App) DatabasePath() string { return a.config.DatabasePath }

// ServerAddr returns the default serve address.
func (a *App) ServerAddr() string { return a.config.ServerAddr }

// AutoRefreshInterval returns the configured serve refresh interval.
func (a *App) AutoRefreshInterval() time.Duration { return a.config.AutoRefreshInterval }

// Catalog returns the card service. The first call opens the store and
// builds the remote client; concurrent callers share one instance.
func (a *App) Catalog() (application.Catalog, error) {
	a.mu.RLock()
	c := a.catalog
	a.mu.RUnlock()
	if c != nil {
		return c, nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.catalog != nil {
		return a.catalog, nil
	}

	if a.store == nil {
		st, err := store.Open(a.config.DatabasePath, store.WithLogger(a.logger))
		if err != nil {
			return nil, err
		}
		a.store = st
	}

	if a.fetcher == nil {
		a.fetcher = tcgapi.NewClient(
			tcgapi.WithBaseURL(a.config.BaseURL),
			tcgapi.WithTimeout(a.config.HTTPTimeout),
			tcgapi.WithUserAgent("cardmap/"+a.version),
			tcgapi.WithLogger(a.logger),
		)
	}

	svc, err := cardmap.New(a.store, a.fetcher,
		cardmap.WithPageSize(a.config.PageSize),
		cardmap.WithRefreshMode(cardmap.RefreshMode(a.config.RefreshMode)),
		cardmap.WithSyncMode(cardmap.SyncMode(a.config.SyncMode)),
		cardmap.WithLogger(a.logger),
	)
	if err != nil {
		return nil, errors.NewConfigError("catalog", "creating card service", err)
	}

	a.catalog = svc
	return svc, nil
}

// Shutdown stops background refreshes and closes the store.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.catalog != nil {
		a.catalog.AutoRefreshOff()
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Error().Err(err).Msg("closing card store")
			return err
		}
		a.store = nil
	}
	a.catalog = nil
	return nil
}

// Option adjusts an App after its configuration is loaded.
type Option func(*App) error

func set(apply func(*App)) Option {
	return func(a *App) error { apply(a); return nil }
}

// WithConfig replaces the loaded configuration.
func WithConfig(cfg *Config) Option { return set(func(a *App) { a.config = cfg }) }

func WithLogger(l *zerolog.Logger) Option { return set(func(a *App) { a.logger = l }) }

// WithStore uses st instead of opening DatabasePath.
func WithStore(st *store.Store) Option { return set(func(a *App) { a.store = st }) }

// WithFetcher replaces the pokemontcg.io client, mainly for tests.
func WithFetcher(f cardmap.Fetcher) Option { return set(func(a *App) { a.fetcher = f }) }

var _ application.Application = (*App)(nil)
