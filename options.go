package cardmap

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/cardmap/pkg/constants"
	"github.com/agentstation/cardmap/pkg/errors"
	"github.com/agentstation/cardmap/pkg/logging"
)

// RefreshMode controls what happens when refreshes overlap.
type RefreshMode string

const (
	// RefreshSingleFlight makes a second caller wait for the refresh already
	// in flight for the same credential and share its result.
	RefreshSingleFlight RefreshMode = "single-flight"

	// RefreshRacing runs every refresh independently; the last to write wins.
	RefreshRacing RefreshMode = "racing"
)

// SyncMode controls how a fetched page is written to the store.
type SyncMode string

const (
	// SyncAdditive upserts fetched cards and keeps cards the page no longer lists.
	SyncAdditive SyncMode = "additive"

	// SyncMirror replaces the store contents with the fetched page.
	SyncMirror SyncMode = "mirror"
)

// config holds Service options.
type config struct {
	pageSize        int
	refreshMode     RefreshMode
	syncMode        SyncMode
	lookupCacheSize int
	searchLimit     int
	logger          *zerolog.Logger
	now             func() time.Time
}

func defaultConfig() *config {
	return &config{
		pageSize:        constants.DefaultPageSize,
		refreshMode:     RefreshSingleFlight,
		syncMode:        SyncAdditive,
		lookupCacheSize: constants.DefaultLookupCacheSize,
		searchLimit:     constants.SearchResultLimit,
		logger:          logging.Default(),
		now:             time.Now,
	}
}

// Option is a function that configures a Service.
type Option func(*config) error

// WithPageSize sets how many cards a refresh requests.
func WithPageSize(n int) Option {
	return func(c *config) error {
		if n < 1 || n > constants.MaxPageSize {
			return errors.NewValidationError("pageSize", n, "must be between 1 and 250")
		}
		c.pageSize = n
		return nil
	}
}

// WithRefreshMode sets how overlapping refreshes behave.
func WithRefreshMode(m RefreshMode) Option {
	return func(c *config) error {
		switch m {
		case RefreshSingleFlight, RefreshRacing:
			c.refreshMode = m
			return nil
		}
		return errors.NewValidationError("refreshMode", m, "must be single-flight or racing")
	}
}

// WithSyncMode sets how refreshed cards are written.
func WithSyncMode(m SyncMode) Option {
	return func(c *config) error {
		switch m {
		case SyncAdditive, SyncMirror:
			c.syncMode = m
			return nil
		}
		return errors.NewValidationError("syncMode", m, "must be additive or mirror")
	}
}

// WithLookupCacheSize sets how many cards CachedByID keeps in memory.
func WithLookupCacheSize(n int) Option {
	return func(c *config) error {
		if n < 1 {
			return errors.NewValidationError("lookupCacheSize", n, "must be positive")
		}
		c.lookupCacheSize = n
		return nil
	}
}

// WithSearchLimit caps SearchCached results.
func WithSearchLimit(n int) Option {
	return func(c *config) error {
		if n < 1 {
			return errors.NewValidationError("searchLimit", n, "must be positive")
		}
		c.searchLimit = n
		return nil
	}
}

// WithLogger sets the service logger.
func WithLogger(l *zerolog.Logger) Option {
	return func(c *config) error {
		if l != nil {
			c.logger = l
		}
		return nil
	}
}

// WithClock overrides the time source used for sync timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *config) error {
		if now != nil {
			c.now = now
		}
		return nil
	}
}
