// Package application provides the application interface for cardmap commands.
//
// Commands accept Application rather than the concrete App so they can be
// tested with Mock:
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            catalog, err := app.Catalog()
//	            if err != nil {
//	                return err
//	            }
//	            cached, err := catalog.Cached(cmd.Context())
//	            // ...
//	        },
//	    }
//	}
package application

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/cardmap"
	"github.com/agentstation/cardmap/internal/store"
	"github.com/agentstation/cardmap/pkg/cards"
)

// Catalog is the card service as commands see it. *cardmap.Service
// implements it.
type Catalog interface {
	Cached(ctx context.Context) ([]cards.Card, error)
	CachedByID(ctx context.Context, id string) (cards.Card, bool, error)
	Refresh(ctx context.Context, credential string) ([]cards.Card, error)
	SearchCached(ctx context.Context, query string) ([]cards.Card, error)
	SearchRemote(ctx context.Context, credential, query string) ([]cards.Card, error)
	Clear(ctx context.Context) error
	LastSync(ctx context.Context) (store.SyncInfo, bool, error)
	OnCardAdded(fn cardmap.CardAddedHook)
	OnCardUpdated(fn cardmap.CardUpdatedHook)
	OnCardRemoved(fn cardmap.CardRemovedHook)
	AutoRefreshOn(credential string, interval time.Duration) error
	AutoRefreshOff()
}

// Application provides what commands need from the running program.
// All methods must be safe for concurrent access.
type Application interface {
	// Catalog returns the shared card service, creating it on first use.
	Catalog() (Catalog, error)

	// APIKey returns the configured catalog credential, or "" for none.
	APIKey() string

	// DatabasePath returns the location of the card cache.
	DatabasePath() string

	// ServerAddr returns the default listen address for serve.
	ServerAddr() string

	// AutoRefreshInterval is the default serve refresh interval; zero is off.
	AutoRefreshInterval() time.Duration

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml).
	OutputFormat() string

	Version() string
	Commit() string
	Date() string
	BuiltBy() string
}
