// Package server exposes the card catalog over HTTP, with live updates on
// WebSocket and Server-Sent Events streams.
package server

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc"

	"github.com/agentstation/cardmap/cmd/application"
	"github.com/agentstation/cardmap/internal/server/cache"
	"github.com/agentstation/cardmap/internal/server/events"
	"github.com/agentstation/cardmap/internal/server/events/adapters"
	"github.com/agentstation/cardmap/internal/server/middleware"
	"github.com/agentstation/cardmap/internal/server/sse"
	ws "github.com/agentstation/cardmap/internal/server/websocket"
	"github.com/agentstation/cardmap/pkg/cards"
	"github.com/agentstation/cardmap/pkg/constants"
	"github.com/agentstation/cardmap/pkg/viewmodel"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	app            application.Application
	catalog        application.Catalog
	list           *viewmodel.CardList
	cache          *cache.Cache
	broker         *events.Broker
	wsHub          *ws.Hub
	sseBroadcaster *sse.Broadcaster
	rateLimiter    *middleware.RateLimiter
	upgrader       websocket.Upgrader
	logger         *zerolog.Logger
	config         Config

	ctx      context.Context
	cancel   context.CancelFunc
	services conc.WaitGroup
	unsubs   []func()
}

// New creates a server for app's catalog. The card list starts its first
// load before New returns, so background services should be started soon
// after.
func New(app application.Application, cfg Config) (*Server, error) {
	logger := app.Logger()

	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = constants.CacheTTL
	}
	if cfg.PathPrefix == "" {
		cfg.PathPrefix = "/api/v1"
	}

	catalog, err := app.Catalog()
	if err != nil {
		return nil, err
	}

	broker := events.NewBroker(logger)
	wsHub := ws.NewHub(logger)
	sseBroadcaster := sse.NewBroadcaster(logger)
	broker.Subscribe(adapters.NewWebSocketSubscriber(wsHub))
	broker.Subscribe(adapters.NewSSESubscriber(sseBroadcaster))

	ctx, cancel := context.WithCancel(context.Background())

	s := &Server{
		app:            app,
		catalog:        catalog,
		cache:          cache.New(cfg.CacheTTL, constants.CacheCleanupInterval),
		broker:         broker,
		wsHub:          wsHub,
		sseBroadcaster: sseBroadcaster,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(_ *http.Request) bool { return true },
		},
		logger: logger,
		config: cfg,
		ctx:    ctx,
		cancel: cancel,
	}
	if cfg.RateLimit > 0 {
		s.rateLimiter = middleware.NewRateLimiter(cfg.RateLimit, logger)
	}

	s.connectHooks()

	s.list = viewmodel.New(catalog, app.APIKey(), viewmodel.WithLogger(logger))
	s.connectSignals()

	if cfg.AutoRefresh > 0 {
		if err := catalog.AutoRefreshOn(app.APIKey(), cfg.AutoRefresh); err != nil {
			s.list.Close()
			cancel()
			return nil, err
		}
	}

	logger.Debug().Str("prefix", cfg.PathPrefix).Msg("Server instance created")
	return s, nil
}

// connectHooks publishes per-card changes from the catalog.
func (s *Server) connectHooks() {
	s.catalog.OnCardAdded(func(card cards.Card) {
		s.cache.Clear()
		s.broker.Publish(events.CardAdded, map[string]any{"card": card})
	})
	s.catalog.OnCardUpdated(func(old, updated cards.Card) {
		s.cache.Clear()
		s.broker.Publish(events.CardUpdated, map[string]any{
			"old_card": old,
			"new_card": updated,
		})
	})
	s.catalog.OnCardRemoved(func(card cards.Card) {
		s.cache.Clear()
		s.broker.Publish(events.CardRemoved, map[string]any{"id": card.ID})
	})
}

// connectSignals mirrors the presentation state onto the event streams.
// Publications from the first Load can land before this runs; stream
// clients get a snapshot when they connect.
func (s *Server) connectSignals() {
	onCards := func(cs []cards.Card) {
		s.cache.Clear()
		s.broker.Publish(events.CardsChanged, map[string]any{"count": len(cs)})
	}
	onLoading := func(loading bool) {
		s.broker.Publish(events.LoadingChanged, map[string]any{"loading": loading})
	}
	onError := func(msg string) {
		s.broker.Publish(events.ErrorChanged, map[string]any{"error": msg})
	}

	s.unsubs = append(s.unsubs,
		s.list.Cards().Subscribe(onCards),
		s.list.Loading().Subscribe(onLoading),
		s.list.Error().Subscribe(onError),
	)
}

// Start starts the background services. They run until Shutdown.
func (s *Server) Start() {
	s.services.Go(func() { s.broker.Run(s.ctx) })
	s.services.Go(func() { s.wsHub.Run(s.ctx) })
	s.services.Go(func() { s.sseBroadcaster.Run(s.ctx) })
	if s.rateLimiter != nil {
		s.services.Go(func() { s.rateLimiter.Run(s.ctx) })
	}
	s.logger.Debug().Msg("Background services started")
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return s.setupRouter()
}

// List returns the presentation state the server serves.
func (s *Server) List() *viewmodel.CardList {
	return s.list
}

// Shutdown stops auto refresh, disposes the card list and waits for the
// background services to exit.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("Shutting down server background services")

	s.catalog.AutoRefreshOff()
	for _, unsub := range s.unsubs {
		unsub()
	}
	s.list.Close()
	s.cancel()

	done := make(chan struct{})
	go func() {
		s.services.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		s.logger.Warn().Msg("Background services shutdown timed out")
		return ctx.Err()
	}
}
