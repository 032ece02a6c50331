package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/agentstation/cardmap/internal/server/handlers"
	"github.com/agentstation/cardmap/internal/server/middleware"
	"github.com/agentstation/cardmap/internal/server/response"
)

func (s *Server) setupRouter() http.Handler {
	h := handlers.New(
		s.catalog,
		s.list,
		s.cache,
		s.wsHub,
		s.sseBroadcaster,
		s.upgrader,
		s.logger,
	)

	r := chi.NewRouter()

	cfg := s.config

	r.Use(middleware.RequestID)
	if cfg.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.Logger(s.logger))
	r.Use(middleware.Recovery(s.logger))

	if cfg.CORSEnabled {
		corsConfig := middleware.DefaultCORSConfig()
		if len(cfg.CORSOrigins) > 0 {
			corsConfig.AllowAll = false
			corsConfig.AllowedOrigins = cfg.CORSOrigins
		}
		r.Use(middleware.CORS(corsConfig))
	}
	if cfg.AuthEnabled {
		authConfig := middleware.DefaultAuthConfig()
		authConfig.Enabled = true
		authConfig.APIKey = cfg.AuthKey
		authConfig.PublicPaths = []string{"/health", cfg.PathPrefix + "/health", cfg.PathPrefix + "/ready"}
		r.Use(middleware.Auth(authConfig, s.logger))
	}
	if s.rateLimiter != nil {
		r.Use(middleware.RateLimit(s.rateLimiter))
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w, "Route not found", "")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		response.MethodNotAllowed(w, req.Method)
	})

	r.Get("/health", h.HandleHealth)

	r.Route(cfg.PathPrefix, func(r chi.Router) {
		r.Get("/health", h.HandleHealth)
		r.Get("/ready", h.HandleReady)
		r.Get("/state", h.HandleState)

		r.Route("/cards", func(r chi.Router) {
			r.Get("/", h.HandleListCards)
			r.Get("/search", h.HandleSearchCards)
			r.Post("/refresh", h.HandleRefresh)
			r.Get("/{id}", h.HandleGetCard)
		})

		r.Get("/updates/ws", h.HandleWebSocket)
		r.Get("/updates/stream", h.HandleSSE)
	})

	return r
}
