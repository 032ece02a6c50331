// Package serve implements the serve command: the card catalog over HTTP
// with WebSocket and SSE update streams.
package serve

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentstation/cardmap/cmd/application"
	"github.com/agentstation/cardmap/internal/server"
	"github.com/agentstation/cardmap/pkg/constants"
)

// NewCommand creates the serve command.
func NewCommand(app application.Application) *cobra.Command {
	cfg := server.DefaultConfig()

	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"server"},
		GroupID: "core",
		Short:   "Serve the card catalog over HTTP",
		Long: `Serve exposes the card list and detail views as a JSON API.

Endpoints (under --prefix, default /api/v1):
  GET  /cards               cards shown by the list, with filters and paging
  GET  /cards/search?q=     fuzzy search over cached names
  GET  /cards/{id}          one cached card
  POST /cards/refresh       start a refresh
  GET  /state               card count, loading flag and error message
  GET  /updates/ws          WebSocket event stream
  GET  /updates/stream      Server-Sent Events stream`,
		Example: `  cardmap serve
  cardmap serve --addr :3000 --auto-refresh 15m
  cardmap serve --auth --auth-key secret --cors-origins https://example.com`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("addr") {
				cfg.Addr = app.ServerAddr()
			}
			if !cmd.Flags().Changed("auto-refresh") {
				cfg.AutoRefresh = app.AutoRefreshInterval()
			}
			if len(cfg.CORSOrigins) > 0 {
				cfg.CORSEnabled = true
			}
			if cfg.AuthEnabled && cfg.AuthKey == "" {
				return fmt.Errorf("--auth requires --auth-key")
			}
			return run(cmd.Context(), app, cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	flags.StringVar(&cfg.PathPrefix, "prefix", cfg.PathPrefix, "API path prefix")
	flags.BoolVar(&cfg.CORSEnabled, "cors", false, "enable CORS for all origins")
	flags.StringSliceVar(&cfg.CORSOrigins, "cors-origins", nil, "allowed CORS origins (comma-separated)")
	flags.BoolVar(&cfg.AuthEnabled, "auth", false, "require an API key on every request")
	flags.StringVar(&cfg.AuthKey, "auth-key", "", "API key clients must send in X-API-Key")
	flags.IntVar(&cfg.RateLimit, "rate-limit", cfg.RateLimit, "requests per minute per IP (0 to disable)")
	flags.BoolVar(&cfg.TrustProxy, "trust-proxy", false, "take client IPs from X-Forwarded-For (only behind a trusted proxy)")
	flags.DurationVar(&cfg.CacheTTL, "cache-ttl", cfg.CacheTTL, "response cache TTL")
	flags.DurationVar(&cfg.ReadTimeout, "read-timeout", cfg.ReadTimeout, "HTTP read timeout")
	flags.DurationVar(&cfg.IdleTimeout, "idle-timeout", cfg.IdleTimeout, "HTTP idle timeout")
	flags.DurationVar(&cfg.AutoRefresh, "auto-refresh", 0, "refresh interval while serving (0 to disable)")

	return cmd
}

func run(ctx context.Context, app application.Application, cfg server.Config) error {
	logger := app.Logger()

	srv, err := server.New(app, cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	srv.Start()

	listener, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		shutdownServices(srv, logger)
		return fmt.Errorf("listening on %s: %w", cfg.Addr, err)
	}

	httpServer := &http.Server{
		Handler:      srv.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	logger.Info().
		Str("addr", listener.Addr().String()).
		Str("prefix", cfg.PathPrefix).
		Bool("cors", cfg.CORSEnabled).
		Bool("auth", cfg.AuthEnabled).
		Int("rate_limit", cfg.RateLimit).
		Bool("trust_proxy", cfg.TrustProxy).
		Dur("auto_refresh", cfg.AutoRefresh).
		Msg("API server listening")

	return serve(ctx, httpServer, listener, srv, logger)
}

// serve runs httpServer until ctx is cancelled, then drains connections and
// stops the background services.
func serve(ctx context.Context, httpServer *http.Server, listener net.Listener, srv *server.Server, logger *zerolog.Logger) error {
	serverErr := make(chan error, 1)
	go func() {
		if err := httpServer.Serve(listener); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		shutdownServices(srv, logger)
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		logger.Info().Msg("Shutdown signal received")
	}

	// ctx is already cancelled.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Streams end when the services stop, so stop them before draining.
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("Background services shutdown had issues")
	}
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	logger.Info().Msg("Server stopped gracefully")
	return nil
}

func shutdownServices(srv *server.Server, logger *zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn().Err(err).Msg("Background services shutdown had issues")
	}
}
