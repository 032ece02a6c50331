package server

import (
	"time"

	"github.com/agentstation/cardmap/pkg/constants"
)

// Config holds server configuration.
type Config struct {
	Addr       string
	PathPrefix string

	CORSEnabled bool
	CORSOrigins []string

	// AuthKey protects the API itself. It is unrelated to the remote
	// catalog credential.
	AuthEnabled bool
	AuthKey     string

	RateLimit int // requests per minute per IP, 0 disables

	// TrustProxy takes the client IP from X-Forwarded-For or X-Real-IP.
	// Enable it only behind a proxy that sets those headers.
	TrustProxy bool

	CacheTTL time.Duration

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// AutoRefresh refreshes the catalog on this interval while serving.
	// Zero leaves refreshes to POST /cards/refresh.
	AutoRefresh time.Duration
}

// DefaultConfig returns the serve command defaults.
func DefaultConfig() Config {
	return Config{
		Addr:         constants.DefaultServerAddr,
		PathPrefix:   "/api/v1",
		RateLimit:    100,
		CacheTTL:     constants.CacheTTL,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 0, // streams stay open
		IdleTimeout:  120 * time.Second,
	}
}
