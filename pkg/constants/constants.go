// Package constants provides shared constants used throughout the cardmap codebase.
// This includes remote catalog defaults, timeouts, storage settings and other
// values that should be consistent across the library and the CLI.
package constants

import "time"

// Remote catalog constants
const (
	// DefaultBaseURL is the root of the remote card catalog API
	DefaultBaseURL = "https://api.pokemontcg.io"

	// CardsPath is the catalog listing endpoint
	CardsPath = "/v2/cards"

	// APIKeyHeader carries the credential on every catalog request
	APIKeyHeader = "X-Api-Key"

	// DefaultPage is the only page a refresh fetches
	DefaultPage = 1

	// DefaultPageSize is the number of cards requested per refresh
	DefaultPageSize = 50

	// MaxPageSize is the largest page the remote catalog serves
	MaxPageSize = 250
)

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for catalog requests
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultTimeout is the standard timeout for general operations
	DefaultTimeout = 10 * time.Second

	// RefreshTimeout bounds one fetch-and-store cycle
	RefreshTimeout = 2 * time.Minute

	// ShutdownTimeout is how long the server waits for in-flight requests
	ShutdownTimeout = 10 * time.Second

	// BusyTimeout is how long SQLite waits on a locked database
	BusyTimeout = 5 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Storage constants
const (
	// SchemaVersion is stored in PRAGMA user_version. A mismatch on open drops
	// and recreates the cards table.
	SchemaVersion = 1

	// DefaultDatabaseName is the cache file name inside DefaultDataPath
	DefaultDatabaseName = "cards.db"

	// DefaultDataPath is where the CLI keeps its cache
	DefaultDataPath = "~/.cardmap"

	// MemoryDatabase opens a private in-memory cache
	MemoryDatabase = ":memory:"
)

// Cache constants
const (
	// DefaultLookupCacheSize is the number of cards kept in the by-ID lookup cache
	DefaultLookupCacheSize = 256

	// CacheTTL is the default time-to-live for cached HTTP responses
	CacheTTL = 5 * time.Minute

	// CacheCleanupInterval is how often to clean expired cache entries
	CacheCleanupInterval = 10 * time.Minute
)

// Server constants
const (
	// DefaultServerAddr is where `cardmap serve` listens
	DefaultServerAddr = "127.0.0.1:8080"

	// SearchResultLimit caps offline search results
	SearchResultLimit = 25
)

// Format constants
const (
	// TimeFormatHuman is a human-readable time format
	TimeFormatHuman = "Jan 2, 2006 at 3:04pm MST"
)
