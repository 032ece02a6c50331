package application

import (
	"time"

	"github.com/rs/zerolog"
)

// Mock provides a mock implementation of Application for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
type Mock struct {
	CatalogFunc      func() (Catalog, error)
	APIKeyValue      string
	DatabasePathFunc func() string
	ServerAddrFunc   func() string
	AutoRefresh      time.Duration
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	VersionFunc      func() string
}

// Catalog returns a catalog using the mock function or nil.
func (m *Mock) Catalog() (Catalog, error) {
	if m.CatalogFunc != nil {
		return m.CatalogFunc()
	}
	return nil, nil
}

// APIKey returns APIKeyValue.
func (m *Mock) APIKey() string { return m.APIKeyValue }

// DatabasePath returns the database path using the mock function or ":memory:".
func (m *Mock) DatabasePath() string {
	if m.DatabasePathFunc != nil {
		return m.DatabasePathFunc()
	}
	return ":memory:"
}

// ServerAddr returns the listen address using the mock function or a loopback port.
func (m *Mock) ServerAddr() string {
	if m.ServerAddrFunc != nil {
		return m.ServerAddrFunc()
	}
	return "127.0.0.1:0"
}

// AutoRefreshInterval returns AutoRefresh.
func (m *Mock) AutoRefreshInterval() time.Duration { return m.AutoRefresh }

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns output format using the mock function or "json".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "json"
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns "unknown".
func (m *Mock) Commit() string { return "unknown" }

// Date returns "unknown".
func (m *Mock) Date() string { return "unknown" }

// BuiltBy returns "test".
func (m *Mock) BuiltBy() string { return "test" }

// Ensure Mock implements Application at compile time.
var _ Application = (*Mock)(nil)
