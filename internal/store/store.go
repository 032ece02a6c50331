// Package store is the local card cache: one SQLite table keyed by card ID,
// accessed through bun over the cgo-free modernc.org/sqlite driver.
//
// The schema version lives in PRAGMA user_version. Opening a database whose
// version differs from constants.SchemaVersion drops and recreates the cards
// table; there are no other migrations.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	// Registers the "sqlite" database/sql driver.
	_ "modernc.org/sqlite"

	"github.com/agentstation/cardmap/pkg/constants"
	"github.com/agentstation/cardmap/pkg/errors"
	"github.com/agentstation/cardmap/pkg/logging"
)

// Store is the persistent card cache.
type Store struct {
	db     *bun.DB
	path   string
	logger *zerolog.Logger
}

type config struct {
	logger *zerolog.Logger
}

// Option customises Open behaviour.
type Option func(*config)

// WithLogger sets the store logger.
func WithLogger(l *zerolog.Logger) Option { return func(c *config) { c.logger = l } }

// Open opens (creating if needed) the cache at path. The path ":memory:"
// opens a private in-memory database pinned to a single connection.
func Open(path string, opts ...Option) (*Store, error) {
	var cfg config
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = logging.Default()
	}
	if path == "" {
		return nil, errors.NewConfigError("store", "database path is empty", nil)
	}

	memory := path == constants.MemoryDatabase
	if !memory {
		if err := os.MkdirAll(filepath.Dir(path), constants.DirPermissions); err != nil {
			return nil, errors.WrapStorage("open", err)
		}
	}

	sqldb, err := sql.Open("sqlite", dsn(path, memory))
	if err != nil {
		return nil, errors.WrapStorage("open", err)
	}
	if memory {
		// Every pooled connection to ":memory:" would be a separate database.
		sqldb.SetMaxOpenConns(1)
	}

	s := &Store{
		db:     bun.NewDB(sqldb, sqlitedialect.New()),
		path:   path,
		logger: cfg.logger,
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.DefaultTimeout)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		_ = s.db.Close()
		return nil, errors.WrapStorage("open", err)
	}
	if err := s.ensureSchema(ctx); err != nil {
		_ = s.db.Close()
		return nil, err
	}

	s.logger.Debug().Str("path", path).Msg("Opened card store")
	return s, nil
}

// dsn builds a modernc DSN. Pragmas go in the DSN so that every pooled
// connection gets them, not just the first.
func dsn(path string, memory bool) string {
	if memory {
		return path
	}
	pragmas := []string{
		"_pragma=journal_mode(WAL)",
		fmt.Sprintf("_pragma=busy_timeout(%d)", constants.BusyTimeout.Milliseconds()),
		"_pragma=synchronous(NORMAL)",
	}
	return "file:" + path + "?" + strings.Join(pragmas, "&")
}

// ensureSchema creates the tables, dropping cards first when the stored
// schema version is not the current one.
func (s *Store) ensureSchema(ctx context.Context) error {
	var version int
	if err := s.db.NewRaw("PRAGMA user_version").Scan(ctx, &version); err != nil {
		return errors.WrapStorage("schema", err)
	}

	if version != constants.SchemaVersion {
		if version != 0 {
			s.logger.Info().
				Int("from", version).
				Int("to", constants.SchemaVersion).
				Msg("Card store schema changed, recreating cache")
		}
		if _, err := s.db.NewDropTable().Model((*cardRow)(nil)).IfExists().Exec(ctx); err != nil {
			return errors.WrapStorage("schema", err)
		}
	}

	models := []any{(*cardRow)(nil), (*metaRow)(nil)}
	for _, model := range models {
		if _, err := s.db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return errors.WrapStorage("schema", err)
		}
	}

	if version != constants.SchemaVersion {
		// PRAGMA does not accept bound parameters.
		stmt := fmt.Sprintf("PRAGMA user_version = %d", constants.SchemaVersion)
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return errors.WrapStorage("schema", err)
		}
	}
	return nil
}

// Path returns the database path the store was opened with.
func (s *Store) Path() string {
	return s.path
}

// Close releases the database.
func (s *Store) Close() error {
	return errors.WrapStorage("close", s.db.Close())
}
