// Package logging wraps zerolog for cardmap: a process-wide default
// logger, loggers built from Config, and loggers carried in a context.
//
//	logging.Info().Str("card_id", "base1-4").Msg("card cached")
//
//	ctx = logging.WithCardID(ctx, "base1-4")
//	logging.FromContext(ctx).Debug().Msg("lookup")
package logging

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	mu      sync.RWMutex
	current = fromEnv()
)

// fromEnv reads LOG_LEVEL (or DEBUG), LOG_FORMAT and NO_COLOR.
func fromEnv() zerolog.Logger {
	level := zerolog.InfoLevel
	if s := os.Getenv("LOG_LEVEL"); s != "" {
		level = ParseLevel(s)
	} else if os.Getenv("DEBUG") != "" {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	var w io.Writer = os.Stderr
	fd := os.Stderr.Fd()
	if os.Getenv("LOG_FORMAT") != "json" && (isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)) {
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen, NoColor: os.Getenv("NO_COLOR") != ""}
	}
	return build(w, level, false)
}

// Default returns a copy of the process logger.
func Default() *zerolog.Logger {
	mu.RLock()
	l := current
	mu.RUnlock()
	return &l
}

// SetDefault replaces the process logger, including zerolog's global one.
func SetDefault(logger zerolog.Logger) {
	mu.Lock()
	current = logger
	mu.Unlock()
	log.Logger = logger
}

// NewJSON logs JSON lines to w, or stderr when w is nil, at the global level.
func NewJSON(w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	return zerolog.New(w).Level(zerolog.GlobalLevel()).With().Timestamp().Logger()
}

func Debug() *zerolog.Event { return Default().Debug() }
func Info() *zerolog.Event  { return Default().Info() }
func Warn() *zerolog.Event  { return Default().Warn() }
func Error() *zerolog.Event { return Default().Error() }
