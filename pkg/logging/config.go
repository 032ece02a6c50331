package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/agentstation/cardmap/pkg/constants"
)

// Config describes a logger. Zero values fall back to DefaultConfig.
type Config struct {
	Level      string // trace..error, "off" disables
	Format     string // json, console or auto (console on a terminal)
	Output     string // stderr, stdout, discard or a file path
	TimeFormat string // kitchen, rfc3339, rfc3339nano, unix or a Go layout
	NoColor    bool
	AddCaller  bool
	Fields     map[string]any
}

func DefaultConfig() *Config {
	return &Config{
		Level:      "info",
		Format:     "auto",
		Output:     "stderr",
		TimeFormat: "kitchen",
		NoColor:    os.Getenv("NO_COLOR") != "",
	}
}

// NewLoggerFromConfig builds a logger and makes its level the global one.
// Debug and trace loggers always record the caller.
func NewLoggerFromConfig(cfg *Config) zerolog.Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	level := ParseLevel(cfg.Level)
	zerolog.SetGlobalLevel(level)

	logger := build(cfg.writer(), level, cfg.AddCaller)
	if len(cfg.Fields) == 0 {
		return logger
	}
	lc := logger.With()
	for k, v := range cfg.Fields {
		lc = addField(lc, k, v)
	}
	return lc.Logger()
}

func build(w io.Writer, level zerolog.Level, caller bool) zerolog.Logger {
	lc := zerolog.New(w).Level(level).With().Timestamp()
	if caller || level <= zerolog.DebugLevel {
		lc = lc.Caller()
	}
	return lc.Logger()
}

// ParseLevel maps a level name onto zerolog. "warning" and "off" are
// accepted; blank or unknown names mean info.
func ParseLevel(name string) zerolog.Level {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "warning":
		return zerolog.WarnLevel
	case "off", "none":
		return zerolog.Disabled
	}
	if l, err := zerolog.ParseLevel(name); err == nil && l != zerolog.NoLevel {
		return l
	}
	return zerolog.InfoLevel
}

func (c *Config) writer() io.Writer {
	out := openOutput(c.Output)
	switch strings.ToLower(c.Format) {
	case "console", "pretty":
	case "", "auto":
		if f, ok := out.(*os.File); !ok || !isatty.IsTerminal(f.Fd()) {
			return out
		}
	default:
		return out
	}
	return zerolog.ConsoleWriter{Out: out, TimeFormat: layout(c.TimeFormat), NoColor: c.NoColor}
}

// openOutput falls back to stderr when a log file cannot be opened.
func openOutput(name string) io.Writer {
	switch strings.ToLower(name) {
	case "", "stderr":
		return os.Stderr
	case "stdout":
		return os.Stdout
	case "discard", "none":
		return io.Discard
	}
	f, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_APPEND, constants.FilePermissions)
	if err != nil {
		return os.Stderr
	}
	return f
}

func layout(name string) string {
	switch strings.ToLower(name) {
	case "", "kitchen":
		return time.Kitchen
	case "rfc3339":
		return time.RFC3339
	case "rfc3339nano":
		return time.RFC3339Nano
	case "unix", "epoch":
		return ""
	}
	if strings.Contains(name, "2006") || strings.Contains(name, "15:04") {
		return name
	}
	return time.Kitchen
}

func addField(lc zerolog.Context, key string, value any) zerolog.Context {
	switch v := value.(type) {
	case string:
		return lc.Str(key, v)
	case int:
		return lc.Int(key, v)
	case bool:
		return lc.Bool(key, v)
	case time.Time:
		return lc.Time(key, v)
	case error:
		return lc.AnErr(key, v)
	}
	return lc.Interface(key, value)
}
