package logging_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/cardmap/pkg/logging"
)

func TestDefaultLogger(t *testing.T) {
	tl := logging.CaptureLoggingForTest(t)

	logging.Info().Str("card_id", "base1-4").Msg("cached card")
	logging.Debug().Msg("debug message")

	tl.AssertContains(t, "cached card")
	tl.AssertContains(t, "base1-4")
	assert.Equal(t, 2, tl.Count())
}

func TestContextLogger(t *testing.T) {
	tl := logging.NewTestLogger(t)

	ctx := logging.WithLogger(context.Background(), tl.Logger)
	ctx = logging.WithCardID(ctx, "xy7-54")
	ctx = logging.WithOperation(ctx, "refresh")
	ctx = logging.WithRequestID(ctx, "req-1")

	logging.FromContext(ctx).Info().Msg("test message")

	tl.AssertContains(t, `"card_id":"xy7-54"`)
	tl.AssertContains(t, `"operation":"refresh"`)
	tl.AssertContains(t, `"request_id":"req-1"`)
	assert.Equal(t, "req-1", logging.RequestID(ctx))
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	assert.NotNil(t, logging.FromContext(context.Background()))
	assert.Empty(t, logging.RequestID(context.Background()))
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"WARNING": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"off":     zerolog.Disabled,
		"":        zerolog.InfoLevel,
		"bogus":   zerolog.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, logging.ParseLevel(in), "level %q", in)
	}
}

func TestNewLoggerFromConfig(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	t.Run("json file output with fields", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cardmap.log")
		logger := logging.NewLoggerFromConfig(&logging.Config{
			Level:  "info",
			Format: "json",
			Output: path,
			Fields: map[string]any{"component": "store"},
		})
		logger.Info().Msg("opened")
		logger.Debug().Msg("hidden")

		data := readFile(t, path)
		assert.Contains(t, data, `"component":"store"`)
		assert.Contains(t, data, "opened")
		assert.NotContains(t, data, "hidden")
	})

	t.Run("nil config uses defaults", func(t *testing.T) {
		logger := logging.NewLoggerFromConfig(nil)
		assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
	})
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewJSON(&buf)
	logger.Warn().Msg("stale cache")
	assert.True(t, strings.HasPrefix(buf.String(), "{"))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}
