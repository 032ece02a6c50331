package errors_test

import (
	"errors"
	"fmt"
	"testing"

	pkgerrors "github.com/agentstation/cardmap/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotFoundError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.NotFoundError{Resource: "card", ID: "base1-4"}
		assert.Equal(t, "card with ID base1-4 not found", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
	})

	t.Run("wrapped error", func(t *testing.T) {
		wrapped := fmt.Errorf("show: %w", pkgerrors.NewNotFoundError("card", "xy1-1"))
		assert.True(t, pkgerrors.IsNotFound(wrapped))
	})
}

func TestValidationError(t *testing.T) {
	err := pkgerrors.NewValidationError("page", 0, "must be at least 1")
	assert.Equal(t, "validation failed for field page: must be at least 1", err.Error())
	assert.True(t, pkgerrors.IsValidationError(err))

	bare := &pkgerrors.ValidationError{Message: "bad config"}
	assert.Equal(t, "validation failed: bad config", bare.Error())
}

func TestRemoteFetchError(t *testing.T) {
	tests := []struct {
		name     string
		err      *pkgerrors.RemoteFetchError
		message  string
		sentinel error
	}{
		{
			name:     "server error",
			err:      pkgerrors.NewRemoteFetchError("/v2/cards", 503, "Service Unavailable"),
			message:  "API error: 503 - Service Unavailable",
			sentinel: pkgerrors.ErrRemoteUnavailable,
		},
		{
			name:     "rate limited",
			err:      pkgerrors.NewRemoteFetchError("/v2/cards", 429, "Too Many Requests"),
			message:  "API error: 429 - Too Many Requests",
			sentinel: pkgerrors.ErrRateLimited,
		},
		{
			name:     "bad key",
			err:      pkgerrors.NewRemoteFetchError("/v2/cards", 403, "Forbidden"),
			message:  "API error: 403 - Forbidden",
			sentinel: pkgerrors.ErrAPIKeyInvalid,
		},
		{
			name:     "transport",
			err:      pkgerrors.NewTransportError("/v2/cards", errors.New("network down")),
			message:  "network down",
			sentinel: pkgerrors.ErrRemoteUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.message, tt.err.Error())
			assert.ErrorIs(t, tt.err, tt.sentinel)
			assert.True(t, pkgerrors.IsRemoteFetch(fmt.Errorf("refresh: %w", tt.err)))
		})
	}

	t.Run("client error matches nothing", func(t *testing.T) {
		err := pkgerrors.NewRemoteFetchError("/v2/cards", 400, "Bad Request")
		assert.False(t, pkgerrors.IsRateLimited(err))
		assert.False(t, pkgerrors.IsRemoteUnavailable(err))
		assert.False(t, pkgerrors.IsAPIKeyError(err))
	})

	t.Run("unwrap", func(t *testing.T) {
		base := errors.New("dial tcp: i/o timeout")
		err := pkgerrors.NewTransportError("/v2/cards", base)
		assert.ErrorIs(t, err, base)
	})
}

func TestStorageError(t *testing.T) {
	base := errors.New("disk I/O error")
	err := pkgerrors.WrapStorage("upsert", base)
	require.Error(t, err)

	assert.Equal(t, "storage error during upsert: disk I/O error", err.Error())
	assert.True(t, pkgerrors.IsStorage(err))
	assert.ErrorIs(t, err, base)

	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, pkgerrors.WrapStorage("select", nil))
	})

	t.Run("no double wrap", func(t *testing.T) {
		again := pkgerrors.WrapStorage("refresh", err)
		var se *pkgerrors.StorageError
		require.True(t, errors.As(again, &se))
		assert.Equal(t, "upsert", se.Operation)
	})
}

func TestMappingError(t *testing.T) {
	err := &pkgerrors.MappingError{Index: 2, CardID: "base1-1", Field: "name", Message: "is required"}
	assert.Equal(t, "invalid card record 2 (base1-1): field name is required", err.Error())
	assert.True(t, pkgerrors.IsValidationError(err))

	anon := &pkgerrors.MappingError{Field: "id", Message: "is required"}
	assert.Contains(t, anon.Error(), "<unknown>")
}

func TestParseError(t *testing.T) {
	err := pkgerrors.WrapParse("json", "/v2/cards", errors.New("unexpected EOF"))
	assert.Equal(t, "json parse error in /v2/cards: unexpected EOF", err.Error())
	assert.NoError(t, pkgerrors.WrapParse("json", "", nil))
}

func TestConfigError(t *testing.T) {
	base := errors.New("missing")
	err := pkgerrors.NewConfigError("database", "path is empty", base)
	assert.Equal(t, "configuration error in database: path is empty", err.Error())
	assert.ErrorIs(t, err, base)
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "", pkgerrors.Message(nil))
	assert.Equal(t, "network down", pkgerrors.Message(errors.New("network down")))
	assert.Equal(t, pkgerrors.UnknownMessage, pkgerrors.Message(errors.New("  ")))
}
