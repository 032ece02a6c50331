package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/cardmap/pkg/errors"
)

func TestClientGetAppliesHeaders(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := New(APIKeyAuth(), WithUserAgent("cardmap-test"))
	resp, err := c.Get(context.Background(), srv.URL+"/v2/cards", "secret")
	require.NoError(t, err)

	var body struct{ OK bool }
	require.NoError(t, DecodeResponse(resp, &body))
	assert.True(t, body.OK)
	assert.Equal(t, "secret", got.Get("X-Api-Key"))
	assert.Equal(t, "application/json", got.Get("Accept"))
	assert.Equal(t, "cardmap-test", got.Get("User-Agent"))
}

func TestClientOmitsEmptyCredential(t *testing.T) {
	var present bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, present = r.Header["X-Api-Key"]
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	resp, err := New(APIKeyAuth()).Get(context.Background(), srv.URL, "")
	require.NoError(t, err)
	require.NoError(t, DecodeResponse(resp, &struct{}{}))
	assert.False(t, present)
}

func TestDecodeResponseStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"down for maintenance"}`, http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	resp, err := New(nil).Get(context.Background(), srv.URL+"/v2/cards", "")
	require.NoError(t, err)

	err = DecodeResponse(resp, &struct{}{})
	var rf *errors.RemoteFetchError
	require.ErrorAs(t, err, &rf)
	assert.Equal(t, http.StatusServiceUnavailable, rf.StatusCode)
	assert.Equal(t, "Service Unavailable", rf.Message)
	assert.Equal(t, "/v2/cards", rf.Endpoint)
	assert.Equal(t, "API error: 503 - Service Unavailable", err.Error())
}

func TestDecodeResponseBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": [`))
	}))
	defer srv.Close()

	resp, err := New(nil).Get(context.Background(), srv.URL, "")
	require.NoError(t, err)

	err = DecodeResponse(resp, &struct{}{})
	var pe *errors.ParseError
	assert.ErrorAs(t, err, &pe)
}

func TestClientTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := New(nil, WithTimeout(20*time.Millisecond))
	_, err := c.Get(context.Background(), srv.URL, "")

	var rf *errors.RemoteFetchError
	require.ErrorAs(t, err, &rf)
	assert.Zero(t, rf.StatusCode)
	assert.True(t, errors.IsRemoteUnavailable(err))
}
