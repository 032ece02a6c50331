package transport

import (
	"net/http"
	"testing"
)

func TestNoAuth(t *testing.T) {
	req := &http.Request{Header: make(http.Header)}
	(&NoAuth{}).Apply(req, "test-api-key")

	if len(req.Header) != 0 {
		t.Errorf("Expected no headers, got %d", len(req.Header))
	}
}

func TestAPIKeyAuth(t *testing.T) {
	req := &http.Request{Header: make(http.Header)}
	APIKeyAuth().Apply(req, "test-api-key")

	if got := req.Header.Get("X-Api-Key"); got != "test-api-key" {
		t.Errorf("Expected X-Api-Key header 'test-api-key', got '%s'", got)
	}
}
