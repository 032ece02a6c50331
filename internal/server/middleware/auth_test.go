package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestAuth(t *testing.T) {
	logger := zerolog.Nop()
	cfg := DefaultAuthConfig()
	cfg.Enabled = true
	cfg.APIKey = "s3cret"
	h := Auth(cfg, &logger)(okHandler)

	tests := []struct {
		name   string
		path   string
		header map[string]string
		want   int
	}{
		{"missing key", "/api/v1/cards", nil, http.StatusUnauthorized},
		{"wrong key", "/api/v1/cards", map[string]string{"X-API-Key": "nope"}, http.StatusUnauthorized},
		{"header key", "/api/v1/cards", map[string]string{"X-API-Key": "s3cret"}, http.StatusOK},
		{"bearer key", "/api/v1/cards", map[string]string{"Authorization": "Bearer s3cret"}, http.StatusOK},
		{"public path", "/health", nil, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestAuth_Disabled(t *testing.T) {
	logger := zerolog.Nop()
	h := Auth(DefaultAuthConfig(), &logger)(okHandler)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/cards", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
