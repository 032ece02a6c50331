package transport

import (
	"net/http"

	"github.com/agentstation/cardmap/pkg/constants"
)

// Authenticator applies authentication to HTTP requests.
type Authenticator interface {
	Apply(req *http.Request, apiKey string)
}

// NoAuth implements no authentication.
type NoAuth struct{}

// Apply implements the Authenticator interface for NoAuth.
func (a *NoAuth) Apply(_ *http.Request, _ string) {}

// HeaderAuth implements custom header authentication.
type HeaderAuth struct {
	Header string
}

// APIKeyAuth sends the credential in the catalog's X-Api-Key header.
func APIKeyAuth() *HeaderAuth {
	return &HeaderAuth{Header: constants.APIKeyHeader}
}

// Apply implements the Authenticator interface for HeaderAuth.
func (a *HeaderAuth) Apply(req *http.Request, apiKey string) {
	req.Header.Set(a.Header, apiKey)
}
