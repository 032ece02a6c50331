package transport

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/agentstation/cardmap/pkg/errors"
)

// DecodeResponse decodes a JSON response into target and closes the body.
// Any non-2xx status becomes a *errors.RemoteFetchError carrying the status
// code and reason phrase; the error body is not parsed.
func DecodeResponse(resp *http.Response, target any) error {
	defer func() { _ = resp.Body.Close() }()

	endpoint := ""
	if resp.Request != nil && resp.Request.URL != nil {
		endpoint = resp.Request.URL.Path
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return errors.NewRemoteFetchError(endpoint, resp.StatusCode, reasonPhrase(resp))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.NewTransportError(endpoint, err)
	}
	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapParse("json", endpoint, err)
	}
	return nil
}

// reasonPhrase extracts "Not Found" from a "404 Not Found" status line.
func reasonPhrase(resp *http.Response) string {
	code := strconv.Itoa(resp.StatusCode)
	if msg := strings.TrimSpace(strings.TrimPrefix(resp.Status, code)); msg != "" {
		return msg
	}
	if msg := http.StatusText(resp.StatusCode); msg != "" {
		return msg
	}
	return "HTTP " + code
}
