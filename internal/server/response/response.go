// Package response writes the API envelope:
//
//	{"data": ..., "error": null}
//	{"data": null, "error": {"code": ..., "message": ..., "details": ...}}
package response

import (
	"encoding/json"
	"net/http"

	"github.com/agentstation/cardmap/pkg/errors"
)

type Response struct {
	Data  any    `json:"data"`
	Error *Error `json:"error"`
}

// Error codes are stable strings clients may switch on.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func Success(data any) Response { return Response{Data: data} }

func Fail(code, message, details string) Response {
	return Response{Error: &Error{Code: code, Message: message, Details: details}}
}

// JSON writes resp as the body with status. Encoding errors are ignored
// since the status line is already out.
func JSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func fail(w http.ResponseWriter, status int, code, message, details string) {
	JSON(w, status, Fail(code, message, details))
}

func OK(w http.ResponseWriter, data any)       { JSON(w, http.StatusOK, Success(data)) }
func Accepted(w http.ResponseWriter, data any) { JSON(w, http.StatusAccepted, Success(data)) }

func BadRequest(w http.ResponseWriter, message, details string) {
	fail(w, http.StatusBadRequest, "BAD_REQUEST", message, details)
}

func Unauthorized(w http.ResponseWriter, message, details string) {
	fail(w, http.StatusUnauthorized, "UNAUTHORIZED", message, details)
}

func NotFound(w http.ResponseWriter, message, details string) {
	fail(w, http.StatusNotFound, "NOT_FOUND", message, details)
}

func MethodNotAllowed(w http.ResponseWriter, method string) {
	fail(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed",
		method+" is not supported on this endpoint")
}

func RateLimited(w http.ResponseWriter, details string) {
	fail(w, http.StatusTooManyRequests, "RATE_LIMITED", "Rate limit exceeded", details)
}

// BadGateway reports a failed call to the remote card catalog.
func BadGateway(w http.ResponseWriter, details string) {
	fail(w, http.StatusBadGateway, "REMOTE_ERROR", "Remote catalog request failed", details)
}

// InternalError never echoes err to the client.
func InternalError(w http.ResponseWriter, _ error) {
	fail(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", "An unexpected error occurred")
}

func ServiceUnavailable(w http.ResponseWriter, details string) {
	fail(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Service unavailable", details)
}

// ErrorFromType picks the status for a catalog error. Rate limiting is
// checked before the generic remote case since both are remote errors.
func ErrorFromType(w http.ResponseWriter, err error) {
	msg := err.Error()
	switch {
	case errors.IsNotFound(err):
		NotFound(w, msg, "")
	case errors.IsValidationError(err):
		BadRequest(w, msg, "")
	case errors.IsRateLimited(err):
		RateLimited(w, msg)
	case errors.IsRemoteFetch(err):
		BadGateway(w, msg)
	default:
		InternalError(w, err)
	}
}
