// Package errors defines the failure kinds of the card catalog. Every
// typed error maps onto one sentinel, so callers branch with errors.Is
// and reach details with errors.As.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Re-exports of the standard helpers, so callers need one import.
var (
	New = errors.New
	Is  = errors.Is
	As  = errors.As
)

// UnknownMessage stands in for an error with blank text.
const UnknownMessage = "Unknown error occurred"

// Sentinels.
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrAPIKeyInvalid     = errors.New("API key invalid")
	ErrRateLimited       = errors.New("rate limited")
	ErrRemoteUnavailable = errors.New("remote catalog unavailable") // unreachable or 5xx
	ErrStorage           = errors.New("storage failure")
)

// NotFoundError names a missing resource, usually a card ID.
type NotFoundError struct {
	Resource string
	ID       string
}

func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

func (e *NotFoundError) Error() string {
	return e.Resource + " with ID " + e.ID + " not found"
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ValidationError rejects caller input. Field may be empty when the
// problem is not tied to one field.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Message
	}
	return "validation failed for field " + e.Field + ": " + e.Message
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// RemoteFetchError is a failed catalog request. StatusCode is zero when no
// HTTP response arrived; Err then holds the transport failure.
type RemoteFetchError struct {
	StatusCode int
	Message    string
	Endpoint   string
	Err        error
}

// NewRemoteFetchError records a non-2xx answer from endpoint.
func NewRemoteFetchError(endpoint string, statusCode int, message string) *RemoteFetchError {
	return &RemoteFetchError{Endpoint: endpoint, StatusCode: statusCode, Message: message}
}

// NewTransportError records a request that never got a response.
func NewTransportError(endpoint string, err error) *RemoteFetchError {
	e := &RemoteFetchError{Endpoint: endpoint, Err: err}
	if err != nil {
		e.Message = err.Error()
	}
	return e
}

func (e *RemoteFetchError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("API error: %d - %s", e.StatusCode, e.Message)
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	}
	return "API error"
}

func (e *RemoteFetchError) Unwrap() error { return e.Err }

// Is classifies the status: 401/403 reject the key, 429 throttles, and a
// missing response or any 5xx means the catalog is unavailable.
func (e *RemoteFetchError) Is(target error) bool {
	code := e.StatusCode
	switch target {
	case ErrAPIKeyInvalid:
		return code == http.StatusUnauthorized || code == http.StatusForbidden
	case ErrRateLimited:
		return code == http.StatusTooManyRequests
	case ErrRemoteUnavailable:
		return code == 0 || code >= http.StatusInternalServerError
	}
	return false
}

// StorageError is a local persistence fault during Operation
// (open, upsert, select, clear).
type StorageError struct {
	Operation string
	Message   string
	Err       error
}

func (e *StorageError) Error() string {
	if e.Message == "" {
		return "storage error during " + e.Operation
	}
	return "storage error during " + e.Operation + ": " + e.Message
}

func (e *StorageError) Unwrap() error        { return e.Err }
func (e *StorageError) Is(target error) bool { return target == ErrStorage }

// WrapStorage tags err with operation. Nil stays nil, and an error that
// already carries a StorageError is returned as is.
func WrapStorage(operation string, err error) error {
	if err == nil {
		return nil
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Operation: operation, Message: err.Error(), Err: err}
}

// MappingError reports remote record Index that could not become a card.
// A single bad record fails the whole page.
type MappingError struct {
	Index   int
	CardID  string
	Field   string
	Message string
}

func (e *MappingError) Error() string {
	id := e.CardID
	if id == "" {
		id = "<unknown>"
	}
	return fmt.Sprintf("invalid card record %d (%s): field %s %s", e.Index, id, e.Field, e.Message)
}

func (e *MappingError) Is(target error) bool { return target == ErrInvalidInput }

// ConfigError is an unusable setting in Component.
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{Component: component, Message: message, Err: err}
}

func (e *ConfigError) Error() string {
	if e.Component == "" {
		return "configuration error: " + e.Message
	}
	return "configuration error in " + e.Component + ": " + e.Message
}

func (e *ConfigError) Unwrap() error { return e.Err }

// ParseError is a payload that failed to decode as Format.
type ParseError struct {
	Format  string
	Source  string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	where := ""
	if e.Source != "" {
		where = " in " + e.Source
	}
	return e.Format + " parse error" + where + ": " + e.Message
}

func (e *ParseError) Unwrap() error { return e.Err }

// WrapParse tags a decoding failure of source. Nil stays nil.
func WrapParse(format, source string, err error) error {
	if err == nil {
		return nil
	}
	return &ParseError{Format: format, Source: source, Message: err.Error(), Err: err}
}

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsValidationError covers both rejected input and unmappable records.
func IsValidationError(err error) bool { return errors.Is(err, ErrInvalidInput) }

func IsStorage(err error) bool           { return errors.Is(err, ErrStorage) }
func IsAPIKeyError(err error) bool       { return errors.Is(err, ErrAPIKeyInvalid) }
func IsRateLimited(err error) bool       { return errors.Is(err, ErrRateLimited) }
func IsRemoteUnavailable(err error) bool { return errors.Is(err, ErrRemoteUnavailable) }

// IsRemoteFetch reports whether err came from the remote catalog at all.
func IsRemoteFetch(err error) bool {
	var rf *RemoteFetchError
	return errors.As(err, &rf)
}

// Message is the text shown to users: the trimmed error text, or
// UnknownMessage when that is blank.
func Message(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		return UnknownMessage
	}
	return msg
}
