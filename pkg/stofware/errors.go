package stofware

import (
	"errors"
	"fmt"
	"net/http"
)

// Static errors for err113 compliance.
var (
	ErrConfigRequired     = errors.New("config is required")
	ErrBaseURLRequired    = errors.New("base URL is required")
	ErrInvalidInputType   = errors.New("must be a map or a JSON-formatted string")
	ErrInputNotObject     = errors.New("JSON string must represent an object")
	ErrFilterNotObject    = errors.New("filter group JSON string must represent an object")
	ErrNilFilterGroup     = errors.New("filter group must not be nil")
	ErrFilterSetFromJSON  = errors.New("cannot append to a filter group set from a JSON string")
	ErrEntityNameRequired = errors.New("entity name is required")
	ErrViewNameRequired   = errors.New("view name is required")
)

// RequestError is returned when the API responds with a status outside
// the 200-399 success window. It carries the status code and the raw
// response body text.
type RequestError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Body)
}

// DecodeError is returned when a success response body cannot be parsed
// as JSON. It is distinct from RequestError so callers can tell "the
// server rejected this" from "the server's success response was
// malformed".
type DecodeError struct {
	Err error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("response content is not valid JSON: %v", e.Err)
}

// Unwrap exposes the underlying JSON error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// InputError is an input validation error raised before any network
// call. Name identifies the offending input ("params", "data",
// "filter_group").
type InputError struct {
	Name string
	Err  error
}

// Error implements the error interface.
func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Name, e.Err)
}

// Unwrap exposes the underlying validation error.
func (e *InputError) Unwrap() error {
	return e.Err
}

// IsNotFound checks if the error is a 404 from the API.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsUnauthorized checks if the error is a 401 from the API.
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized)
}

// IsForbidden checks if the error is a 403 from the API.
func IsForbidden(err error) bool {
	return hasStatus(err, http.StatusForbidden)
}

// IsInputError checks if the error is a pre-flight input validation
// error.
func IsInputError(err error) bool {
	inputErr := &InputError{}

	return errors.As(err, &inputErr)
}

func hasStatus(err error, status int) bool {
	reqErr := &RequestError{}
	if errors.As(err, &reqErr) {
		return reqErr.StatusCode == status
	}

	return false
}
