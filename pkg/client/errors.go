package client

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	json "github.com/json-iterator/go"
)

// ErrNotAuthenticated is returned, before any network I/O, when an
// authenticated call is attempted without a credential.
var ErrNotAuthenticated = errors.New("not authenticated")

// RemoteError is a non-2xx response from the API.
type RemoteError struct {
	Status  int
	Method  string
	Path    string
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("API error %d on %s %s: %s", e.Status, e.Method, e.Path, e.Message)
	}
	return fmt.Sprintf("API error %d on %s %s", e.Status, e.Method, e.Path)
}

// TransportError is a network-level failure: DNS, refused connection,
// timeout. No response was received.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error on %s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// AuthError is an invalid-credentials or duplicate-signup failure.
type AuthError struct {
	Reason string
	Err    error
}

func (e *AuthError) Error() string {
	return "authentication failed: " + e.Reason
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// SessionInvalidError means the identity lookup after acquiring a token
// failed and the session was dropped.
type SessionInvalidError struct {
	Err error
}

func (e *SessionInvalidError) Error() string {
	return fmt.Sprintf("session invalid: %v", e.Err)
}

func (e *SessionInvalidError) Unwrap() error {
	return e.Err
}

// ValidationError is input rejected before it reaches the network.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// errorBody covers the error envelopes the API produces.
type errorBody struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

// ParseError builds a RemoteError from an unsuccessful response.
func ParseError(resp *resty.Response) *RemoteError {
	req := resp.Request
	remoteErr := &RemoteError{Status: resp.StatusCode()}
	if req != nil {
		remoteErr.Method = req.Method
		remoteErr.Path = req.URL
	}

	body := resp.Body()
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		switch {
		case len(eb.Detail) > 0:
			var detail string
			if json.Unmarshal(eb.Detail, &detail) == nil {
				remoteErr.Message = detail
			} else {
				remoteErr.Message = string(eb.Detail)
			}
		case eb.Message != "":
			remoteErr.Message = eb.Message
		case eb.Error != "":
			remoteErr.Message = eb.Error
		}
		return remoteErr
	}

	remoteErr.Message = strings.TrimSpace(string(body))
	return remoteErr
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var remoteErr *RemoteError
	if errors.As(err, &remoteErr) {
		return remoteErr.Status
	}
	return 0
}

// IsUnauthorized checks if error is due to missing/invalid authentication
func IsUnauthorized(err error) bool {
	return StatusOf(err) == http.StatusUnauthorized
}

// IsForbidden checks if error is due to insufficient permissions
func IsForbidden(err error) bool {
	return StatusOf(err) == http.StatusForbidden
}

// IsNotFound checks if error is due to resource not found
func IsNotFound(err error) bool {
	return StatusOf(err) == http.StatusNotFound
}

// IsServerError checks if error is due to server error (5xx)
func IsServerError(err error) bool {
	return StatusOf(err) >= 500
}

// IsTransport checks if err is a network-level failure
func IsTransport(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr)
}
