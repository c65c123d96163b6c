package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/connectsphere/cli/pkg/client"
)

// ErrorType categorizes different error types
type ErrorType string

const (
	// Network errors
	ErrorTypeNetwork ErrorType = "network"
	ErrorTypeTimeout ErrorType = "timeout"

	// Authentication errors
	ErrorTypeAuth           ErrorType = "auth"
	ErrorTypeNotLoggedIn    ErrorType = "not_logged_in"
	ErrorTypeUnauthorized   ErrorType = "unauthorized"
	ErrorTypeForbidden      ErrorType = "forbidden"
	ErrorTypeSessionExpired ErrorType = "session_expired"

	// Validation errors
	ErrorTypeValidation ErrorType = "validation"

	// Server errors
	ErrorTypeServer    ErrorType = "server"
	ErrorTypeNotFound  ErrorType = "not_found"
	ErrorTypeConflict  ErrorType = "conflict"
	ErrorTypeRateLimit ErrorType = "rate_limit"
	ErrorTypeRequest   ErrorType = "request"

	// Unknown errors
	ErrorTypeUnknown ErrorType = "unknown"
)

const loginHint = "Run 'connectsphere auth login' to sign in."

// CLIError represents a structured error with context
type CLIError struct {
	Type       ErrorType
	Message    string
	Cause      error
	Suggestion string
	StatusCode int
}

// Error implements the error interface
func (e *CLIError) Error() string {
	return e.Message
}

// WithSuggestion adds a helpful suggestion to the error
func (e *CLIError) WithSuggestion(suggestion string) *CLIError {
	e.Suggestion = suggestion
	return e
}

// HasSuggestion returns true if the error has a suggestion
func (e *CLIError) HasSuggestion() bool {
	return e.Suggestion != ""
}

// Unwrap returns the underlying error
func (e *CLIError) Unwrap() error {
	return e.Cause
}

// NewCLIError creates a new CLI error
func NewCLIError(errorType ErrorType, message string, cause error) *CLIError {
	return &CLIError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// CategorizeError converts an error from the client stack into a CLIError
// with a suggestion for the user.
func CategorizeError(err error) *CLIError {
	if err == nil {
		return nil
	}

	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr
	}

	var (
		validationErr *client.ValidationError
		authErr       *client.AuthError
		sessionErr    *client.SessionInvalidError
		transportErr  *client.TransportError
		remoteErr     *client.RemoteError
	)

	switch {
	case errors.As(err, &validationErr):
		return NewCLIError(ErrorTypeValidation,
			fmt.Sprintf("Validation error: %s - %s", validationErr.Field, validationErr.Reason), err)

	case errors.Is(err, client.ErrNotAuthenticated):
		return NewCLIError(ErrorTypeNotLoggedIn, "You are not logged in", err).
			WithSuggestion(loginHint)

	case errors.As(err, &sessionErr):
		return NewCLIError(ErrorTypeSessionExpired, "Your session is no longer valid", err).
			WithSuggestion(loginHint)

	case errors.As(err, &authErr):
		return NewCLIError(ErrorTypeAuth, capitalize(authErr.Reason), err).
			WithSuggestion("Check your email and password and try again.")

	case errors.Is(err, context.DeadlineExceeded):
		return NewCLIError(ErrorTypeTimeout, "Request timed out", err).
			WithSuggestion("The server is taking too long to respond. Try again in a moment.")

	case errors.As(err, &transportErr):
		return NewCLIError(ErrorTypeNetwork, "Could not reach the server", err).
			WithSuggestion("Check your connection and the api.base_url setting.")

	case errors.As(err, &remoteErr):
		return categorizeRemote(remoteErr, err)

	default:
		return NewCLIError(ErrorTypeUnknown, err.Error(), err)
	}
}

func categorizeRemote(remoteErr *client.RemoteError, cause error) *CLIError {
	message := remoteErr.Message
	var cliErr *CLIError

	switch status := remoteErr.Status; {
	case status == http.StatusUnauthorized:
		cliErr = NewCLIError(ErrorTypeUnauthorized, orDefault(message, "Not authorized"), cause).
			WithSuggestion(loginHint)
	case status == http.StatusForbidden:
		cliErr = NewCLIError(ErrorTypeForbidden, orDefault(message, "Access denied"), cause).
			WithSuggestion("You can only change your own posts, comments and profile.")
	case status == http.StatusNotFound:
		cliErr = NewCLIError(ErrorTypeNotFound, orDefault(message, "Not found"), cause)
	case status == http.StatusConflict:
		cliErr = NewCLIError(ErrorTypeConflict, orDefault(message, "Conflict"), cause)
	case status == http.StatusTooManyRequests:
		cliErr = NewCLIError(ErrorTypeRateLimit, "Rate limit exceeded. Too many requests.", cause).
			WithSuggestion("Wait a moment before trying again.")
	case status >= 500:
		cliErr = NewCLIError(ErrorTypeServer, orDefault(message, "Server error"), cause).
			WithSuggestion("The server encountered an error. Try again in a few moments.")
	default:
		cliErr = NewCLIError(ErrorTypeRequest, orDefault(message, http.StatusText(status)), cause)
	}

	cliErr.StatusCode = remoteErr.Status
	return cliErr
}

// FormatError returns a user-friendly error message
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	cliErr := CategorizeError(err)
	var sb strings.Builder

	sb.WriteString("Error")
	if cliErr.Type != ErrorTypeUnknown {
		sb.WriteString(" (")
		sb.WriteString(string(cliErr.Type))
		sb.WriteString(")")
	}
	sb.WriteString(": ")
	sb.WriteString(cliErr.Message)
	sb.WriteString("\n")

	if cliErr.HasSuggestion() {
		sb.WriteString("Suggestion: ")
		sb.WriteString(cliErr.Suggestion)
		sb.WriteString("\n")
	}

	return sb.String()
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
