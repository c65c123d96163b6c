package errors

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/connectsphere/cli/pkg/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCLIError(t *testing.T) {
	cause := errors.New("underlying error")
	err := NewCLIError(ErrorTypeValidation, "Test error", cause).WithSuggestion("Try something else")

	assert.Equal(t, ErrorTypeValidation, err.Type)
	assert.Equal(t, "Test error", err.Error())
	assert.True(t, err.HasSuggestion())
	assert.ErrorIs(t, err, cause)
}

func TestCategorizeError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		want       ErrorType
		status     int
		suggestion bool
	}{
		{"validation", &client.ValidationError{Field: "content", Reason: "must not be empty"}, ErrorTypeValidation, 0, false},
		{"not logged in", fmt.Errorf("feed: %w", client.ErrNotAuthenticated), ErrorTypeNotLoggedIn, 0, true},
		{"session invalid", &client.SessionInvalidError{Err: &client.RemoteError{Status: 401}}, ErrorTypeSessionExpired, 0, true},
		{"auth", &client.AuthError{Reason: "incorrect email or password"}, ErrorTypeAuth, 0, true},
		{"timeout", &client.TransportError{Method: "GET", Path: "/feed", Err: context.DeadlineExceeded}, ErrorTypeTimeout, 0, true},
		{"transport", &client.TransportError{Method: "GET", Path: "/feed", Err: &net.OpError{Op: "dial", Err: errors.New("connection refused")}}, ErrorTypeNetwork, 0, true},
		{"unauthorized", &client.RemoteError{Status: 401}, ErrorTypeUnauthorized, 401, true},
		{"forbidden", &client.RemoteError{Status: 403, Message: "Not your post"}, ErrorTypeForbidden, 403, true},
		{"not found", &client.RemoteError{Status: 404, Message: "Post not found"}, ErrorTypeNotFound, 404, false},
		{"conflict", &client.RemoteError{Status: 409}, ErrorTypeConflict, 409, false},
		{"rate limit", &client.RemoteError{Status: 429}, ErrorTypeRateLimit, 429, true},
		{"server", &client.RemoteError{Status: 502}, ErrorTypeServer, 502, true},
		{"bad request", &client.RemoteError{Status: 400, Message: "Already following"}, ErrorTypeRequest, 400, false},
		{"unknown", errors.New("boom"), ErrorTypeUnknown, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CategorizeError(tt.err)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Type)
			assert.Equal(t, tt.status, got.StatusCode)
			assert.Equal(t, tt.suggestion, got.HasSuggestion())
			assert.ErrorIs(t, got, tt.err)
		})
	}
}

func TestCategorizeError_KeepsMessages(t *testing.T) {
	assert.Equal(t, "Post not found", CategorizeError(&client.RemoteError{Status: 404, Message: "Post not found"}).Message)
	assert.Equal(t, "Not found", CategorizeError(&client.RemoteError{Status: 404}).Message)
	assert.Equal(t, "Bad Request", CategorizeError(&client.RemoteError{Status: 400}).Message)
	assert.Equal(t, "Email already registered", CategorizeError(&client.AuthError{Reason: "email already registered"}).Message)
}

func TestCategorizeError_NilAndPassthrough(t *testing.T) {
	assert.Nil(t, CategorizeError(nil))

	original := NewCLIError(ErrorTypeConflict, "exists", nil)
	assert.Same(t, original, CategorizeError(fmt.Errorf("wrapped: %w", original)))
}

func TestFormatError(t *testing.T) {
	assert.Empty(t, FormatError(nil))

	msg := FormatError(client.ErrNotAuthenticated)
	assert.Equal(t, "Error (not_logged_in): You are not logged in\nSuggestion: "+loginHint+"\n", msg)

	assert.Equal(t, "Error: boom\n", FormatError(errors.New("boom")))
}
