package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/connectsphere/cli/pkg/client"
	"github.com/connectsphere/cli/pkg/logger"
)

// Login exchanges email and password for a bearer token
func (a *API) Login(ctx context.Context, email, password string) (*Token, error) {
	logger.Debug("Attempting login", "email", email)

	var token Token
	err := a.c.Do(ctx, client.Request{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Body:   LoginRequest{Email: email, Password: password},
		Public: true,
	}, &token)
	if err != nil {
		return nil, asAuthError(err, "invalid email or password")
	}
	if token.AccessToken == "" {
		return nil, &client.AuthError{Reason: "server returned no access token"}
	}

	logger.Debug("Login successful", "email", email)
	return &token, nil
}

// Signup registers a new account and returns its first token
func (a *API) Signup(ctx context.Context, req SignupRequest) (*Token, error) {
	logger.Debug("Attempting signup", "email", req.Email, "username", req.Username)

	var token Token
	err := a.c.Do(ctx, client.Request{
		Method: http.MethodPost,
		Path:   "/auth/signup",
		Body:   req,
		Public: true,
	}, &token)
	if err != nil {
		return nil, asAuthError(err, "account could not be created")
	}
	if token.AccessToken == "" {
		return nil, &client.AuthError{Reason: "server returned no access token"}
	}

	return &token, nil
}

// asAuthError turns credential rejections on login/signup into AuthError.
// Transport failures and other statuses pass through untouched.
func asAuthError(err error, reason string) error {
	var remoteErr *client.RemoteError
	if !errors.As(err, &remoteErr) {
		return err
	}
	switch remoteErr.Status {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden,
		http.StatusConflict, http.StatusUnprocessableEntity:
		if remoteErr.Message != "" {
			reason = remoteErr.Message
		}
		return &client.AuthError{Reason: reason, Err: err}
	}
	return err
}
