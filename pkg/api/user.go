package api

import (
	"context"
	"net/http"

	"github.com/connectsphere/cli/pkg/client"
	"github.com/connectsphere/cli/pkg/logger"
)

// GetCurrentUser resolves the identity behind the held credential
func (a *API) GetCurrentUser(ctx context.Context) (*User, error) {
	logger.Debug("Fetching current user")

	var user User
	if err := a.c.Do(ctx, client.Request{Method: http.MethodGet, Path: "/users/me"}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateCurrentUser changes the current user's username or email
func (a *API) UpdateCurrentUser(ctx context.Context, req UpdateUserRequest) (*User, error) {
	logger.Debug("Updating current user")

	var user User
	if err := a.c.Do(ctx, client.Request{Method: http.MethodPut, Path: "/users/me", Body: req}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUser retrieves a user by id
func (a *API) GetUser(ctx context.Context, userID int64) (*User, error) {
	logger.Debug("Fetching user", "user_id", userID)

	var user User
	if err := a.c.Do(ctx, client.Request{Method: http.MethodGet, Path: idPath("/users/%d", userID)}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
