package api

import (
	"context"
	"net/http"

	"github.com/connectsphere/cli/pkg/client"
	"github.com/connectsphere/cli/pkg/logger"
)

// GetMyProfile retrieves the caller's profile
func (a *API) GetMyProfile(ctx context.Context) (*Profile, error) {
	logger.Debug("Fetching own profile")

	var profile Profile
	if err := a.c.Do(ctx, client.Request{Method: http.MethodGet, Path: "/profiles/me"}, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateMyProfile updates the caller's profile fields
func (a *API) UpdateMyProfile(ctx context.Context, req UpdateProfileRequest) (*Profile, error) {
	logger.Debug("Updating own profile")

	var profile Profile
	if err := a.c.Do(ctx, client.Request{Method: http.MethodPut, Path: "/profiles/me", Body: req}, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetProfile retrieves the profile of a user
func (a *API) GetProfile(ctx context.Context, userID int64) (*Profile, error) {
	logger.Debug("Fetching profile", "user_id", userID)

	var profile Profile
	if err := a.c.Do(ctx, client.Request{Method: http.MethodGet, Path: idPath("/profiles/%d", userID)}, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
