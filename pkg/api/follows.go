package api

import (
	"context"
	"net/http"

	"github.com/connectsphere/cli/pkg/client"
	"github.com/connectsphere/cli/pkg/logger"
)

// Follow starts following a user
func (a *API) Follow(ctx context.Context, userID int64) (*Follow, error) {
	logger.Debug("Following user", "user_id", userID)

	var follow Follow
	if err := a.c.Do(ctx, client.Request{Method: http.MethodPost, Path: idPath("/follows/%d", userID)}, &follow); err != nil {
		return nil, err
	}
	return &follow, nil
}

// Unfollow stops following a user
func (a *API) Unfollow(ctx context.Context, userID int64) error {
	logger.Debug("Unfollowing user", "user_id", userID)

	return a.c.Do(ctx, client.Request{Method: http.MethodDelete, Path: idPath("/follows/%d", userID)}, nil)
}

// GetFollowers lists the users following userID
func (a *API) GetFollowers(ctx context.Context, userID int64, page Page) (*UserList, error) {
	return a.userList(ctx, idPath("/follows/%d/followers", userID), page)
}

// GetFollowing lists the users userID follows
func (a *API) GetFollowing(ctx context.Context, userID int64, page Page) (*UserList, error) {
	return a.userList(ctx, idPath("/follows/%d/following", userID), page)
}

// GetFollowStatus reports whether the caller follows userID
func (a *API) GetFollowStatus(ctx context.Context, userID int64) (bool, error) {
	logger.Debug("Fetching follow status", "user_id", userID)

	var status FollowStatus
	if err := a.c.Do(ctx, client.Request{Method: http.MethodGet, Path: idPath("/follows/%d/status", userID)}, &status); err != nil {
		return false, err
	}
	return status.IsFollowing, nil
}

func (a *API) userList(ctx context.Context, path string, page Page) (*UserList, error) {
	logger.Debug("Fetching user list", "path", path, "page", page.Page)

	var list UserList
	if err := a.c.Do(ctx, client.Request{Method: http.MethodGet, Path: path, Query: page.query()}, &list); err != nil {
		return nil, err
	}
	return &list, nil
}
