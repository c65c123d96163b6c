package api

import (
	"context"
	"net/http"

	"github.com/connectsphere/cli/pkg/client"
	"github.com/connectsphere/cli/pkg/logger"
)

// GetFeed retrieves the caller's feed
func (a *API) GetFeed(ctx context.Context, page Page) (*PostList, error) {
	logger.Debug("Fetching feed", "page", page.Page)

	var list PostList
	if err := a.c.Do(ctx, client.Request{Method: http.MethodGet, Path: "/posts/feed", Query: page.query()}, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetTrending retrieves trending posts
func (a *API) GetTrending(ctx context.Context, page Page) (*PostList, error) {
	logger.Debug("Fetching trending posts", "page", page.Page)

	var list PostList
	if err := a.c.Do(ctx, client.Request{Method: http.MethodGet, Path: "/posts/trending", Query: page.query()}, &list); err != nil {
		return nil, err
	}
	return &list, nil
}
