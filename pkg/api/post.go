package api

import (
	"context"
	"net/http"

	"github.com/connectsphere/cli/pkg/client"
	"github.com/connectsphere/cli/pkg/logger"
)

// CreatePost publishes a post with optional media
func (a *API) CreatePost(ctx context.Context, content, mediaURL string) (*Post, error) {
	content, err := ValidatePostContent(content)
	if err != nil {
		return nil, err
	}
	logger.Debug("Creating post", "length", len(content))

	req := CreatePostRequest{Content: content}
	if mediaURL != "" {
		req.MediaURL = &mediaURL
	}

	var post Post
	if err := a.c.Do(ctx, client.Request{Method: http.MethodPost, Path: "/posts", Body: req}, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPost retrieves a single post
func (a *API) GetPost(ctx context.Context, postID int64) (*Post, error) {
	logger.Debug("Fetching post", "post_id", postID)

	var post Post
	if err := a.c.Do(ctx, client.Request{Method: http.MethodGet, Path: idPath("/posts/%d", postID)}, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdatePost edits the content or media of one of the caller's posts
func (a *API) UpdatePost(ctx context.Context, postID int64, content, mediaURL string) (*Post, error) {
	content, err := ValidatePostContent(content)
	if err != nil {
		return nil, err
	}
	logger.Debug("Updating post", "post_id", postID)

	req := UpdatePostRequest{Content: content}
	if mediaURL != "" {
		req.MediaURL = &mediaURL
	}

	var post Post
	if err := a.c.Do(ctx, client.Request{Method: http.MethodPut, Path: idPath("/posts/%d", postID), Body: req}, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPostsByUser retrieves a page of one user's posts
func (a *API) GetPostsByUser(ctx context.Context, userID int64, page Page) (*PostList, error) {
	logger.Debug("Fetching posts by user", "user_id", userID, "page", page.Page)

	var list PostList
	err := a.c.Do(ctx, client.Request{
		Method: http.MethodGet,
		Path:   idPath("/posts/user/%d", userID),
		Query:  page.query(),
	}, &list)
	if err != nil {
		return nil, err
	}
	return &list, nil
}
