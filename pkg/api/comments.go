package api

import (
	"context"
	"net/http"

	"github.com/connectsphere/cli/pkg/client"
	"github.com/connectsphere/cli/pkg/logger"
)

// CreateComment adds a comment (or a reply when parentID is set) to a post
func (a *API) CreateComment(ctx context.Context, postID int64, content string, parentID *int64) (*Comment, error) {
	content, err := ValidateCommentContent(content)
	if err != nil {
		return nil, err
	}
	logger.Debug("Creating comment", "post_id", postID)

	var comment Comment
	err = a.c.Do(ctx, client.Request{
		Method: http.MethodPost,
		Path:   idPath("/comments/posts/%d", postID),
		Body:   CreateCommentRequest{Content: content, ParentID: parentID},
	}, &comment)
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListComments retrieves the comments on a post
func (a *API) ListComments(ctx context.Context, postID int64) ([]Comment, error) {
	logger.Debug("Fetching comments", "post_id", postID)

	var list CommentList
	if err := a.c.Do(ctx, client.Request{Method: http.MethodGet, Path: idPath("/comments/posts/%d", postID)}, &list); err != nil {
		return nil, err
	}
	return list.Comments, nil
}

// DeleteComment removes one of the caller's comments
func (a *API) DeleteComment(ctx context.Context, commentID int64) error {
	logger.Debug("Deleting comment", "comment_id", commentID)

	return a.c.Do(ctx, client.Request{Method: http.MethodDelete, Path: idPath("/comments/%d", commentID)}, nil)
}
