package service

import (
	"context"
	"fmt"

	"github.com/connectsphere/cli/pkg/formatter"
	"github.com/connectsphere/cli/pkg/output"
	"github.com/connectsphere/cli/pkg/prompter"
)

// CommentService provides comment operations
type CommentService struct {
	core *Core
}

// NewCommentService creates a new comment service
func NewCommentService(core *Core) *CommentService {
	return &CommentService{core: core}
}

// AddComment comments on a post, or replies to parentID when it is set.
// Empty content is read from the prompt.
func (cs *CommentService) AddComment(ctx context.Context, postID int64, content string, parentID *int64) error {
	if content == "" {
		var err error
		if content, err = prompter.PromptString("Comment: "); err != nil {
			return err
		}
	}

	comment, err := cs.core.CreateComment(ctx, postID, content, parentID)
	if err != nil {
		return err
	}
	if output.IsJSON() {
		return output.Print("comment", comment)
	}
	formatter.PrintSuccess("Comment #%d added to post #%d", comment.ID, postID)
	return nil
}

// ListComments displays the comments on a post
func (cs *CommentService) ListComments(ctx context.Context, postID int64) error {
	comments, err := cs.core.Comments(ctx, postID)
	if err != nil {
		return fmt.Errorf("failed to fetch comments: %w", err)
	}
	return displayComments(comments)
}

// DeleteComment removes one of the caller's comments after confirmation
func (cs *CommentService) DeleteComment(ctx context.Context, commentID int64, confirm bool) error {
	if !confirm {
		ok, err := prompter.PromptConfirm(fmt.Sprintf("Delete comment #%d?", commentID))
		if err != nil {
			return err
		}
		if !ok {
			formatter.PrintInfo("Cancelled")
			return nil
		}
	}

	if err := cs.core.DeleteComment(ctx, commentID); err != nil {
		return err
	}
	if output.IsJSON() {
		return output.Print("", map[string]interface{}{"deleted": commentID})
	}
	formatter.PrintSuccess("Comment #%d deleted", commentID)
	return nil
}
