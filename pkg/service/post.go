package service

import (
	"context"
	"fmt"

	"github.com/connectsphere/cli/pkg/api"
	"github.com/connectsphere/cli/pkg/formatter"
	"github.com/connectsphere/cli/pkg/logger"
	"github.com/connectsphere/cli/pkg/output"
	"github.com/connectsphere/cli/pkg/prompter"
)

// PostService provides post-related operations
type PostService struct {
	core *Core
}

// NewPostService creates a new post service
func NewPostService(core *Core) *PostService {
	return &PostService{core: core}
}

// CreatePost publishes a post. Empty content is read from the prompt.
func (ps *PostService) CreatePost(ctx context.Context, content, mediaURL string) error {
	if content == "" {
		var err error
		content, err = prompter.PromptMultilineString("Post content", 100)
		if err != nil {
			return err
		}
	}

	post, err := ps.core.CreatePost(ctx, content, mediaURL)
	if err != nil {
		return err
	}

	logger.Info("Post created", "post_id", post.ID)
	if output.IsJSON() {
		return output.Print("post", post)
	}
	formatter.PrintSuccess("Post #%d published", post.ID)
	return displayPost(post)
}

// ShowPost displays a post, optionally followed by its comments
func (ps *PostService) ShowPost(ctx context.Context, postID int64, withComments bool) error {
	post, err := ps.core.GetPost(ctx, postID)
	if err != nil {
		return fmt.Errorf("failed to fetch post: %w", err)
	}
	if !withComments {
		return displayPost(post)
	}

	comments, err := ps.core.Comments(ctx, postID)
	if err != nil {
		return fmt.Errorf("failed to fetch comments: %w", err)
	}
	if output.IsJSON() {
		return output.Print("", map[string]interface{}{"post": post, "comments": comments})
	}

	if err := displayPost(post); err != nil {
		return err
	}
	output.Printf("\n%s\n", formatter.Bold.Sprintf("Comments (%d)", len(comments)))
	return displayComments(comments)
}

// EditPost updates one of the caller's posts
func (ps *PostService) EditPost(ctx context.Context, postID int64, content, mediaURL string) error {
	post, err := ps.core.UpdatePost(ctx, postID, content, mediaURL)
	if err != nil {
		return err
	}
	if output.IsJSON() {
		return output.Print("post", post)
	}
	formatter.PrintSuccess("Post #%d updated", post.ID)
	return displayPost(post)
}

// React toggles the caller's reaction on a post and prints the result
func (ps *PostService) React(ctx context.Context, postID int64, reactionType string) error {
	summary, err := ps.core.ToggleReaction(ctx, postID, reactionType)
	if err != nil {
		return err
	}
	if output.IsJSON() {
		return output.Print("reactions", summary)
	}
	formatter.PrintSuccess("Post #%d: %s", postID, formatter.FormatReactionSummary(*summary))
	return nil
}

// ListUserPosts displays a page of one user's posts
func (ps *PostService) ListUserPosts(ctx context.Context, userID int64, page api.Page) error {
	list, err := ps.core.PostsByUser(ctx, userID, page)
	if err != nil {
		return fmt.Errorf("failed to fetch posts: %w", err)
	}

	if err := displayPosts(fmt.Sprintf("Posts by user %d", userID), list.Posts, "No posts found."); err != nil {
		return err
	}
	if !output.IsJSON() && len(list.Posts) > 0 {
		output.Printf("%s\n", pageFooter(len(list.Posts), list.Total, list.Page, list.HasMore))
	}
	return nil
}
