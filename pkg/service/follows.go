package service

import (
	"context"
	"fmt"

	"github.com/connectsphere/cli/pkg/api"
	"github.com/connectsphere/cli/pkg/client"
	"github.com/connectsphere/cli/pkg/formatter"
	"github.com/connectsphere/cli/pkg/output"
)

// FollowService manages who the caller follows
type FollowService struct {
	core *Core
}

// NewFollowService creates a new follow service
func NewFollowService(core *Core) *FollowService {
	return &FollowService{core: core}
}

// Follow follows a user
func (fs *FollowService) Follow(ctx context.Context, userID int64) error {
	follow, err := fs.core.Follow(ctx, userID)
	if err != nil {
		return err
	}
	if output.IsJSON() {
		return output.Print("follow", follow)
	}
	formatter.PrintSuccess("Now following user %d", userID)
	return nil
}

// Unfollow stops following a user
func (fs *FollowService) Unfollow(ctx context.Context, userID int64) error {
	if err := fs.core.Unfollow(ctx, userID); err != nil {
		return err
	}
	if output.IsJSON() {
		return output.Print("", map[string]interface{}{"unfollowed": userID})
	}
	formatter.PrintSuccess("Unfollowed user %d", userID)
	return nil
}

// ListFollowers displays who follows userID; zero means the caller.
func (fs *FollowService) ListFollowers(ctx context.Context, userID int64, page api.Page) error {
	id, err := fs.resolve(userID)
	if err != nil {
		return err
	}
	list, err := fs.core.Followers(ctx, id, page)
	if err != nil {
		return fmt.Errorf("failed to fetch followers: %w", err)
	}
	return displayUsers(fmt.Sprintf("Followers of user %d", id), list)
}

// ListFollowing displays who userID follows; zero means the caller.
func (fs *FollowService) ListFollowing(ctx context.Context, userID int64, page api.Page) error {
	id, err := fs.resolve(userID)
	if err != nil {
		return err
	}
	list, err := fs.core.Following(ctx, id, page)
	if err != nil {
		return fmt.Errorf("failed to fetch following: %w", err)
	}
	return displayUsers(fmt.Sprintf("Followed by user %d", id), list)
}

// ShowStatus prints whether the caller follows userID
func (fs *FollowService) ShowStatus(ctx context.Context, userID int64) error {
	following, err := fs.core.FollowStatus(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to fetch follow status: %w", err)
	}
	if output.IsJSON() {
		return output.Print("", api.FollowStatus{IsFollowing: following})
	}
	if following {
		output.Printf("You follow user %d\n", userID)
	} else {
		output.Printf("You do not follow user %d\n", userID)
	}
	return nil
}

func (fs *FollowService) resolve(userID int64) (int64, error) {
	if userID != 0 {
		return userID, nil
	}
	user, ok := fs.core.CurrentUser()
	if !ok {
		return 0, client.ErrNotAuthenticated
	}
	return user.ID, nil
}
