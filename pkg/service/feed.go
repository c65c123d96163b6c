package service

import (
	"context"
	"fmt"

	"github.com/connectsphere/cli/pkg/api"
	"github.com/connectsphere/cli/pkg/cache"
	"github.com/connectsphere/cli/pkg/formatter"
	"github.com/connectsphere/cli/pkg/logger"
	"github.com/connectsphere/cli/pkg/output"
)

// FeedService provides feed-related operations
type FeedService struct {
	core *Core
}

// NewFeedService creates a new feed service
func NewFeedService(core *Core) *FeedService {
	return &FeedService{core: core}
}

// ViewTimeline displays the feed of followed users and the caller
func (fs *FeedService) ViewTimeline(ctx context.Context) error {
	logger.Debug("Viewing timeline")

	view, err := fs.core.RefreshFeed(ctx)
	if err := staleOrFail("timeline", view, err); err != nil {
		return err
	}
	return displayPosts("Your Timeline", view.Items, "No posts in your timeline.")
}

// ViewTrendingFeed displays trending posts
func (fs *FeedService) ViewTrendingFeed(ctx context.Context) error {
	logger.Debug("Viewing trending feed")

	view, err := fs.core.RefreshTrending(ctx)
	if err := staleOrFail("trending feed", view, err); err != nil {
		return err
	}
	return displayPosts("Trending Posts", view.Items, "No trending posts available.")
}

// staleOrFail lets a failed refresh through when the cache still holds a
// previous snapshot, which is then shown with a warning.
func staleOrFail(what string, view cache.View[api.Post], err error) error {
	if err == nil {
		return nil
	}
	if len(view.Items) == 0 {
		return fmt.Errorf("failed to fetch %s: %w", what, err)
	}
	if output.IsJSON() {
		logger.Warn("Refresh failed, showing cached posts", "what", what, "error", err)
		return nil
	}
	formatter.PrintWarning("Showing posts from %s, refresh failed: %v",
		formatter.FormatTime(view.UpdatedAt), err)
	return nil
}
