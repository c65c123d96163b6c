package service

import (
	"context"
	"net/http"
	"time"

	"github.com/connectsphere/cli/pkg/api"
	"github.com/connectsphere/cli/pkg/cache"
	"github.com/connectsphere/cli/pkg/client"
	"github.com/connectsphere/cli/pkg/config"
	"github.com/connectsphere/cli/pkg/credentials"
	"github.com/connectsphere/cli/pkg/logger"
	"github.com/connectsphere/cli/pkg/poller"
	"github.com/connectsphere/cli/pkg/session"
	"golang.org/x/sync/errgroup"
)

// Options configures a Core
type Options struct {
	BaseURL      string
	Timeout      time.Duration
	PollInterval time.Duration
	// PageSize is the page size used when refreshing the post caches.
	PageSize int
	// Persister keeps the credential between runs. Optional.
	Persister session.Persister
	// ManualPoll leaves starting the unread poller to the caller. The
	// poller is still stopped when the session clears.
	ManualPoll bool

	HTTPClient    *http.Client
	TickerFactory poller.TickerFactory
}

// OptionsFromConfig maps the loaded configuration onto core options.
func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		BaseURL:      cfg.BaseURL,
		Timeout:      cfg.Timeout,
		PollInterval: cfg.UnreadInterval,
	}
}

// Core is the client's data-sync layer: one session, the three view
// caches bound to it, and the unread poller.
type Core struct {
	api     *api.API
	client  *client.Client
	session *session.Store

	feed          *cache.Cache[api.Post]
	trending      *cache.Cache[api.Post]
	notifications *cache.Cache[api.Notification]
	unread        *poller.Poller

	manualPoll  bool
	unsubscribe func()
}

// NewCore wires a Core. It starts unauthenticated; call Login, Signup or
// Restore.
func NewCore(opts Options) *Core {
	tokens := credentials.NewHolder()
	c := client.New(client.Options{
		BaseURL:    opts.BaseURL,
		Timeout:    opts.Timeout,
		HTTPClient: opts.HTTPClient,
	}, tokens)
	a := api.New(c)

	var sessionOpts []session.Option
	if opts.Persister != nil {
		sessionOpts = append(sessionOpts, session.WithPersister(opts.Persister))
	}

	page := api.DefaultPage
	if opts.PageSize > 0 {
		page.PageSize = opts.PageSize
	}

	var pollerOpts []poller.Option
	if opts.TickerFactory != nil {
		pollerOpts = append(pollerOpts, poller.WithTicker(opts.TickerFactory))
	}

	core := &Core{
		api:     a,
		client:  c,
		session: session.New(a, tokens, sessionOpts...),
		feed: cache.New("feed", func(ctx context.Context) ([]api.Post, error) {
			list, err := a.GetFeed(ctx, page)
			if err != nil {
				return nil, err
			}
			return list.Posts, nil
		}),
		trending: cache.New("trending", func(ctx context.Context) ([]api.Post, error) {
			list, err := a.GetTrending(ctx, page)
			if err != nil {
				return nil, err
			}
			return list.Posts, nil
		}),
		notifications: cache.New("notifications", a.ListNotifications),
		unread:        poller.New(a.GetUnreadCount, opts.PollInterval, pollerOpts...),
		manualPoll:    opts.ManualPoll,
	}
	core.unsubscribe = core.session.OnChange(core.onSessionChange)
	return core
}

func (c *Core) onSessionChange(event session.Event) {
	switch event {
	case session.EventAcquired:
		if !c.manualPoll {
			c.unread.Start(context.Background())
		}
	case session.EventCleared:
		c.unread.Stop()
		c.unread.Reset()
		c.feed.Reset()
		c.trending.Reset()
		c.notifications.Reset()
	}
}

// Close stops background work and detaches from the session.
func (c *Core) Close() {
	c.unsubscribe()
	c.unread.Stop()
}

// API returns the typed API the core calls through
func (c *Core) API() *api.API { return c.api }

// Session returns the session store
func (c *Core) Session() *session.Store { return c.session }

// Feed returns the feed cache
func (c *Core) Feed() *cache.Cache[api.Post] { return c.feed }

// Trending returns the trending cache
func (c *Core) Trending() *cache.Cache[api.Post] { return c.trending }

// Notifications returns the notification cache
func (c *Core) Notifications() *cache.Cache[api.Notification] { return c.notifications }

// Unread returns the unread count poller
func (c *Core) Unread() *poller.Poller { return c.unread }

// BaseURL returns the API base URL
func (c *Core) BaseURL() string { return c.client.BaseURL() }

// Session operations

// Login authenticates and loads the identity.
func (c *Core) Login(ctx context.Context, email, password string) error {
	return c.session.Login(ctx, email, password)
}

// Signup registers and authenticates.
func (c *Core) Signup(ctx context.Context, req api.SignupRequest) error {
	return c.session.Signup(ctx, req)
}

// Restore resumes a persisted session, if there is one.
func (c *Core) Restore(ctx context.Context) error {
	return c.session.Restore(ctx)
}

// Logout clears the session, stops polling and empties every cache.
func (c *Core) Logout() {
	c.session.Logout()
}

// CurrentUser returns the loaded identity
func (c *Core) CurrentUser() (api.User, bool) {
	return c.session.CurrentUser()
}

// Refreshes

// RefreshFeed reloads the feed and returns the resulting snapshot.
func (c *Core) RefreshFeed(ctx context.Context) (cache.View[api.Post], error) {
	err := c.feed.Refresh(ctx)
	return c.feed.Snapshot(), err
}

// RefreshTrending reloads trending posts and returns the resulting snapshot.
func (c *Core) RefreshTrending(ctx context.Context) (cache.View[api.Post], error) {
	err := c.trending.Refresh(ctx)
	return c.trending.Snapshot(), err
}

// RefreshNotifications reloads notifications and returns the resulting
// snapshot.
func (c *Core) RefreshNotifications(ctx context.Context) (cache.View[api.Notification], error) {
	err := c.notifications.Refresh(ctx)
	return c.notifications.Snapshot(), err
}

// RefreshAll reloads every cache and the unread count concurrently. A
// failure in one does not cancel the others; the first error is returned.
func (c *Core) RefreshAll(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error { return c.feed.Refresh(ctx) })
	g.Go(func() error { return c.trending.Refresh(ctx) })
	g.Go(func() error { return c.notifications.Refresh(ctx) })
	g.Go(func() error {
		_, err := c.unread.Poll(ctx)
		return err
	})
	return g.Wait()
}

// Mutations. Each one that reaches the server is followed by a refresh of
// the affected caches; counts are never adjusted locally. Input rejected
// client-side returns before anything is sent.

// ToggleReaction adds, switches or removes the caller's reaction on a post.
func (c *Core) ToggleReaction(ctx context.Context, postID int64, reactionType string) (*api.ReactionSummary, error) {
	if _, err := api.ValidateReactionType(reactionType); err != nil {
		return nil, err
	}
	var summary *api.ReactionSummary
	err := c.mutatePosts(ctx, func(ctx context.Context) error {
		var err error
		summary, err = c.api.ToggleReaction(ctx, postID, reactionType)
		return err
	})
	return summary, err
}

// CreatePost publishes a post.
func (c *Core) CreatePost(ctx context.Context, content, mediaURL string) (*api.Post, error) {
	if _, err := api.ValidatePostContent(content); err != nil {
		return nil, err
	}
	var post *api.Post
	err := c.mutatePosts(ctx, func(ctx context.Context) error {
		var err error
		post, err = c.api.CreatePost(ctx, content, mediaURL)
		return err
	})
	return post, err
}

// UpdatePost edits one of the caller's posts.
func (c *Core) UpdatePost(ctx context.Context, postID int64, content, mediaURL string) (*api.Post, error) {
	if _, err := api.ValidatePostContent(content); err != nil {
		return nil, err
	}
	var post *api.Post
	err := c.mutatePosts(ctx, func(ctx context.Context) error {
		var err error
		post, err = c.api.UpdatePost(ctx, postID, content, mediaURL)
		return err
	})
	return post, err
}

// CreateComment comments on a post, or replies when parentID is set.
func (c *Core) CreateComment(ctx context.Context, postID int64, content string, parentID *int64) (*api.Comment, error) {
	if _, err := api.ValidateCommentContent(content); err != nil {
		return nil, err
	}
	var comment *api.Comment
	err := c.mutatePosts(ctx, func(ctx context.Context) error {
		var err error
		comment, err = c.api.CreateComment(ctx, postID, content, parentID)
		return err
	})
	return comment, err
}

// DeleteComment removes one of the caller's comments.
func (c *Core) DeleteComment(ctx context.Context, commentID int64) error {
	return c.mutatePosts(ctx, func(ctx context.Context) error {
		return c.api.DeleteComment(ctx, commentID)
	})
}

// Follow follows a user. The feed is refreshed since it depends on who
// the caller follows.
func (c *Core) Follow(ctx context.Context, userID int64) (*api.Follow, error) {
	var follow *api.Follow
	err := c.feed.ApplyMutation(ctx, func(ctx context.Context) error {
		var err error
		follow, err = c.api.Follow(ctx, userID)
		return err
	})
	return follow, err
}

// Unfollow stops following a user.
func (c *Core) Unfollow(ctx context.Context, userID int64) error {
	return c.feed.ApplyMutation(ctx, func(ctx context.Context) error {
		return c.api.Unfollow(ctx, userID)
	})
}

// MarkNotificationRead marks a notification read and re-syncs the
// notification list and unread count.
func (c *Core) MarkNotificationRead(ctx context.Context, notificationID int64) error {
	err := c.notifications.ApplyMutation(ctx, func(ctx context.Context) error {
		return c.api.MarkNotificationRead(ctx, notificationID)
	})
	if _, pollErr := c.unread.Poll(ctx); pollErr != nil {
		logger.Debug("Unread count refresh failed", "error", pollErr)
	}
	return err
}

// GetUnreadCount fetches the unread count now. On failure the last known
// count is returned with the error.
func (c *Core) GetUnreadCount(ctx context.Context) (int, error) {
	return c.unread.Poll(ctx)
}

// UpdateCurrentUser changes account fields and reloads the identity.
func (c *Core) UpdateCurrentUser(ctx context.Context, req api.UpdateUserRequest) (*api.User, error) {
	user, err := c.api.UpdateCurrentUser(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := c.session.RefreshUser(ctx); err != nil {
		return user, err
	}
	return user, nil
}

// Reads that bypass the caches

// GetPost fetches one post
func (c *Core) GetPost(ctx context.Context, postID int64) (*api.Post, error) {
	return c.api.GetPost(ctx, postID)
}

// PostsByUser fetches a page of a user's posts
func (c *Core) PostsByUser(ctx context.Context, userID int64, page api.Page) (*api.PostList, error) {
	return c.api.GetPostsByUser(ctx, userID, page)
}

// Comments fetches the comments on a post. Comments are never cached.
func (c *Core) Comments(ctx context.Context, postID int64) ([]api.Comment, error) {
	return c.api.ListComments(ctx, postID)
}

// GetUser fetches a user by id
func (c *Core) GetUser(ctx context.Context, userID int64) (*api.User, error) {
	return c.api.GetUser(ctx, userID)
}

// MyProfile fetches the caller's profile
func (c *Core) MyProfile(ctx context.Context) (*api.Profile, error) {
	return c.api.GetMyProfile(ctx)
}

// UpdateMyProfile edits the caller's profile
func (c *Core) UpdateMyProfile(ctx context.Context, req api.UpdateProfileRequest) (*api.Profile, error) {
	return c.api.UpdateMyProfile(ctx, req)
}

// Profile fetches a user's profile
func (c *Core) Profile(ctx context.Context, userID int64) (*api.Profile, error) {
	return c.api.GetProfile(ctx, userID)
}

// Followers lists who follows userID
func (c *Core) Followers(ctx context.Context, userID int64, page api.Page) (*api.UserList, error) {
	return c.api.GetFollowers(ctx, userID, page)
}

// Following lists who userID follows
func (c *Core) Following(ctx context.Context, userID int64, page api.Page) (*api.UserList, error) {
	return c.api.GetFollowing(ctx, userID, page)
}

// FollowStatus reports whether the caller follows userID
func (c *Core) FollowStatus(ctx context.Context, userID int64) (bool, error) {
	return c.api.GetFollowStatus(ctx, userID)
}

// Health checks the API without authentication
func (c *Core) Health(ctx context.Context) (*api.Health, error) {
	return c.api.Health(ctx)
}

// mutatePosts runs mutate through the feed cache and then refreshes
// trending too if it has ever been loaded.
func (c *Core) mutatePosts(ctx context.Context, mutate cache.MutationFunc) error {
	err := c.feed.ApplyMutation(ctx, mutate)
	if !c.trending.Snapshot().UpdatedAt.IsZero() {
		_ = c.trending.Refresh(ctx)
	}
	return err
}
