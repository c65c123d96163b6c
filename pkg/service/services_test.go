package service

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/connectsphere/cli/pkg/api"
	"github.com/connectsphere/cli/pkg/client"
	"github.com/connectsphere/cli/pkg/config"
	"github.com/connectsphere/cli/pkg/output"
	"github.com/connectsphere/cli/pkg/prompter"
	"github.com/fatih/color"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lockedBuffer is written from the poller goroutine in watch tests.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func (b *lockedBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf.Reset()
}

func captureOutput(t *testing.T, format string) *lockedBuffer {
	t.Helper()
	color.NoColor = true
	buf := &lockedBuffer{}
	output.SetOutput(buf)
	config.Set("output.format", format)
	t.Cleanup(func() {
		output.SetOutput(color.Output)
		config.Set("output.format", "text")
	})
	return buf
}

func withPromptInput(t *testing.T, input string) {
	t.Helper()
	prompter.SetIO(strings.NewReader(input), &bytes.Buffer{})
	t.Cleanup(func() { prompter.SetIO(os.Stdin, os.Stdout) })
}

func manualPoll(o *Options) { o.ManualPoll = true }

func TestAuthService_Login(t *testing.T) {
	f := newCoreFixture(t, manualPoll)
	out := captureOutput(t, "text")

	require.NoError(t, NewAuthService(f.core).Login(context.Background(), f.me.Email, testPassword))
	assert.Contains(t, out.String(), "Login successful!")
	assert.Contains(t, out.String(), "Logged in as "+f.me.Username)
	assert.Contains(t, out.String(), "Username: "+f.me.Username)
}

func TestAuthService_LoginPrompts(t *testing.T) {
	f := newCoreFixture(t, manualPoll)
	captureOutput(t, "text")
	withPromptInput(t, f.me.Email+"\n"+testPassword+"\n")

	require.NoError(t, NewAuthService(f.core).Login(context.Background(), "", ""))
	user, ok := f.core.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, f.me.ID, user.ID)
}

func TestAuthService_LoginJSON(t *testing.T) {
	f := newCoreFixture(t, manualPoll)
	out := captureOutput(t, "json")

	require.NoError(t, NewAuthService(f.core).Login(context.Background(), f.me.Email, testPassword))

	var got struct {
		User api.User `json:"user"`
	}
	require.NoError(t, jsoniter.Unmarshal([]byte(out.String()), &got))
	assert.Equal(t, f.me.Username, got.User.Username)
}

func TestAuthService_LoginRejectsEmptyPassword(t *testing.T) {
	f := newCoreFixture(t, manualPoll)
	captureOutput(t, "text")
	withPromptInput(t, "\n")

	err := NewAuthService(f.core).Login(context.Background(), f.me.Email, "")
	assert.EqualError(t, err, "password cannot be empty")
	assert.Zero(t, f.srv.Calls("POST /auth/login"))
}

func TestAuthService_SignupPromptsForMissingFields(t *testing.T) {
	f := newCoreFixture(t, manualPoll)
	out := captureOutput(t, "text")
	withPromptInput(t, "new_user\nlongenough1\n")

	err := NewAuthService(f.core).Signup(context.Background(), api.SignupRequest{Email: "new@example.com"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Account created!")
	user, ok := f.core.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "new_user", user.Username)
}

func TestAuthService_LogoutAndWhoAmI(t *testing.T) {
	f := newCoreFixture(t, manualPoll)
	out := captureOutput(t, "text")
	auth := NewAuthService(f.core)

	assert.ErrorIs(t, auth.WhoAmI(context.Background()), client.ErrNotAuthenticated)
	require.NoError(t, auth.Logout())
	assert.Contains(t, out.String(), "Not logged in")

	f.login(t)
	out.Reset()
	require.NoError(t, auth.WhoAmI(context.Background()))
	assert.Contains(t, out.String(), "Email: "+f.me.Email)

	out.Reset()
	require.NoError(t, auth.Logout())
	assert.Contains(t, out.String(), "Logged out "+f.me.Username)
	assert.False(t, f.core.Session().IsAuthenticated())
}

func TestFeedService_Timeline(t *testing.T) {
	f := newCoreFixture(t, manualPoll)
	f.login(t)
	posts := f.srv.SeedPosts(f.other.ID, 2)
	out := captureOutput(t, "text")

	require.NoError(t, NewFeedService(f.core).ViewTimeline(context.Background()))
	text := out.String()
	assert.Contains(t, text, "Your Timeline")
	newest := strings.Index(text, posts[1].Content)
	oldest := strings.Index(text, posts[0].Content)
	require.True(t, newest >= 0 && oldest >= 0)
	assert.Less(t, newest, oldest)
}

func TestFeedService_EmptyAndTable(t *testing.T) {
	f := newCoreFixture(t, manualPoll)
	f.login(t)
	out := captureOutput(t, "text")
	feeds := NewFeedService(f.core)

	require.NoError(t, feeds.ViewTrendingFeed(context.Background()))
	assert.Contains(t, out.String(), "No trending posts available.")

	f.srv.SeedPosts(f.other.ID, 1)
	out = captureOutput(t, "table")
	require.NoError(t, feeds.ViewTrendingFeed(context.Background()))
	assert.Contains(t, out.String(), "AUTHOR")
	assert.Contains(t, out.String(), "@"+f.other.Username)
}

func TestFeedService_NotLoggedIn(t *testing.T) {
	f := newCoreFixture(t, manualPoll)
	captureOutput(t, "text")

	err := NewFeedService(f.core).ViewTimeline(context.Background())
	assert.ErrorIs(t, err, client.ErrNotAuthenticated)
	assert.Zero(t, f.srv.TotalCalls())
}

func TestPostService_CreateReactShow(t *testing.T) {
	f := newCoreFixture(t, manualPoll)
	f.login(t)
	out := captureOutput(t, "text")
	posts := NewPostService(f.core)
	ctx := context.Background()

	require.NoError(t, posts.CreatePost(ctx, "hello world", ""))
	assert.Contains(t, out.String(), "published")
	created := f.core.Feed().Snapshot().Items[0]
	assert.Equal(t, "hello world", created.Content)

	out.Reset()
	require.NoError(t, posts.React(ctx, created.ID, api.ReactionLove))
	assert.Contains(t, out.String(), "1 reaction (love 1), yours: love")

	_, err := f.core.API().CreateComment(ctx, created.ID, "nice", nil)
	require.NoError(t, err)
	out = captureOutput(t, "json")
	require.NoError(t, posts.ShowPost(ctx, created.ID, true))

	var got struct {
		Post     api.Post      `json:"post"`
		Comments []api.Comment `json:"comments"`
	}
	require.NoError(t, jsoniter.Unmarshal([]byte(out.String()), &got))
	assert.Equal(t, created.ID, got.Post.ID)
	require.Len(t, got.Comments, 1)
	assert.Equal(t, "nice", got.Comments[0].Content)
}

func TestPostService_CreateFromPrompt(t *testing.T) {
	f := newCoreFixture(t, manualPoll)
	f.login(t)
	captureOutput(t, "text")
	withPromptInput(t, "line one\nline two\n\n")

	require.NoError(t, NewPostService(f.core).CreatePost(context.Background(), "", ""))
	assert.Equal(t, "line one\nline two", f.core.Feed().Snapshot().Items[0].Content)
}

func TestPostService_ListUserPosts(t *testing.T) {
	f := newCoreFixture(t, manualPoll)
	f.login(t)
	f.srv.SeedPosts(f.other.ID, 3)
	out := captureOutput(t, "text")

	require.NoError(t, NewPostService(f.core).ListUserPosts(context.Background(), f.other.ID, api.Page{Page: 1, PageSize: 2}))
	assert.Contains(t, out.String(), "Showing 2 of 3 (page 1), more available")
}

func TestCommentService(t *testing.T) {
	f := newCoreFixture(t, manualPoll)
	f.login(t)
	post := f.srv.SeedPosts(f.other.ID, 1)[0]
	out := captureOutput(t, "text")
	comments := NewCommentService(f.core)
	ctx := context.Background()

	require.NoError(t, comments.AddComment(ctx, post.ID, "first!", nil))
	assert.Contains(t, out.String(), "added to post")

	out.Reset()
	require.NoError(t, comments.ListComments(ctx, post.ID))
	assert.Contains(t, out.String(), "first!")

	list, err := f.core.Comments(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	withPromptInput(t, "n\n")
	out.Reset()
	require.NoError(t, comments.DeleteComment(ctx, list[0].ID, false))
	assert.Contains(t, out.String(), "Cancelled")
	assert.Zero(t, f.srv.Calls(fmt.Sprintf("DELETE /comments/%d", list[0].ID)))

	require.NoError(t, comments.DeleteComment(ctx, list[0].ID, true))
	list, err = f.core.Comments(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestNotificationService(t *testing.T) {
	f := newCoreFixture(t, manualPoll)
	f.login(t)
	first := f.srv.Notify(f.me.ID, "like", "ana liked your post")
	f.srv.Notify(f.me.ID, "follow", "bo followed you")
	out := captureOutput(t, "text")
	notifications := NewNotificationService(f.core)
	ctx := context.Background()

	require.NoError(t, notifications.ShowUnreadCount(ctx))
	assert.Contains(t, out.String(), "2 unread notifications")

	out.Reset()
	require.NoError(t, notifications.MarkRead(ctx, first.ID))
	assert.Contains(t, out.String(), "(1 unread)")

	out.Reset()
	require.NoError(t, notifications.ListNotifications(ctx, true))
	assert.Contains(t, out.String(), "bo followed you")
	assert.NotContains(t, out.String(), "ana liked your post")

	out = captureOutput(t, "json")
	require.NoError(t, notifications.ShowUnreadCount(ctx))
	assert.JSONEq(t, `{"unread_count":1}`, out.String())
}

func TestNotificationWatcher_PrintsNewArrivals(t *testing.T) {
	f := newCoreFixture(t, manualPoll)
	f.login(t)
	f.srv.Notify(f.me.ID, "like", "already here")
	out := captureOutput(t, "text")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- NewNotificationWatcherService(f.core).WatchNotifications(ctx)
	}()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "1 unread notification")
	}, time.Second, 10*time.Millisecond)
	assert.NotContains(t, out.String(), "already here")

	f.srv.Notify(f.me.ID, "comment", "bo commented on your post")
	f.clock.mu.Lock()
	ticker := f.clock.tickers[0]
	f.clock.mu.Unlock()
	ticker.c <- time.Now()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "bo commented on your post")
	}, time.Second, 10*time.Millisecond)
	assert.Contains(t, out.String(), "2 unread notifications")

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
	assert.False(t, f.core.Unread().Running())
	assert.Equal(t, 0, f.clock.active())
}

func TestNotificationWatcher_ArrivalWithUnchangedCount(t *testing.T) {
	f := newCoreFixture(t, manualPoll)
	f.login(t)
	first := f.srv.Notify(f.me.ID, "like", "already here")
	out := captureOutput(t, "text")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- NewNotificationWatcherService(f.core).WatchNotifications(ctx)
	}()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "1 unread notification")
	}, time.Second, 10*time.Millisecond)

	// Read on another device, then a new one arrives before the next tick.
	require.NoError(t, f.core.API().MarkNotificationRead(context.Background(), first.ID))
	f.srv.Notify(f.me.ID, "comment", "bo commented on your post")

	f.clock.mu.Lock()
	ticker := f.clock.tickers[0]
	f.clock.mu.Unlock()
	ticker.c <- time.Now()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "bo commented on your post")
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, strings.Count(out.String(), "1 unread notification"), "the count line only repeats on change")

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestNotificationWatcher_RequiresLogin(t *testing.T) {
	f := newCoreFixture(t, manualPoll)
	captureOutput(t, "text")

	err := NewNotificationWatcherService(f.core).WatchNotifications(context.Background())
	assert.ErrorIs(t, err, client.ErrNotAuthenticated)
}

func TestFollowService(t *testing.T) {
	f := newCoreFixture(t, manualPoll)
	f.login(t)
	out := captureOutput(t, "text")
	follows := NewFollowService(f.core)
	ctx := context.Background()

	require.NoError(t, follows.Follow(ctx, f.other.ID))
	assert.Contains(t, out.String(), "Now following")

	out.Reset()
	require.NoError(t, follows.ShowStatus(ctx, f.other.ID))
	assert.Contains(t, out.String(), "You follow user")

	out.Reset()
	require.NoError(t, follows.ListFollowing(ctx, 0, api.DefaultPage))
	assert.Contains(t, out.String(), "@"+f.other.Username)

	out.Reset()
	require.NoError(t, follows.ListFollowers(ctx, 0, api.DefaultPage))
	assert.Contains(t, out.String(), ": none")

	require.NoError(t, follows.Unfollow(ctx, f.other.ID))
	out.Reset()
	require.NoError(t, follows.ShowStatus(ctx, f.other.ID))
	assert.Contains(t, out.String(), "do not follow")
}

func TestProfileService(t *testing.T) {
	f := newCoreFixture(t, manualPoll)
	f.login(t)
	out := captureOutput(t, "text")
	profiles := NewProfileService(f.core)
	ctx := context.Background()

	assert.EqualError(t, profiles.UpdateMyProfile(ctx, api.UpdateProfileRequest{}), "nothing to update")

	require.NoError(t, profiles.UpdateMyProfile(ctx, api.UpdateProfileRequest{City: "Lisbon"}))
	assert.Contains(t, out.String(), "City: Lisbon")

	out.Reset()
	require.NoError(t, profiles.ViewProfile(ctx, f.other.ID))
	assert.Contains(t, out.String(), "Followers: 0")

	out.Reset()
	require.NoError(t, profiles.UpdateAccount(ctx, api.UpdateUserRequest{Username: "renamed"}))
	assert.Contains(t, out.String(), "Username: renamed")
	user, _ := f.core.CurrentUser()
	assert.Equal(t, "renamed", user.Username)

	out.Reset()
	require.NoError(t, profiles.ViewUser(ctx, f.other.ID))
	assert.Contains(t, out.String(), "Username: "+f.other.Username)
}

func TestHealthService(t *testing.T) {
	f := newCoreFixture(t, manualPoll)
	out := captureOutput(t, "text")

	require.NoError(t, NewHealthService(f.core).Check(context.Background()))
	assert.Contains(t, out.String(), "is ok")
	assert.Contains(t, out.String(), "Version: 1.0.0")
}
