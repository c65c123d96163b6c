package api_test

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"testing"

	"github.com/connectsphere/cli/internal/apitest"
	"github.com/connectsphere/cli/pkg/api"
	"github.com/connectsphere/cli/pkg/client"
	"github.com/connectsphere/cli/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const password = "correct-horse-battery"

type fixture struct {
	srv    *apitest.Server
	api    *api.API
	tokens *credentials.Holder
	me     api.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	srv := apitest.New(t)
	tokens := credentials.NewHolder()
	c := client.New(client.Options{BaseURL: srv.URL}, tokens)
	me := srv.AddFakeUser(password)
	tokens.Set(srv.TokenFor(me.ID))
	return &fixture{srv: srv, api: api.New(c), tokens: tokens, me: me}
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	f.tokens.Clear()
	ctx := context.Background()

	token, err := f.api.Login(ctx, f.me.Email, password)
	require.NoError(t, err)
	assert.NotEmpty(t, token.AccessToken)
	assert.Equal(t, "bearer", token.TokenType)

	_, err = f.api.Login(ctx, f.me.Email, "wrong-password")
	var authErr *client.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "Incorrect email or password", authErr.Reason)
	assert.Equal(t, http.StatusUnauthorized, client.StatusOf(err))
}

func TestSignup(t *testing.T) {
	f := newFixture(t)
	f.tokens.Clear()
	ctx := context.Background()

	token, err := f.api.Signup(ctx, api.SignupRequest{
		Email:    "new@example.com",
		Password: password,
		Username: "newcomer",
		FullName: "New Comer",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token.AccessToken)

	_, err = f.api.Signup(ctx, api.SignupRequest{Email: "new@example.com", Password: password, Username: "other"})
	var authErr *client.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "Email already registered", authErr.Reason)
}

func TestLogin_ServerErrorIsNotAuthError(t *testing.T) {
	f := newFixture(t)
	f.srv.SetHook(func(w http.ResponseWriter, r *http.Request) bool {
		w.WriteHeader(http.StatusInternalServerError)
		return true
	})

	_, err := f.api.Login(context.Background(), f.me.Email, password)
	var authErr *client.AuthError
	assert.False(t, errors.As(err, &authErr))
	assert.True(t, client.IsServerError(err))
}

func TestCurrentUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.api.GetCurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, f.me.ID, user.ID)
	assert.Equal(t, f.me.Username, user.Username)

	updated, err := f.api.UpdateCurrentUser(ctx, api.UpdateUserRequest{Username: "renamed"})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Username)

	other := f.srv.AddFakeUser(password)
	got, err := f.api.GetUser(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, other.Email, got.Email)

	_, err = f.api.GetUser(ctx, 9999)
	assert.True(t, client.IsNotFound(err))
}

func TestAuthenticatedCallWithoutToken(t *testing.T) {
	f := newFixture(t)
	f.tokens.Clear()
	before := f.srv.TotalCalls()

	_, err := f.api.GetFeed(context.Background(), api.DefaultPage)
	assert.ErrorIs(t, err, client.ErrNotAuthenticated)
	assert.Equal(t, before, f.srv.TotalCalls())
}

func TestPosts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	post, err := f.api.CreatePost(ctx, "  hello world  ", "")
	require.NoError(t, err)
	assert.Equal(t, "hello world", post.Content)
	assert.Equal(t, f.me.ID, post.Author.ID)
	assert.Equal(t, 1, f.srv.Calls("POST /posts"))

	got, err := f.api.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, post.ID, got.ID)
	require.NotNil(t, got.Sentiment)

	edited, err := f.api.UpdatePost(ctx, post.ID, "edited", "https://cdn.example.com/a.png")
	require.NoError(t, err)
	assert.Equal(t, "edited", edited.Content)
	assert.Equal(t, "https://cdn.example.com/a.png", edited.MediaURL)
	assert.NotNil(t, edited.UpdatedAt)

	mine, err := f.api.GetPostsByUser(ctx, f.me.ID, api.DefaultPage)
	require.NoError(t, err)
	require.Len(t, mine.Posts, 1)
	assert.Equal(t, post.ID, mine.Posts[0].ID)
}

func TestCreatePost_RejectsInvalidContentWithoutCall(t *testing.T) {
	f := newFixture(t)
	before := f.srv.TotalCalls()

	_, err := f.api.CreatePost(context.Background(), "   ", "")
	var validationErr *client.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "content", validationErr.Field)
	assert.Equal(t, before, f.srv.TotalCalls())
}

func TestFeedAndTrending(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seeded := f.srv.SeedPosts(f.me.ID, 5)

	feed, err := f.api.GetFeed(ctx, api.Page{Page: 1, PageSize: 3})
	require.NoError(t, err)
	require.Len(t, feed.Posts, 3)
	assert.Equal(t, 5, feed.Total)
	assert.True(t, feed.HasMore)
	assert.Equal(t, seeded[4].ID, feed.Posts[0].ID, "feed is newest first")

	_, err = f.api.ToggleReaction(ctx, seeded[0].ID, api.ReactionLove)
	require.NoError(t, err)

	trending, err := f.api.GetTrending(ctx, api.DefaultPage)
	require.NoError(t, err)
	require.NotEmpty(t, trending.Posts)
	assert.Equal(t, seeded[0].ID, trending.Posts[0].ID)
	assert.True(t, trending.Posts[0].IsLiked)
	assert.Equal(t, api.ReactionLove, trending.Posts[0].UserReaction)
}

func TestToggleReaction(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	post := f.srv.SeedPosts(f.me.ID, 1)[0]

	tests := []struct {
		name         string
		reaction     string
		wantTotal    int
		wantReaction *string
	}{
		{"add default like", "", 1, strPtr(api.ReactionLike)},
		{"switch type", api.ReactionWow, 1, strPtr(api.ReactionWow)},
		{"same type removes", api.ReactionWow, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary, err := f.api.ToggleReaction(ctx, post.ID, tt.reaction)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, summary.Total)
			assert.Equal(t, tt.wantReaction, summary.UserReaction)
		})
	}

	_, err := f.api.ToggleReaction(ctx, post.ID, "meh")
	var validationErr *client.ValidationError
	assert.ErrorAs(t, err, &validationErr)

	_, err = f.api.ToggleReaction(ctx, 424242, api.ReactionLike)
	assert.True(t, client.IsNotFound(err))
}

func TestComments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	post := f.srv.SeedPosts(f.me.ID, 1)[0]

	comment, err := f.api.CreateComment(ctx, post.ID, "first!", nil)
	require.NoError(t, err)
	assert.Equal(t, post.ID, comment.PostID)

	reply, err := f.api.CreateComment(ctx, post.ID, "a reply", &comment.ID)
	require.NoError(t, err)
	require.NotNil(t, reply.ParentID)
	assert.Equal(t, comment.ID, *reply.ParentID)

	comments, err := f.api.ListComments(ctx, post.ID)
	require.NoError(t, err)
	assert.Len(t, comments, 2)

	require.NoError(t, f.api.DeleteComment(ctx, comment.ID))
	comments, err = f.api.ListComments(ctx, post.ID)
	require.NoError(t, err)
	assert.Len(t, comments, 1)

	err = f.api.DeleteComment(ctx, comment.ID)
	assert.True(t, client.IsNotFound(err))
}

func TestNotifications(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	first := f.srv.Notify(f.me.ID, "system", "welcome")
	f.srv.Notify(f.me.ID, "system", "second")

	list, err := f.api.ListNotifications(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Content)

	count, err := f.api.GetUnreadCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, f.api.MarkNotificationRead(ctx, first.ID))
	count, err = f.api.GetUnreadCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, 1, f.srv.Calls("PATCH /notifications/"+strconv.FormatInt(first.ID, 10)+"/read"))
}

func TestProfilesAndFollows(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	other := f.srv.AddFakeUser(password)

	profile, err := f.api.UpdateMyProfile(ctx, api.UpdateProfileRequest{City: "Lisbon", Handle: "me_handle"})
	require.NoError(t, err)
	assert.Equal(t, "Lisbon", profile.City)

	mine, err := f.api.GetMyProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "me_handle", mine.Handle)

	follow, err := f.api.Follow(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, f.me.ID, follow.FollowerID)

	following, err := f.api.GetFollowStatus(ctx, other.ID)
	require.NoError(t, err)
	assert.True(t, following)

	followers, err := f.api.GetFollowers(ctx, other.ID, api.DefaultPage)
	require.NoError(t, err)
	require.Len(t, followers.Users, 1)
	assert.Equal(t, f.me.ID, followers.Users[0].ID)

	theirs, err := f.api.GetProfile(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, theirs.FollowersCount)

	require.NoError(t, f.api.Unfollow(ctx, other.ID))
	followed, err := f.api.GetFollowing(ctx, f.me.ID, api.DefaultPage)
	require.NoError(t, err)
	assert.Empty(t, followed.Users)
}

func TestHealth_IsPublic(t *testing.T) {
	f := newFixture(t)
	f.tokens.Clear()

	health, err := f.api.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", health.Status)
}

func strPtr(s string) *string { return &s }
