package session_test

import (
	"context"
	"net/http"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/connectsphere/cli/internal/apitest"
	"github.com/connectsphere/cli/pkg/api"
	"github.com/connectsphere/cli/pkg/client"
	"github.com/connectsphere/cli/pkg/credentials"
	"github.com/connectsphere/cli/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	srv    *apitest.Server
	api    *api.API
	tokens *credentials.Holder
	store  *session.Store

	mu     sync.Mutex
	events []session.Event
}

func newHarness(t *testing.T, opts ...session.Option) *harness {
	t.Helper()
	srv := apitest.New(t)
	tokens := credentials.NewHolder()
	a := api.New(client.New(client.Options{BaseURL: srv.URL}, tokens))
	h := &harness{srv: srv, api: a, tokens: tokens, store: session.New(a, tokens, opts...)}
	h.store.OnChange(func(e session.Event) {
		h.mu.Lock()
		defer h.mu.Unlock()
		h.events = append(h.events, e)
	})
	return h
}

func (h *harness) recorded() []session.Event {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]session.Event(nil), h.events...)
}

func TestLogin_LoadsIdentity(t *testing.T) {
	h := newHarness(t)
	u := h.srv.AddUser("a@x.com", "p", "alice", "Alice A")

	require.NoError(t, h.store.Login(context.Background(), "a@x.com", "p"))

	assert.True(t, h.store.IsAuthenticated())
	current, ok := h.store.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, u.ID, current.ID)
	assert.Equal(t, u.Username, current.Username)
	assert.Equal(t, u.Email, current.Email)
	assert.Equal(t, 1, h.srv.Calls("GET /users/me"), "exactly one identity lookup")
	assert.Equal(t, []session.Event{session.EventAcquired}, h.recorded())
}

func TestLogin_FailureLeavesStateUntouched(t *testing.T) {
	h := newHarness(t)
	h.srv.AddUser("a@x.com", "right-password", "alice", "")
	ctx := context.Background()
	require.NoError(t, h.store.Login(ctx, "a@x.com", "right-password"))
	tokenBefore, _ := h.store.Token()

	err := h.store.Login(ctx, "a@x.com", "wrong-password")
	var authErr *client.AuthError
	require.ErrorAs(t, err, &authErr)

	assert.True(t, h.store.IsAuthenticated())
	tokenAfter, _ := h.store.Token()
	assert.Equal(t, tokenBefore, tokenAfter)
	assert.Equal(t, []session.Event{session.EventAcquired}, h.recorded())
}

func TestLogin_FailedIdentityLookupForcesLogout(t *testing.T) {
	h := newHarness(t)
	h.srv.AddUser("a@x.com", "password1", "alice", "")
	h.srv.SetHook(func(w http.ResponseWriter, r *http.Request) bool {
		if r.URL.Path == "/users/me" {
			w.WriteHeader(http.StatusInternalServerError)
			return true
		}
		return false
	})

	err := h.store.Login(context.Background(), "a@x.com", "password1")
	var invalid *client.SessionInvalidError
	require.ErrorAs(t, err, &invalid)
	assert.True(t, client.IsServerError(err))

	assert.False(t, h.store.IsAuthenticated())
	_, hasToken := h.store.Token()
	assert.False(t, hasToken)
	assert.Empty(t, h.recorded())
}

func TestLogout(t *testing.T) {
	h := newHarness(t)
	h.srv.AddUser("a@x.com", "password1", "alice", "")
	ctx := context.Background()
	require.NoError(t, h.store.Login(ctx, "a@x.com", "password1"))

	h.store.Logout()
	h.store.Logout()

	assert.False(t, h.store.IsAuthenticated())
	_, ok := h.store.CurrentUser()
	assert.False(t, ok)
	assert.Equal(t, []session.Event{session.EventAcquired, session.EventCleared}, h.recorded())

	before := h.srv.TotalCalls()
	_, err := h.api.GetFeed(ctx, api.DefaultPage)
	assert.ErrorIs(t, err, client.ErrNotAuthenticated)
	assert.Equal(t, before, h.srv.TotalCalls(), "no request after logout")
}

func TestLogin_StaleIdentityLookupIsDiscarded(t *testing.T) {
	h := newHarness(t)
	h.srv.AddUser("a@x.com", "password1", "alice", "")

	entered := make(chan struct{})
	release := make(chan struct{})
	h.srv.SetHook(func(w http.ResponseWriter, r *http.Request) bool {
		if r.URL.Path == "/users/me" {
			close(entered)
			<-release
		}
		return false
	})

	errc := make(chan error, 1)
	go func() { errc <- h.store.Login(context.Background(), "a@x.com", "password1") }()

	select {
	case <-entered:
	case <-time.After(2 * time.Second):
		t.Fatal("identity lookup never started")
	}
	h.store.Logout()
	close(release)

	assert.ErrorIs(t, <-errc, session.ErrSuperseded)
	assert.False(t, h.store.IsAuthenticated())
	_, ok := h.store.CurrentUser()
	assert.False(t, ok)
	assert.NotContains(t, h.recorded(), session.EventAcquired)
}

func TestLogin_WhileLoggedInReplacesSession(t *testing.T) {
	h := newHarness(t)
	h.srv.AddUser("a@x.com", "password1", "alice", "")
	bob := h.srv.AddUser("b@x.com", "password2", "bob", "")
	ctx := context.Background()

	require.NoError(t, h.store.Login(ctx, "a@x.com", "password1"))
	require.NoError(t, h.store.Login(ctx, "b@x.com", "password2"))

	current, _ := h.store.CurrentUser()
	assert.Equal(t, bob.ID, current.ID)
	assert.Equal(t, []session.Event{session.EventAcquired, session.EventCleared, session.EventAcquired}, h.recorded())
}

func TestSignup(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	err := h.store.Signup(ctx, api.SignupRequest{Email: "nope", Password: "password1", Username: "carol"})
	var validationErr *client.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, 0, h.srv.TotalCalls())

	require.NoError(t, h.store.Signup(ctx, api.SignupRequest{
		Email:    "carol@example.com",
		Password: "password1",
		Username: "carol",
		FullName: "Carol C",
	}))
	current, ok := h.store.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "carol", current.Username)
	assert.Equal(t, "Carol C", current.FullName)

	h.store.Logout()
	err = h.store.Signup(ctx, api.SignupRequest{Email: "carol@example.com", Password: "password1", Username: "carol2"})
	var authErr *client.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.False(t, h.store.IsAuthenticated())
}

func TestPersistence_SaveRestoreDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials")
	store := credentials.NewFileStore(path)
	h := newHarness(t, session.WithPersister(store))
	u := h.srv.AddUser("a@x.com", "password1", "alice", "")
	ctx := context.Background()

	require.NoError(t, h.store.Login(ctx, "a@x.com", "password1"))
	saved, err := store.Load()
	require.NoError(t, err)
	require.True(t, saved.IsValid())
	assert.Equal(t, u.ID, saved.UserID)
	assert.Equal(t, "alice", saved.Username)

	// A second process restores the session from disk.
	tokens := credentials.NewHolder()
	a := api.New(client.New(client.Options{BaseURL: h.srv.URL}, tokens))
	restored := session.New(a, tokens, session.WithPersister(store))
	require.NoError(t, restored.Restore(ctx))
	assert.True(t, restored.IsAuthenticated())
	current, _ := restored.CurrentUser()
	assert.Equal(t, u.ID, current.ID)

	restored.Logout()
	gone, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestRestore_GarbageTokenSelfHeals(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials")
	store := credentials.NewFileStore(path)
	require.NoError(t, store.Save(&credentials.Credentials{AccessToken: "garbage", Username: "ghost"}))
	h := newHarness(t, session.WithPersister(store))

	err := h.store.Restore(context.Background())
	var invalid *client.SessionInvalidError
	require.ErrorAs(t, err, &invalid)
	assert.True(t, client.IsUnauthorized(err))
	assert.False(t, h.store.IsAuthenticated())

	left, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, left, "rejected credential is deleted")
}

func TestRestore_NothingSaved(t *testing.T) {
	store := credentials.NewFileStore(filepath.Join(t.TempDir(), "credentials"))
	h := newHarness(t, session.WithPersister(store))

	require.NoError(t, h.store.Restore(context.Background()))
	assert.False(t, h.store.IsAuthenticated())
	assert.Equal(t, 0, h.srv.TotalCalls())
}

func TestRefreshUser(t *testing.T) {
	h := newHarness(t)
	h.srv.AddUser("a@x.com", "password1", "alice", "")
	ctx := context.Background()

	assert.ErrorIs(t, h.store.RefreshUser(ctx), client.ErrNotAuthenticated)

	require.NoError(t, h.store.Login(ctx, "a@x.com", "password1"))
	_, err := h.api.UpdateCurrentUser(ctx, api.UpdateUserRequest{Username: "alice2"})
	require.NoError(t, err)
	require.NoError(t, h.store.RefreshUser(ctx))
	current, _ := h.store.CurrentUser()
	assert.Equal(t, "alice2", current.Username)

	h.srv.SetHook(func(w http.ResponseWriter, r *http.Request) bool {
		w.WriteHeader(http.StatusUnauthorized)
		return true
	})
	err = h.store.RefreshUser(ctx)
	var invalid *client.SessionInvalidError
	require.ErrorAs(t, err, &invalid)
	assert.False(t, h.store.IsAuthenticated())
	assert.Equal(t, session.EventCleared, h.recorded()[len(h.recorded())-1])
}

func TestEventString(t *testing.T) {
	assert.Equal(t, "acquired", session.EventAcquired.String())
	assert.Equal(t, "cleared", session.EventCleared.String())
	assert.Equal(t, "unknown", session.Event(0).String())
}

func TestTransitionsReachHooksInOrder(t *testing.T) {
	h := newHarness(t)
	h.srv.AddUser("a@x.com", "password1", "alice", "")
	ctx := context.Background()
	require.NoError(t, h.store.Login(ctx, "a@x.com", "password1"))

	var (
		mu        sync.Mutex
		order     []session.Event
		once      sync.Once
		loginDone = make(chan error, 1)
	)
	h.store.OnChange(func(e session.Event) {
		if e == session.EventCleared {
			once.Do(func() {
				go func() { loginDone <- h.store.Login(ctx, "a@x.com", "password1") }()
			})
			// a slow hook gives the concurrent login time to finish
			time.Sleep(100 * time.Millisecond)
		}
		mu.Lock()
		defer mu.Unlock()
		order = append(order, e)
	})

	h.store.Logout()
	require.NoError(t, <-loginDone)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []session.Event{session.EventCleared, session.EventAcquired}, order)
	assert.True(t, h.store.IsAuthenticated())
}
