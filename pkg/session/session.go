// Package session owns the bearer credential and the identity it belongs
// to. It is the only writer of the credential holder the API client reads.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/connectsphere/cli/pkg/api"
	"github.com/connectsphere/cli/pkg/client"
	"github.com/connectsphere/cli/pkg/credentials"
	"github.com/connectsphere/cli/pkg/logger"
)

// ErrSuperseded is returned when a logout or a newer login happened while
// an identity lookup was in flight. The lookup's result was discarded.
var ErrSuperseded = errors.New("session changed during identity lookup")

// Event is a session transition delivered to OnChange hooks.
type Event int

const (
	// EventAcquired fires once a token is held and its identity is loaded.
	EventAcquired Event = iota + 1
	// EventCleared fires when the credential is dropped.
	EventCleared
)

func (e Event) String() string {
	switch e {
	case EventAcquired:
		return "acquired"
	case EventCleared:
		return "cleared"
	}
	return "unknown"
}

// Persister keeps the credential across process runs.
type Persister interface {
	Load() (*credentials.Credentials, error)
	Save(creds *credentials.Credentials) error
	Delete() error
}

// Option configures a Store
type Option func(*Store)

// WithPersister saves the credential on login and deletes it on logout.
func WithPersister(p Persister) Option {
	return func(s *Store) {
		s.persist = p
	}
}

// Store is the session. Zero or one identity is loaded at a time.
type Store struct {
	api     *api.API
	tokens  *credentials.Holder
	persist Persister

	// transitionMu orders state changes with the events announcing them,
	// so hooks never see a transition after a newer one. It is not held
	// across network calls.
	transitionMu sync.Mutex

	mu         sync.RWMutex
	user       *api.User
	generation uint64

	listenersMu sync.RWMutex
	listeners   map[uint64]func(Event)
	nextID      uint64
}

// New creates an unauthenticated store writing to tokens
func New(a *api.API, tokens *credentials.Holder, opts ...Option) *Store {
	s := &Store{
		api:       a,
		tokens:    tokens,
		listeners: make(map[uint64]func(Event)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login exchanges email and password for a token and loads the identity.
// If the exchange fails the previous session is left as it was.
func (s *Store) Login(ctx context.Context, email, password string) error {
	token, err := s.api.Login(ctx, email, password)
	if err != nil {
		logger.Debug("Login rejected", "email", email, "error", err)
		return err
	}
	return s.acquire(ctx, token, true)
}

// Signup registers an account, then behaves like Login.
func (s *Store) Signup(ctx context.Context, req api.SignupRequest) error {
	if err := api.ValidateSignup(req); err != nil {
		return err
	}
	token, err := s.api.Signup(ctx, req)
	if err != nil {
		logger.Debug("Signup rejected", "email", req.Email, "error", err)
		return err
	}
	return s.acquire(ctx, token, true)
}

// Restore loads a persisted credential, if any, and validates it with an
// identity lookup. A credential the server no longer accepts is dropped.
func (s *Store) Restore(ctx context.Context) error {
	if s.persist == nil {
		return nil
	}
	if _, ok := s.tokens.Token(); ok {
		return nil
	}

	creds, err := s.persist.Load()
	if err != nil {
		return fmt.Errorf("failed to load credentials: %w", err)
	}
	if !creds.IsValid() {
		return nil
	}

	logger.Debug("Restoring session", "username", creds.Username)
	return s.acquire(ctx, &api.Token{
		AccessToken:  creds.AccessToken,
		RefreshToken: creds.RefreshToken,
		TokenType:    creds.TokenType,
	}, false)
}

// Logout drops the credential and identity. It never fails and may be
// called any number of times.
func (s *Store) Logout() {
	s.transitionMu.Lock()
	defer s.transitionMu.Unlock()
	s.logoutLocked()
}

func (s *Store) logoutLocked() {
	s.mu.Lock()
	s.generation++
	hadUser := s.user != nil
	s.user = nil
	hadToken := s.tokens.Clear()
	s.mu.Unlock()

	if s.persist != nil {
		if err := s.persist.Delete(); err != nil {
			logger.Warn("Failed to delete saved credentials", "error", err)
		}
	}

	if hadUser || hadToken {
		logger.Debug("Session cleared")
		s.emit(EventCleared)
	}
}

// RefreshUser reloads the identity. A failed lookup ends the session.
func (s *Store) RefreshUser(ctx context.Context) error {
	if _, ok := s.tokens.Token(); !ok {
		return client.ErrNotAuthenticated
	}

	s.mu.RLock()
	gen := s.generation
	s.mu.RUnlock()

	user, err := s.api.GetCurrentUser(ctx)

	s.transitionMu.Lock()
	defer s.transitionMu.Unlock()

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		return ErrSuperseded
	}
	if err == nil {
		s.user = user
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	logger.Warn("Identity lookup failed, logging out", "error", err)
	s.logoutLocked()
	return &client.SessionInvalidError{Err: err}
}

// IsAuthenticated reports whether a token is held and its identity loaded.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.tokens.Token()
	return ok && s.user != nil
}

// CurrentUser returns the loaded identity
func (s *Store) CurrentUser() (api.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return api.User{}, false
	}
	return *s.user, true
}

// Token returns the held credential
func (s *Store) Token() (string, bool) {
	return s.tokens.Token()
}

// OnChange registers a hook run synchronously on every transition. Hooks
// must not log in or out themselves. The returned function removes it.
func (s *Store) OnChange(fn func(Event)) (unsubscribe func()) {
	s.listenersMu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.listenersMu.Unlock()

	return func() {
		s.listenersMu.Lock()
		defer s.listenersMu.Unlock()
		delete(s.listeners, id)
	}
}

// acquire installs token and performs the one identity lookup that
// follows every absent-to-present transition.
func (s *Store) acquire(ctx context.Context, token *api.Token, save bool) error {
	s.transitionMu.Lock()
	if _, ok := s.tokens.Token(); ok {
		s.logoutLocked()
	}
	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.user = nil
	s.tokens.Set(token.AccessToken)
	s.mu.Unlock()
	s.transitionMu.Unlock()

	user, err := s.api.GetCurrentUser(ctx)

	s.transitionMu.Lock()
	defer s.transitionMu.Unlock()

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		logger.Debug("Discarding stale identity lookup", "generation", gen)
		return ErrSuperseded
	}
	if err != nil {
		s.generation++
		s.tokens.Clear()
		s.mu.Unlock()

		logger.Warn("Identity lookup failed, dropping token", "error", err)
		if s.persist != nil {
			if delErr := s.persist.Delete(); delErr != nil {
				logger.Warn("Failed to delete saved credentials", "error", delErr)
			}
		}
		return &client.SessionInvalidError{Err: err}
	}
	s.user = user
	s.mu.Unlock()

	logger.Info("Session acquired", "username", user.Username)
	if save && s.persist != nil {
		creds := &credentials.Credentials{
			AccessToken:  token.AccessToken,
			RefreshToken: token.RefreshToken,
			TokenType:    token.TokenType,
			UserID:       user.ID,
			Username:     user.Username,
			Email:        user.Email,
			SavedAt:      time.Now(),
		}
		if err := s.persist.Save(creds); err != nil {
			logger.Warn("Failed to save credentials", "error", err)
		}
	}

	s.emit(EventAcquired)
	return nil
}

func (s *Store) emit(event Event) {
	s.listenersMu.RLock()
	callbacks := make([]func(Event), 0, len(s.listeners))
	for _, fn := range s.listeners {
		callbacks = append(callbacks, fn)
	}
	s.listenersMu.RUnlock()

	for _, fn := range callbacks {
		fn(event)
	}
}
