package credentials

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	json "github.com/json-iterator/go"
)

// Credentials is the persisted form of a session.
type Credentials struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	TokenType    string    `json:"token_type,omitempty"`
	UserID       int64     `json:"user_id,omitempty"`
	Username     string    `json:"username,omitempty"`
	Email        string    `json:"email,omitempty"`
	SavedAt      time.Time `json:"saved_at"`
}

// IsValid checks if credentials carry a token
func (c *Credentials) IsValid() bool {
	return c != nil && c.AccessToken != ""
}

// Holder is the in-memory bearer credential. The session store is its
// only writer; the API client reads it on every request.
type Holder struct {
	mu    sync.RWMutex
	token string
}

// NewHolder creates an empty holder
func NewHolder() *Holder {
	return &Holder{}
}

// Token returns the current token and whether one is present.
func (h *Holder) Token() (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token, h.token != ""
}

// Set stores token and reports whether the holder was empty before.
func (h *Holder) Set(token string) (wasEmpty bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	wasEmpty = h.token == ""
	h.token = token
	return wasEmpty
}

// Clear drops the token and reports whether one was present.
func (h *Holder) Clear() (hadToken bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	hadToken = h.token != ""
	h.token = ""
	return hadToken
}

// FileStore persists credentials as JSON with owner-only permissions.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path
func (s *FileStore) Path() string {
	return s.path
}

// Load loads credentials from disk. A missing file yields (nil, nil).
func (s *FileStore) Load() (*Credentials, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, err
	}

	return &creds, nil
}

// Save saves credentials to disk
func (s *FileStore) Save(creds *Credentials) error {
	if creds.SavedAt.IsZero() {
		creds.SavedAt = time.Now()
	}

	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0600)
}

// Delete removes the credentials file. Deleting a missing file is not an error.
func (s *FileStore) Delete() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
