// Package cache holds the client's in-memory view of one server
// collection (feed, trending, notifications).
//
// A Cache is repopulated wholesale on every refresh. While a refresh is in
// flight the previous snapshot stays visible, a failed refresh keeps it,
// and when refreshes overlap only the most recently issued one may update
// the cache, whatever order the responses arrive in.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/connectsphere/cli/pkg/logger"
)

// FetchFunc loads the whole collection from the server.
type FetchFunc[T any] func(ctx context.Context) ([]T, error)

// MutationFunc is a write against the server whose effects the cache
// learns about through the refresh that follows it.
type MutationFunc func(ctx context.Context) error

// View is an immutable snapshot of a cache.
type View[T any] struct {
	Items     []T
	Loading   bool
	LastError error
	UpdatedAt time.Time
}

// Cache is safe for concurrent use. Its lock is never held across a fetch.
type Cache[T any] struct {
	name  string
	fetch FetchFunc[T]

	mu        sync.Mutex
	items     []T
	loading   bool
	lastErr   error
	updatedAt time.Time
	issued    uint64
	// published numbers every view handed to listeners, in state order.
	published uint64

	listenersMu sync.RWMutex
	listeners   map[uint64]func(View[T])
	nextID      uint64

	// deliverMu is held while listeners run so they see views in order.
	deliverMu sync.Mutex
	delivered uint64
}

// New creates an empty cache filled by fetch
func New[T any](name string, fetch FetchFunc[T]) *Cache[T] {
	return &Cache[T]{
		name:      name,
		fetch:     fetch,
		listeners: make(map[uint64]func(View[T])),
	}
}

// Name returns the cache's name as used in logs
func (c *Cache[T]) Name() string {
	return c.name
}

// Refresh fetches the collection and replaces the held items on success.
// On failure the previous items are kept and the error is recorded. A
// refresh that has been superseded by a newer one (or by Reset) leaves the
// cache untouched; its own error, if any, is still returned.
func (c *Cache[T]) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.issued++
	seq := c.issued
	c.loading = true
	view, version := c.publishLocked()
	c.mu.Unlock()
	c.emit(view, version)

	items, err := c.fetch(ctx)

	c.mu.Lock()
	if seq != c.issued {
		c.mu.Unlock()
		logger.Debug("Discarding superseded refresh", "cache", c.name, "seq", seq)
		return err
	}
	c.loading = false
	if err != nil {
		c.lastErr = err
	} else {
		c.items = items
		c.lastErr = nil
		c.updatedAt = time.Now()
	}
	view, version = c.publishLocked()
	c.mu.Unlock()

	if err != nil {
		logger.Warn("Refresh failed", "cache", c.name, "error", err)
	} else {
		logger.Debug("Refreshed", "cache", c.name, "items", len(view.Items))
	}
	c.emit(view, version)
	return err
}

// ApplyMutation runs mutate and then refreshes the cache whatever the
// outcome, so server-computed aggregates are never guessed locally. The
// mutation's error is returned; a failed follow-up refresh is recorded
// in the snapshot's LastError.
func (c *Cache[T]) ApplyMutation(ctx context.Context, mutate MutationFunc) error {
	mutErr := mutate(ctx)
	if mutErr != nil {
		logger.Debug("Mutation failed, refreshing anyway", "cache", c.name, "error", mutErr)
	}
	_ = c.Refresh(ctx)
	return mutErr
}

// Snapshot returns the current view
func (c *Cache[T]) Snapshot() View[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

// Reset empties the cache and invalidates every in-flight refresh.
func (c *Cache[T]) Reset() {
	c.mu.Lock()
	c.issued++
	c.items = nil
	c.loading = false
	c.lastErr = nil
	c.updatedAt = time.Time{}
	view, version := c.publishLocked()
	c.mu.Unlock()

	logger.Debug("Cache reset", "cache", c.name)
	c.emit(view, version)
}

// Subscribe registers fn to receive new snapshots in the order the state
// changed and returns a function that removes it. A view overtaken by a
// newer one before delivery is skipped. fn must not refresh or reset the
// cache itself.
func (c *Cache[T]) Subscribe(fn func(View[T])) (unsubscribe func()) {
	c.listenersMu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	c.listenersMu.Unlock()

	return func() {
		c.listenersMu.Lock()
		defer c.listenersMu.Unlock()
		delete(c.listeners, id)
	}
}

func (c *Cache[T]) viewLocked() View[T] {
	var items []T
	if len(c.items) > 0 {
		items = make([]T, len(c.items))
		copy(items, c.items)
	}
	return View[T]{
		Items:     items,
		Loading:   c.loading,
		LastError: c.lastErr,
		UpdatedAt: c.updatedAt,
	}
}

func (c *Cache[T]) publishLocked() (View[T], uint64) {
	c.published++
	return c.viewLocked(), c.published
}

func (c *Cache[T]) emit(view View[T], version uint64) {
	c.deliverMu.Lock()
	defer c.deliverMu.Unlock()
	if version <= c.delivered {
		return
	}
	c.delivered = version

	c.listenersMu.RLock()
	callbacks := make([]func(View[T]), 0, len(c.listeners))
	for _, fn := range c.listeners {
		callbacks = append(callbacks, fn)
	}
	c.listenersMu.RUnlock()

	for _, fn := range callbacks {
		fn(view)
	}
}
