// Package poller keeps the unread notification count fresh on a fixed
// interval while a session is active.
package poller

import (
	"context"
	"sync"
	"time"

	"github.com/connectsphere/cli/pkg/logger"
)

// DefaultInterval is used when New is given a non-positive interval.
const DefaultInterval = 30 * time.Second

// FetchFunc returns the server's current unread count.
type FetchFunc func(ctx context.Context) (int, error)

// Ticker is the part of *time.Ticker the poller needs.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFactory creates the poller's timer.
type TickerFactory func(d time.Duration) Ticker

type realTicker struct {
	*time.Ticker
}

func (t realTicker) C() <-chan time.Time {
	return t.Ticker.C
}

func newRealTicker(d time.Duration) Ticker {
	return realTicker{time.NewTicker(d)}
}

// Option configures a Poller
type Option func(*Poller)

// WithTicker replaces the timer source, mostly for tests.
func WithTicker(f TickerFactory) Option {
	return func(p *Poller) {
		p.newTicker = f
	}
}

// Poller runs at most one polling loop at a time.
type Poller struct {
	fetch     FetchFunc
	interval  time.Duration
	newTicker TickerFactory

	// mu serialises Start and Stop and guards the running loop.
	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}

	// countMu guards the count and the issuance numbers that order
	// overlapping polls.
	countMu sync.RWMutex
	count   int
	issued  uint64
	applied uint64

	listenersMu sync.RWMutex
	listeners   map[uint64]listener
	nextID      uint64
}

type listener struct {
	fn        func(int)
	everyPoll bool
}

// New creates a stopped poller
func New(fetch FetchFunc, interval time.Duration, opts ...Option) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	p := &Poller{
		fetch:     fetch,
		interval:  interval,
		newTicker: newRealTicker,
		listeners: make(map[uint64]listener),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Interval returns the polling interval
func (p *Poller) Interval() time.Duration {
	return p.interval
}

// Start fetches immediately and then once per interval until Stop is
// called or ctx ends. It reports false when a loop was already running.
func (p *Poller) Start(ctx context.Context) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.runningLocked() {
		return false
	}
	if p.cancel != nil {
		// the previous loop ended with its context
		p.cancel()
	}

	loopCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	ticker := p.newTicker(p.interval)
	p.cancel, p.done = cancel, done

	logger.Debug("Starting unread poller", "interval", p.interval)
	go p.run(loopCtx, ticker, done)
	return true
}

// Stop ends the loop and waits for it to exit, so no fetch is issued
// after it returns. Stopping a stopped poller is a no-op. Listeners must
// not call Stop.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel == nil {
		return
	}
	p.cancel()
	<-p.done
	p.cancel, p.done = nil, nil
	logger.Debug("Stopped unread poller")
}

// Running reports whether a loop is active
func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.runningLocked()
}

func (p *Poller) runningLocked() bool {
	if p.done == nil {
		return false
	}
	select {
	case <-p.done:
		return false
	default:
		return true
	}
}

// Poll fetches once, outside the timer. On success the count is updated
// and listeners are notified. When polls overlap, only results newer than
// the last applied one are kept; a superseded poll returns the current
// count.
func (p *Poller) Poll(ctx context.Context) (int, error) {
	p.countMu.Lock()
	p.issued++
	seq := p.issued
	p.countMu.Unlock()

	count, err := p.fetch(ctx)
	if err != nil {
		return p.Count(), err
	}

	p.countMu.Lock()
	if seq <= p.applied {
		current := p.count
		p.countMu.Unlock()
		logger.Debug("Discarding superseded unread count", "seq", seq, "count", count)
		return current, nil
	}
	p.applied = seq
	changed := p.count != count
	p.count = count
	p.countMu.Unlock()

	p.notify(count, changed, true)
	return count, nil
}

// Count returns the last successfully fetched count
func (p *Poller) Count() int {
	p.countMu.RLock()
	defer p.countMu.RUnlock()
	return p.count
}

// Reset zeroes the count, e.g. when the session ends. Polls still in
// flight are discarded.
func (p *Poller) Reset() {
	p.countMu.Lock()
	p.applied = p.issued
	changed := p.count != 0
	p.count = 0
	p.countMu.Unlock()

	p.notify(0, changed, false)
}

// Subscribe registers fn to receive every new count and returns a
// function that removes it. fn is not called when a poll returns the
// count already held.
func (p *Poller) Subscribe(fn func(int)) (unsubscribe func()) {
	return p.addListener(listener{fn: fn})
}

// OnPoll registers fn to run after every applied poll, changed or not.
func (p *Poller) OnPoll(fn func(int)) (unsubscribe func()) {
	return p.addListener(listener{fn: fn, everyPoll: true})
}

func (p *Poller) addListener(l listener) func() {
	p.listenersMu.Lock()
	id := p.nextID
	p.nextID++
	p.listeners[id] = l
	p.listenersMu.Unlock()

	return func() {
		p.listenersMu.Lock()
		defer p.listenersMu.Unlock()
		delete(p.listeners, id)
	}
}

func (p *Poller) run(ctx context.Context, ticker Ticker, done chan struct{}) {
	defer close(done)
	defer ticker.Stop()

	p.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
			p.tick(ctx)
		}
	}
}

func (p *Poller) tick(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if _, err := p.Poll(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		logger.Warn("Failed to fetch unread count", "error", err)
	}
}

func (p *Poller) notify(count int, changed, polled bool) {
	p.listenersMu.RLock()
	callbacks := make([]func(int), 0, len(p.listeners))
	for _, l := range p.listeners {
		if changed || (polled && l.everyPoll) {
			callbacks = append(callbacks, l.fn)
		}
	}
	p.listenersMu.RUnlock()

	for _, fn := range callbacks {
		fn(count)
	}
}
