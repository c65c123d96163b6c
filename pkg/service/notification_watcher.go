package service

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/connectsphere/cli/pkg/api"
	"github.com/connectsphere/cli/pkg/client"
	"github.com/connectsphere/cli/pkg/formatter"
	"github.com/connectsphere/cli/pkg/logger"
	"github.com/connectsphere/cli/pkg/output"
)

// NotificationWatcherService follows the unread count in the foreground
// and prints notifications as they arrive.
type NotificationWatcherService struct {
	core *Core

	mu        sync.Mutex
	seen      map[int64]bool
	lastCount int
}

// NewNotificationWatcherService creates a new notification watcher service
func NewNotificationWatcherService(core *Core) *NotificationWatcherService {
	return &NotificationWatcherService{core: core, seen: make(map[int64]bool), lastCount: -1}
}

// WatchNotifications runs the unread poller until ctx ends or the process
// is interrupted.
func (nw *NotificationWatcherService) WatchNotifications(ctx context.Context) error {
	user, ok := nw.core.CurrentUser()
	if !ok {
		return client.ErrNotAuthenticated
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	view, err := nw.core.RefreshNotifications(ctx)
	if err != nil {
		logger.Warn("Initial notification load failed", "error", err)
	}
	nw.markSeen(view.Items)

	if !output.IsJSON() {
		output.Printf("\n")
		formatter.PrintInfo("Watching notifications every %s", nw.core.Unread().Interval())
		output.Printf("Connected as: @%s\n", user.Username)
		output.Printf("Press Ctrl+C to stop\n")
		output.Printf("%s\n\n", strings.Repeat("─", 60))
	}

	// Every poll, not only count changes: a read and an arrival between
	// two ticks leave the count where it was.
	unsubscribe := nw.core.Unread().OnPoll(func(count int) {
		nw.handleCount(ctx, count)
	})
	defer unsubscribe()

	nw.core.Unread().Start(ctx)
	<-ctx.Done()
	nw.core.Unread().Stop()

	if !output.IsJSON() {
		output.Printf("\n")
		formatter.PrintInfo("Stopped watching")
	}
	return nil
}

func (nw *NotificationWatcherService) handleCount(ctx context.Context, count int) {
	nw.mu.Lock()
	changed := count != nw.lastCount
	nw.lastCount = count
	nw.mu.Unlock()

	if changed {
		if output.IsJSON() {
			_ = output.Print("", map[string]int{"unread_count": count})
		} else {
			formatter.PrintInfo("🔔 %d unread notification%s", count, pluralS(count))
		}
	}

	if count == 0 {
		return
	}

	view, err := nw.core.RefreshNotifications(ctx)
	if err != nil {
		if ctx.Err() == nil {
			logger.Warn("Failed to refresh notifications", "error", err)
		}
		return
	}

	for _, n := range nw.markSeen(view.Items) {
		if output.IsJSON() {
			_ = output.Print("notification", n)
			continue
		}
		output.Printf("%s", formatter.FormatNotification(n))
	}
}

// markSeen records items and returns the unread ones not seen before.
func (nw *NotificationWatcherService) markSeen(items []api.Notification) []api.Notification {
	nw.mu.Lock()
	defer nw.mu.Unlock()

	var fresh []api.Notification
	for _, n := range items {
		if nw.seen[n.ID] {
			continue
		}
		nw.seen[n.ID] = true
		if !n.IsRead {
			fresh = append(fresh, n)
		}
	}
	return fresh
}
