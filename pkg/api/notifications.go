package api

import (
	"context"
	"net/http"

	"github.com/connectsphere/cli/pkg/client"
	"github.com/connectsphere/cli/pkg/logger"
)

// ListNotifications retrieves the caller's notifications
func (a *API) ListNotifications(ctx context.Context) ([]Notification, error) {
	logger.Debug("Fetching notifications")

	var list NotificationList
	if err := a.c.Do(ctx, client.Request{Method: http.MethodGet, Path: "/notifications"}, &list); err != nil {
		return nil, err
	}
	return list.Notifications, nil
}

// MarkNotificationRead marks a single notification as read
func (a *API) MarkNotificationRead(ctx context.Context, notificationID int64) error {
	logger.Debug("Marking notification as read", "notification_id", notificationID)

	return a.c.Do(ctx, client.Request{Method: http.MethodPatch, Path: idPath("/notifications/%d/read", notificationID)}, nil)
}

// GetUnreadCount retrieves the number of unread notifications
func (a *API) GetUnreadCount(ctx context.Context) (int, error) {
	logger.Debug("Fetching unread notification count")

	var count UnreadCount
	if err := a.c.Do(ctx, client.Request{Method: http.MethodGet, Path: "/notifications/unread-count"}, &count); err != nil {
		return 0, err
	}
	return count.Value(), nil
}
