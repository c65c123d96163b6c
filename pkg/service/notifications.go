package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/connectsphere/cli/pkg/api"
	"github.com/connectsphere/cli/pkg/formatter"
	"github.com/connectsphere/cli/pkg/output"
)

// NotificationService provides notification operations
type NotificationService struct {
	core *Core
}

// NewNotificationService creates a new notification service
func NewNotificationService(core *Core) *NotificationService {
	return &NotificationService{core: core}
}

// ListNotifications displays the caller's notifications
func (ns *NotificationService) ListNotifications(ctx context.Context, unreadOnly bool) error {
	view, err := ns.core.RefreshNotifications(ctx)
	if err != nil && len(view.Items) == 0 {
		return fmt.Errorf("failed to fetch notifications: %w", err)
	}

	items := view.Items
	if unreadOnly {
		items = unread(items)
	}

	if output.IsJSON() {
		return output.Print("notifications", items)
	}
	if len(items) == 0 {
		output.Printf("No notifications.\n")
		return nil
	}

	if output.GetOutputFormat() == output.FormatTable {
		rows := make([][]string, 0, len(items))
		for _, n := range items {
			rows = append(rows, []string{
				strconv.FormatInt(n.ID, 10),
				n.Type,
				formatter.Truncate(n.Content, 50),
				strconv.FormatBool(n.IsRead),
			})
		}
		output.PrintTable([]string{"ID", "TYPE", "CONTENT", "READ"}, rows)
		return nil
	}

	for _, n := range items {
		output.Printf("%s", formatter.FormatNotification(n))
	}
	return nil
}

// MarkRead marks a notification as read and prints the new unread count
func (ns *NotificationService) MarkRead(ctx context.Context, notificationID int64) error {
	if err := ns.core.MarkNotificationRead(ctx, notificationID); err != nil {
		return err
	}

	count := ns.core.Unread().Count()
	if output.IsJSON() {
		return output.Print("", map[string]interface{}{"read": notificationID, "unread_count": count})
	}
	formatter.PrintSuccess("Notification #%d marked as read (%d unread)", notificationID, count)
	return nil
}

// ShowUnreadCount prints the unread notification count
func (ns *NotificationService) ShowUnreadCount(ctx context.Context) error {
	count, err := ns.core.GetUnreadCount(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch unread count: %w", err)
	}
	if output.IsJSON() {
		return output.Print("", map[string]int{"unread_count": count})
	}
	output.Printf("%d unread notification%s\n", count, pluralS(count))
	return nil
}

func unread(items []api.Notification) []api.Notification {
	out := make([]api.Notification, 0, len(items))
	for _, n := range items {
		if !n.IsRead {
			out = append(out, n)
		}
	}
	return out
}

func pluralS(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
