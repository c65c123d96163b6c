package cmd

import (
	"github.com/connectsphere/cli/pkg/service"
	"github.com/spf13/cobra"
)

var notificationsUnreadOnly bool

var notificationsCmd = &cobra.Command{
	Use:     "notifications",
	Aliases: []string{"notif"},
	Short:   "Notification commands",
}

var notificationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your notifications",
	RunE: func(cmd *cobra.Command, args []string) error {
		notifSvc := service.NewNotificationService(sessionCore(cmd.Context()))
		return notifSvc.ListNotifications(cmd.Context(), notificationsUnreadOnly)
	},
}

var notificationsReadCmd = &cobra.Command{
	Use:   "read <notification-id>",
	Short: "Mark a notification as read",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("notification", args[0])
		if err != nil {
			return err
		}
		notifSvc := service.NewNotificationService(sessionCore(cmd.Context()))
		return notifSvc.MarkRead(cmd.Context(), id)
	},
}

var notificationsCountCmd = &cobra.Command{
	Use:   "count",
	Short: "Show the unread notification count",
	RunE: func(cmd *cobra.Command, args []string) error {
		notifSvc := service.NewNotificationService(sessionCore(cmd.Context()))
		return notifSvc.ShowUnreadCount(cmd.Context())
	},
}

var notificationsWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch for new notifications",
	Long:  "Poll the unread count (poll.unread_interval) and print notifications as they arrive. Stop with Ctrl+C.",
	RunE: func(cmd *cobra.Command, args []string) error {
		watcher := service.NewNotificationWatcherService(sessionCore(cmd.Context()))
		return watcher.WatchNotifications(cmd.Context())
	},
}

func init() {
	notificationsListCmd.Flags().BoolVar(&notificationsUnreadOnly, "unread", false, "Only unread notifications")

	notificationsCmd.AddCommand(notificationsListCmd)
	notificationsCmd.AddCommand(notificationsReadCmd)
	notificationsCmd.AddCommand(notificationsCountCmd)
	notificationsCmd.AddCommand(notificationsWatchCmd)
}
