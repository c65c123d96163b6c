package cmd

import (
	"github.com/connectsphere/cli/pkg/service"
	"github.com/spf13/cobra"
)

var followPages pageFlags

var followCmd = &cobra.Command{
	Use:   "follow",
	Short: "Follow commands",
}

var followAddCmd = &cobra.Command{
	Use:   "add <user-id>",
	Short: "Follow a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("user", args[0])
		if err != nil {
			return err
		}
		return service.NewFollowService(sessionCore(cmd.Context())).Follow(cmd.Context(), id)
	},
}

var followRemoveCmd = &cobra.Command{
	Use:   "remove <user-id>",
	Short: "Unfollow a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("user", args[0])
		if err != nil {
			return err
		}
		return service.NewFollowService(sessionCore(cmd.Context())).Unfollow(cmd.Context(), id)
	},
}

var followersCmd = &cobra.Command{
	Use:   "followers [user-id]",
	Short: "List followers (yours by default)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := optionalUserID(args)
		if err != nil {
			return err
		}
		return service.NewFollowService(sessionCore(cmd.Context())).ListFollowers(cmd.Context(), id, followPages.value())
	},
}

var followingCmd = &cobra.Command{
	Use:   "following [user-id]",
	Short: "List followed users (yours by default)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := optionalUserID(args)
		if err != nil {
			return err
		}
		return service.NewFollowService(sessionCore(cmd.Context())).ListFollowing(cmd.Context(), id, followPages.value())
	},
}

var followStatusCmd = &cobra.Command{
	Use:   "status <user-id>",
	Short: "Check whether you follow a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("user", args[0])
		if err != nil {
			return err
		}
		return service.NewFollowService(sessionCore(cmd.Context())).ShowStatus(cmd.Context(), id)
	},
}

func optionalUserID(args []string) (int64, error) {
	if len(args) == 0 {
		return 0, nil
	}
	return parseID("user", args[0])
}

func init() {
	followPages.register(followersCmd)
	followPages.register(followingCmd)

	followCmd.AddCommand(followAddCmd)
	followCmd.AddCommand(followRemoveCmd)
	followCmd.AddCommand(followersCmd)
	followCmd.AddCommand(followingCmd)
	followCmd.AddCommand(followStatusCmd)
}
