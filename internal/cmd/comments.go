package cmd

import (
	"github.com/connectsphere/cli/pkg/service"
	"github.com/spf13/cobra"
)

var (
	commentContent string
	commentReplyTo int64
	commentYes     bool
)

var commentCmd = &cobra.Command{
	Use:   "comment",
	Short: "Comment commands",
	Long:  "Add, list and delete comments on posts",
}

var commentAddCmd = &cobra.Command{
	Use:   "add <post-id>",
	Short: "Comment on a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("post", args[0])
		if err != nil {
			return err
		}
		var parentID *int64
		if commentReplyTo > 0 {
			parentID = &commentReplyTo
		}
		commentSvc := service.NewCommentService(sessionCore(cmd.Context()))
		return commentSvc.AddComment(cmd.Context(), id, commentContent, parentID)
	},
}

var commentListCmd = &cobra.Command{
	Use:   "list <post-id>",
	Short: "List the comments on a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("post", args[0])
		if err != nil {
			return err
		}
		commentSvc := service.NewCommentService(sessionCore(cmd.Context()))
		return commentSvc.ListComments(cmd.Context(), id)
	},
}

var commentDeleteCmd = &cobra.Command{
	Use:   "delete <comment-id>",
	Short: "Delete one of your comments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("comment", args[0])
		if err != nil {
			return err
		}
		commentSvc := service.NewCommentService(sessionCore(cmd.Context()))
		return commentSvc.DeleteComment(cmd.Context(), id, commentYes)
	},
}

func init() {
	commentAddCmd.Flags().StringVar(&commentContent, "content", "", "Comment text (prompted when omitted)")
	commentAddCmd.Flags().Int64Var(&commentReplyTo, "reply-to", 0, "Reply to this comment id")

	commentDeleteCmd.Flags().BoolVarP(&commentYes, "yes", "y", false, "Skip confirmation")

	commentCmd.AddCommand(commentAddCmd)
	commentCmd.AddCommand(commentListCmd)
	commentCmd.AddCommand(commentDeleteCmd)
}
