package cmd

import (
	"github.com/connectsphere/cli/pkg/api"
	"github.com/connectsphere/cli/pkg/service"
	"github.com/spf13/cobra"
)

var (
	postContent      string
	postMediaURL     string
	postWithComments bool
	postReaction     string
	postPages        pageFlags
)

var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Post management commands",
	Long:  "Create, view, edit and react to posts",
}

var postCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Publish a post",
	Long:  "Publish a post. Without --content the text is read from the terminal.",
	RunE: func(cmd *cobra.Command, args []string) error {
		postService := service.NewPostService(sessionCore(cmd.Context()))
		return postService.CreatePost(cmd.Context(), postContent, postMediaURL)
	},
}

var postShowCmd = &cobra.Command{
	Use:   "show <post-id>",
	Short: "View post details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("post", args[0])
		if err != nil {
			return err
		}
		postService := service.NewPostService(sessionCore(cmd.Context()))
		return postService.ShowPost(cmd.Context(), id, postWithComments)
	},
}

var postEditCmd = &cobra.Command{
	Use:   "edit <post-id>",
	Short: "Edit one of your posts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("post", args[0])
		if err != nil {
			return err
		}
		postService := service.NewPostService(sessionCore(cmd.Context()))
		return postService.EditPost(cmd.Context(), id, postContent, postMediaURL)
	},
}

var postReactCmd = &cobra.Command{
	Use:   "react <post-id>",
	Short: "Toggle your reaction on a post",
	Long: `Toggle your reaction on a post. Reacting again with the same type
removes it; a different type replaces it.

Types: like, love, haha, wow, sad, angry`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("post", args[0])
		if err != nil {
			return err
		}
		postService := service.NewPostService(sessionCore(cmd.Context()))
		return postService.React(cmd.Context(), id, postReaction)
	},
}

var postByUserCmd = &cobra.Command{
	Use:   "by-user <user-id>",
	Short: "List a user's posts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("user", args[0])
		if err != nil {
			return err
		}
		postService := service.NewPostService(sessionCore(cmd.Context()))
		return postService.ListUserPosts(cmd.Context(), id, postPages.value())
	},
}

func init() {
	postCreateCmd.Flags().StringVar(&postContent, "content", "", "Post text")
	postCreateCmd.Flags().StringVar(&postMediaURL, "media-url", "", "Attached media URL")

	postEditCmd.Flags().StringVar(&postContent, "content", "", "New post text")
	postEditCmd.Flags().StringVar(&postMediaURL, "media-url", "", "New media URL")
	_ = postEditCmd.MarkFlagRequired("content")

	postShowCmd.Flags().BoolVar(&postWithComments, "comments", false, "Include comments")

	postReactCmd.Flags().StringVar(&postReaction, "type", api.ReactionLike, "Reaction type")

	postPages.register(postByUserCmd)

	postCmd.AddCommand(postCreateCmd)
	postCmd.AddCommand(postShowCmd)
	postCmd.AddCommand(postEditCmd)
	postCmd.AddCommand(postReactCmd)
	postCmd.AddCommand(postByUserCmd)
}
