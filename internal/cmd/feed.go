package cmd

import (
	"github.com/connectsphere/cli/pkg/service"
	"github.com/spf13/cobra"
)

var feedTrending bool

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Show your timeline",
	Long:  "Show posts from you and the people you follow, or trending posts with --trending",
	RunE: func(cmd *cobra.Command, args []string) error {
		feedSvc := service.NewFeedService(sessionCore(cmd.Context()))
		if feedTrending {
			return feedSvc.ViewTrendingFeed(cmd.Context())
		}
		return feedSvc.ViewTimeline(cmd.Context())
	},
}

func init() {
	feedCmd.Flags().BoolVar(&feedTrending, "trending", false, "Show trending posts instead")
}
