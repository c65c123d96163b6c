package cmd

import (
	"github.com/connectsphere/cli/pkg/service"
	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the API is reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewHealthService(newCore()).Check(cmd.Context())
	},
}
