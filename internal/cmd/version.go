package cmd

import (
	"github.com/connectsphere/cli/pkg/output"
	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X ...cmd.Version=...".
var Version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show CLI version",
	RunE: func(cmd *cobra.Command, args []string) error {
		if output.IsJSON() {
			return output.Print("", map[string]string{"version": Version})
		}
		output.Printf("ConnectSphere CLI v%s\n", Version)
		return nil
	},
}
