package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/connectsphere/cli/pkg/config"
	"github.com/connectsphere/cli/pkg/credentials"
	clierrors "github.com/connectsphere/cli/pkg/errors"
	"github.com/connectsphere/cli/pkg/logger"
	"github.com/connectsphere/cli/pkg/output"
	"github.com/connectsphere/cli/pkg/service"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	outputFmt  string
	apiURL     string

	// core is built lazily by the commands that talk to the API.
	core *service.Core
)

var rootCmd = &cobra.Command{
	Use:   "connectsphere",
	Short: "ConnectSphere CLI - social network client",
	Long: `ConnectSphere CLI is a command-line client for the ConnectSphere
social network. Read your feed, post, react, comment and follow
people, and keep an eye on notifications from the terminal.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		closeCore()
		if err := config.Init(configPath); err != nil {
			return fmt.Errorf("error initializing config: %w", err)
		}

		logger.Init(verbose)

		if cmd.Flags().Changed("output") {
			if !output.ValidateOutputFormat(outputFmt) {
				return fmt.Errorf("invalid output format %q (use text, json or table)", outputFmt)
			}
			config.Set("output.format", outputFmt)
		}
		if apiURL != "" {
			config.Set("api.base_url", strings.TrimRight(apiURL, "/"))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		closeCore()
	},
}

// Execute runs the command tree and exits non-zero on failure.
func Execute() {
	err := rootCmd.Execute()
	closeCore()
	if err != nil {
		fmt.Fprint(os.Stderr, clierrors.FormatError(err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: ~/.config/connectsphere/cli/config.toml)")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "text", "Output format: text, json, table")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "API base URL (overrides api.base_url)")

	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(feedCmd)
	rootCmd.AddCommand(postCmd)
	rootCmd.AddCommand(commentCmd)
	rootCmd.AddCommand(notificationsCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(followCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// newCore builds the client core from the loaded configuration. The
// credential file backs the session; the unread poller only runs where a
// command starts it.
func newCore() *service.Core {
	if core != nil {
		return core
	}
	opts := service.OptionsFromConfig(config.Settings())
	opts.Persister = credentials.NewFileStore(config.GetCredentialsPath())
	opts.ManualPoll = true
	core = service.NewCore(opts)
	return core
}

// sessionCore is newCore plus the saved session, if there is one. A saved
// credential the server rejects is dropped with a warning.
func sessionCore(ctx context.Context) *service.Core {
	c := newCore()
	if err := c.Restore(ctx); err != nil {
		logger.Warn("Could not restore saved session", "error", err)
		if !output.IsJSON() {
			output.PrintWarning("saved session could not be restored, log in again")
		}
	}
	return c
}

// closeCore stops whatever the last command started. Post-run hooks are
// skipped when a command fails, so this also runs from Execute.
func closeCore() {
	if core != nil {
		core.Close()
		core = nil
	}
}
