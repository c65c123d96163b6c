package cmd

import (
	"fmt"

	"github.com/connectsphere/cli/pkg/config"
	"github.com/connectsphere/cli/pkg/output"
	"github.com/spf13/cobra"
)

var configKeys = []string{
	"api.base_url",
	"api.timeout",
	"poll.unread_interval",
	"output.format",
	"log.level",
	"log.file",
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change CLI settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		record := make(map[string]interface{}, len(configKeys)+1)
		for _, key := range configKeys {
			record[key] = config.GetString(key)
		}
		record["config_file"] = config.GetConfigFilePath()
		return output.PrintRecord("", record)
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Persist a setting to the config file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if !knownKey(key) {
			return fmt.Errorf("unknown setting %q", key)
		}
		if key == "output.format" && !output.ValidateOutputFormat(value) {
			return fmt.Errorf("invalid output format %q (use text, json or table)", value)
		}
		if err := config.SetString(key, value); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		output.PrintSuccess("%s = %s", key, value)
		return nil
	},
}

func knownKey(key string) bool {
	for _, k := range configKeys {
		if k == key {
			return true
		}
	}
	return false
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
