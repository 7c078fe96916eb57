package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/tt/internal/cli/handlers"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display or manage configuration settings",
	Long: `Display the current effective configuration settings for tt.

tt works without any configuration file. All settings have defaults:
  - journal_path: journal.txt next to the config file
  - timezone: Local (system timezone)
  - log_level: warn
  - theme: default

Examples:
  tt config                          Show all current settings
  tt config --init                   Create a commented sample config file
  tt config --path                   Print the config file location

Configuration file location:
  ~/.config/tt/config.toml           Linux
  ~/Library/Application Support/tt/config.toml
                                     macOS
  %APPDATA%\tt\config.toml           Windows`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		initFlag, _ := cmd.Flags().GetBool("init")
		pathFlag, _ := cmd.Flags().GetBool("path")
		switch {
		case initFlag:
			handlers.InitConfig(deps())
		case pathFlag:
			handlers.ShowConfigPath(deps())
		default:
			handlers.ShowConfig(deps())
		}
	},
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.Flags().Bool("init", false, "create a sample config file")
	configCmd.Flags().Bool("path", false, "print the config file path")
	configCmd.MarkFlagsMutuallyExclusive("init", "path")
}
