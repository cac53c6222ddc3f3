package config

import (
	"nathanbeddoewebdev/infrachat/internal/config"

	"github.com/spf13/cobra"
)

// NewCommand returns the "config" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage infrachat configuration",
		Long: "View and modify persistent infrachat settings.\n\n" +
			"Configuration is stored at ~/.config/infrachat/config.json. Each key can be\n" +
			"overridden by its environment variable, and a .env file in the working\n" +
			"directory is loaded first.\n\n" +
			config.KeysHelp(),
	}

	cmd.AddCommand(SetCommand())
	cmd.AddCommand(GetCommand())

	return cmd
}
