package config

import (
	"fmt"
	"strings"

	"nathanbeddoewebdev/infrachat/internal/config"
	"nathanbeddoewebdev/infrachat/internal/util"

	"github.com/spf13/cobra"
)

// SetCommand returns the "config set" command.
func SetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: "Set a persistent configuration value.\n\n" +
			config.KeysHelp() +
			"\nExamples:\n" +
			"  infrachat config set backend-url https://api.example.com\n" +
			"  infrachat config set model-provider gemini",
		Args: cobra.ExactArgs(2),
		Run:  runSet,
	}

	return cmd
}

func runSet(cmd *cobra.Command, args []string) {
	key := util.NormalizeKey(args[0])

	spec := config.Lookup(key)
	if spec == nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: unknown configuration key %q\n", args[0])
		fmt.Fprintf(cmd.ErrOrStderr(), "Valid keys: %s\n", strings.Join(config.KeyNames(), ", "))
		return
	}

	normalized, err := spec.Normalize(args[1])
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return
	}

	spec.Set(cfg, normalized)
	if err := cfg.Save(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s set to %q\n", spec.Name, normalized)
}
