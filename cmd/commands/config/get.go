package config

import (
	"fmt"
	"os"
	"strings"

	"nathanbeddoewebdev/infrachat/internal/config"
	"nathanbeddoewebdev/infrachat/internal/tui"
	"nathanbeddoewebdev/infrachat/internal/util"

	"golang.org/x/term"

	"github.com/spf13/cobra"
)

// GetCommand returns the "config get" command.
func GetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get [key]",
		Short: "Get a configuration value",
		Long: "Get a persistent configuration value.\n\n" +
			"If no key is provided and running in a terminal, opens an interactive\n" +
			"config viewer where you can browse and edit all settings.\n\n" +
			config.KeysHelp() +
			"\nExamples:\n" +
			"  infrachat config get                  # interactive viewer\n" +
			"  infrachat config get backend-url      # print a single value",
		Args:         cobra.MaximumNArgs(1),
		RunE:         runGet,
		SilenceUsage: true,
	}

	cmd.Flags().String("key", "", "Configuration key to fetch (same as the positional argument)")

	return cmd
}

func runGet(cmd *cobra.Command, args []string) error {
	keyFlag, _ := cmd.Flags().GetString("key")
	if len(args) == 1 {
		keyFlag = args[0]
	}
	keyFlag = strings.TrimSpace(keyFlag)

	// No key: open interactive config viewer.
	if keyFlag == "" {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			if err := tui.RunConfigView(); err != nil {
				return fmt.Errorf("config view failed: %w", err)
			}
			return nil
		}

		// Non-interactive: list all values.
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		for _, spec := range config.Keys {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", spec.Name, displayValue(spec, cfg))
		}
		return nil
	}

	key := util.NormalizeKey(keyFlag)

	spec := config.Lookup(key)
	if spec == nil {
		return fmt.Errorf("unknown configuration key %q (valid: %s)", keyFlag, strings.Join(config.KeyNames(), ", "))
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), displayValue(*spec, cfg))
	return nil
}

// displayValue returns the stored value, the environment override when one
// is set, or "not set".
func displayValue(spec config.KeySpec, cfg *config.Config) string {
	if v := strings.TrimSpace(os.Getenv(spec.Env)); v != "" {
		return v + " (from " + spec.Env + ")"
	}
	if v := spec.Get(cfg); v != "" {
		return v
	}
	return "not set"
}
