package auth

import (
	"fmt"
	"os"

	"nathanbeddoewebdev/infrachat/internal/config"
	"nathanbeddoewebdev/infrachat/internal/services/auth"
	"nathanbeddoewebdev/infrachat/internal/tui"

	"golang.org/x/term"

	"github.com/spf13/cobra"
)

func StatusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show authentication status for model providers",
		Long: `Show which model providers have an API key available, and whether it
comes from the environment or the keychain.

Example:
  infrachat auth status`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := auth.DefaultStore()

			// Use TUI in interactive terminal.
			if term.IsTerminal(int(os.Stdout.Fd())) {
				if err := tui.RunAuthStatus(store); err != nil {
					return fmt.Errorf("auth status failed: %w", err)
				}
				return nil
			}

			// Non-interactive fallback.
			for _, status := range auth.Statuses(store, config.ModelProviders) {
				if status.OK() {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: logged in (%s)\n", status.Provider, status.Source)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: not logged in\n", status.Provider)
				}
			}
			return nil
		},
		SilenceUsage: true,
	}

	return cmd
}
