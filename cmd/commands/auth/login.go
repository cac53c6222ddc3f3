package auth

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"nathanbeddoewebdev/infrachat/internal/platform/providers"
	"nathanbeddoewebdev/infrachat/internal/services/auth"
	"nathanbeddoewebdev/infrachat/internal/tui"

	"golang.org/x/term"

	"github.com/spf13/cobra"
)

func LoginCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login <provider>",
		Short: "Store an API key for a model provider",
		Long: `Store an API key for a model provider using the local keychain.

Supported providers: openai, gemini.

Examples:
  infrachat auth login openai
  infrachat auth login gemini --token "$KEY"`,
		Args:         cobra.ExactArgs(1),
		RunE:         runLogin,
		SilenceUsage: true,
	}

	cmd.Flags().String("token", "", "API key (optional, overrides prompt)")

	return cmd
}

func runLogin(cmd *cobra.Command, args []string) error {
	provider, err := providerArg(args[0])
	if err != nil {
		return err
	}
	spec := providers.Lookup(provider)
	store := auth.DefaultStore()

	token, _ := cmd.Flags().GetString("token")
	token = strings.TrimSpace(token)

	if token == "" && term.IsTerminal(int(os.Stdout.Fd())) && term.IsTerminal(int(os.Stdin.Fd())) {
		result, err := tui.RunAuthLogin(provider, store)
		if err != nil {
			return fmt.Errorf("auth login failed: %w", err)
		}
		if result.Saved {
			fmt.Fprintf(cmd.OutOrStdout(), "Saved API key for %s\n", spec.DisplayName)
		}
		return nil
	}

	if token == "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Enter %s (create one at %s): ", spec.Prompt, spec.KeyURL)
		bytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		token = strings.TrimSpace(string(bytes))
	}

	if token == "" {
		return errors.New("API key cannot be empty")
	}

	if err := store.SetToken(provider, token); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Saved API key for %s\n", spec.DisplayName)
	if v := os.Getenv(spec.EnvVar); v != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Note: %s is set and takes precedence over the stored key.\n", spec.EnvVar)
	}
	return nil
}
