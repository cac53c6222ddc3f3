package auth

import (
	"fmt"
	"slices"
	"strings"

	"nathanbeddoewebdev/infrachat/internal/config"
	"nathanbeddoewebdev/infrachat/internal/services/auth"

	"github.com/spf13/cobra"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage model provider API keys",
		Long: `Manage the API keys of the language model providers.

Keys are stored in the OS keychain. The provider's environment variable
(OPENAI_API_KEY, GEMINI_API_KEY) takes precedence over the stored key.`,
	}

	cmd.AddCommand(LoginCommand())
	cmd.AddCommand(LogoutCommand())
	cmd.AddCommand(StatusCommand())

	return cmd
}

// providerArg normalizes and validates a provider argument.
func providerArg(raw string) (string, error) {
	provider := auth.NormalizeProvider(raw)
	if !slices.Contains(config.ModelProviders, provider) {
		return "", fmt.Errorf("unknown provider %q (valid: %s)", raw, strings.Join(config.ModelProviders, ", "))
	}
	return provider, nil
}
