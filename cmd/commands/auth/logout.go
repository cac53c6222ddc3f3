package auth

import (
	"fmt"

	"nathanbeddoewebdev/infrachat/internal/platform/providers"
	"nathanbeddoewebdev/infrachat/internal/services/auth"

	"github.com/spf13/cobra"
)

func LogoutCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout <provider>",
		Short: "Remove the stored API key for a model provider",
		Long: `Remove the stored API key for a model provider from the keychain.

Example:
  infrachat auth logout openai`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := providerArg(args[0])
			if err != nil {
				return err
			}
			if err := auth.DefaultStore().DeleteToken(provider); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed API key for %s\n", providers.Lookup(provider).DisplayName)
			return nil
		},
		SilenceUsage: true,
	}

	return cmd
}
