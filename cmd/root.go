package cmd

import (
	"os"

	"nathanbeddoewebdev/infrachat/cmd/commands/audit"
	"nathanbeddoewebdev/infrachat/cmd/commands/auth"
	cfgcmd "nathanbeddoewebdev/infrachat/cmd/commands/config"
	"nathanbeddoewebdev/infrachat/cmd/commands/provision"
	"nathanbeddoewebdev/infrachat/cmd/commands/serve"
	"nathanbeddoewebdev/infrachat/cmd/commands/storage"
	"nathanbeddoewebdev/infrachat/internal/intent/providers"
	"nathanbeddoewebdev/infrachat/internal/logging"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
func rootCmd() *cobra.Command {
	var closeLog func() error

	var cmd = &cobra.Command{
		Use:   "infrachat",
		Short: "Provision cloud resources by chatting with an AI assistant",
		Long: `infrachat turns plain-English requests into provisioning calls against a
REST provisioning API. A language model extracts the intended action, the
request is validated against the selected resource type and the result is
shown as a chat reply plus a terminal-style trace.

Supported resource types: server, database, storage, networking.
Supported model providers: OpenAI, Google Gemini.

Quick start:
  infrachat config set backend-url https://api.example.com
  infrachat auth login openai                 # Store your API key
  infrachat provision chat --type database    # Interactive chat
  infrachat provision submit --type storage "create a bucket called assets"
  infrachat serve --addr :8080                # HTTP API`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")
			logFile, _ := cmd.Flags().GetString("log-file")

			logger := logging.New(cmd.ErrOrStderr(), verbose)
			if logFile != "" {
				fileLogger, closer, err := logging.OpenFile(logFile, verbose)
				if err != nil {
					return err
				}
				logger, closeLog = fileLogger, closer
			}
			cmd.SetContext(logging.WithLogger(cmd.Context(), logger))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if closeLog != nil {
				closeLog()
			}
		},
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().String("log-file", "", "Write logs to this file instead of stderr")

	cmd.AddCommand(provision.NewCommand())
	cmd.AddCommand(storage.NewCommand())
	cmd.AddCommand(serve.NewCommand())
	cmd.AddCommand(auth.NewCommand())
	cmd.AddCommand(cfgcmd.NewCommand())
	cmd.AddCommand(audit.NewCommand())

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	providers.RegisterAll()

	var root = rootCmd()
	err := root.Execute()
	if err != nil {
		os.Exit(1)
	}
}
