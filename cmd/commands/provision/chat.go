package provision

import (
	"context"
	"errors"
	"fmt"
	"os"

	"nathanbeddoewebdev/infrachat/internal/auditlog"
	"nathanbeddoewebdev/infrachat/internal/config"
	"nathanbeddoewebdev/infrachat/internal/logging"
	"nathanbeddoewebdev/infrachat/internal/services"
	"nathanbeddoewebdev/infrachat/internal/tui"

	"golang.org/x/term"

	"github.com/spf13/cobra"
)

func ChatCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Open the interactive provisioning chat",
		Long: `Open a full-screen chat with the provisioning assistant.

The left pane holds the conversation, the right pane the terminal trace of
each request. If --type is omitted you are asked to pick a resource type.

Logs are discarded while the chat is open unless --log-file is given.

Examples:
  infrachat provision chat
  infrachat provision chat --type storage --log-file /tmp/infrachat.log`,
		Args:         cobra.NoArgs,
		RunE:         runChat,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("type", "t", "", typeFlagUsage())

	return cmd
}

func runChat(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("provision chat requires an interactive terminal (use 'infrachat provision submit' instead)")
	}

	rt, err := resourceTypeFlag(cmd)
	if err != nil {
		return err
	}
	if rt == "" {
		rt, err = tui.SelectResourceType("")
		if err != nil {
			if errors.Is(err, tui.ErrAborted) {
				fmt.Fprintln(cmd.ErrOrStderr(), "Chat cancelled.")
				return nil
			}
			return err
		}
	}

	logger := logging.FromContext(cmd.Context())
	if f := cmd.Flag("log-file"); f == nil || f.Value.String() == "" {
		logger = logging.Discard()
	}

	settings, err := config.Resolve()
	if err != nil {
		return err
	}
	svc, err := services.NewProvisioning(cmd.Context(), settings, services.ProvisioningOptions{Logger: logger})
	if err != nil {
		return err
	}
	defer svc.Wait()

	recorder := auditlog.NewRecorder(logger)
	model := modelLabel(settings)
	command := cmd.CommandPath()

	return tui.RunChat(cmd.Context(), svc, rt, tui.ChatOptions{
		ModelName: model,
		OnTurn: func(ctx context.Context, turn tui.Turn) {
			recorder.RecordResponse(context.WithoutCancel(ctx), command, []string{"--type", string(rt), turn.Utterance}, turn.Started, model, turn.Response, turn.Err)
		},
	})
}
