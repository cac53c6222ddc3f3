package serve

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"nathanbeddoewebdev/infrachat/internal/api"
	"nathanbeddoewebdev/infrachat/internal/auditlog"
	"nathanbeddoewebdev/infrachat/internal/config"
	"nathanbeddoewebdev/infrachat/internal/logging"
	"nathanbeddoewebdev/infrachat/internal/services"

	"github.com/spf13/cobra"
)

// NewCommand returns the "serve" command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the provisioning HTTP API",
		Long: `Serve the provisioning API over HTTP.

Endpoints:
  POST /api/provision           {"message": "...", "resourceType": "server"}
  GET  /api/resources/{type}    list resources of one type
  GET  /healthz                 liveness check

The server shuts down gracefully on SIGINT or SIGTERM.

Examples:
  infrachat serve
  infrachat serve --addr 127.0.0.1:9090 --verbose`,
		Args:         cobra.NoArgs,
		RunE:         runServe,
		SilenceUsage: true,
	}

	cmd.Flags().String("addr", ":8080", "Address to listen on")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	addr, _ := cmd.Flags().GetString("addr")
	logger := logging.FromContext(cmd.Context())

	settings, err := config.Resolve()
	if err != nil {
		return err
	}
	svc, err := services.NewProvisioning(cmd.Context(), settings, services.ProvisioningOptions{Logger: logger})
	if err != nil {
		return err
	}
	defer svc.Wait()

	model := settings.ModelProvider
	if settings.Model != "" {
		model += "/" + settings.Model
	}
	h := api.NewHandler(svc,
		api.WithLogger(logger),
		api.WithRecorder(auditlog.NewRecorder(logger), model),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return api.Serve(ctx, addr, h.Routes(), logger, func(a net.Addr) {
		fmt.Fprintf(cmd.OutOrStdout(), "Listening on http://%s\n", a)
	})
}
