package storage

import (
	"errors"
	"fmt"
	"os"
	"time"

	"nathanbeddoewebdev/infrachat/internal/auditlog"
	"nathanbeddoewebdev/infrachat/internal/config"
	"nathanbeddoewebdev/infrachat/internal/logging"
	"nathanbeddoewebdev/infrachat/internal/provision/domain"
	provisioning "nathanbeddoewebdev/infrachat/internal/provision/services"
	"nathanbeddoewebdev/infrachat/internal/services"
	"nathanbeddoewebdev/infrachat/internal/tui"
	"nathanbeddoewebdev/infrachat/internal/util"

	"golang.org/x/term"

	"github.com/spf13/cobra"
)

var errFlowNotConfigured = errors.New("storage-flow-url is not set (run 'infrachat config set storage-flow-url <url>' or set INFRACHAT_STORAGE_FLOW_URL)")

func DeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <bucket>",
		Short: "Delete a storage bucket",
		Long: `Delete a storage bucket through the storage flow.

In a terminal you are asked to confirm unless --yes is given. Without a
terminal --yes is required.

Examples:
  infrachat storage delete assets-2024
  infrachat storage delete assets-2024 --region eu-west-1 --yes`,
		Args:         cobra.ExactArgs(1),
		RunE:         runDelete,
		SilenceUsage: true,
	}

	cmd.Flags().String("region", provisioning.DefaultRegion, "Bucket region")
	cmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	start := time.Now()
	name := args[0]
	region, _ := cmd.Flags().GetString("region")
	yes, _ := cmd.Flags().GetBool("yes")

	if err := util.ValidateBucketName(name); err != nil {
		return err
	}

	if !yes {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return errors.New("refusing to delete without confirmation (pass --yes)")
		}
		ok, err := tui.ConfirmBucketDelete(name, region)
		if err != nil && !errors.Is(err, tui.ErrAborted) {
			return err
		}
		if !ok {
			fmt.Fprintln(cmd.ErrOrStderr(), "Bucket deletion cancelled.")
			return nil
		}
	}

	logger := logging.FromContext(cmd.Context())
	settings, err := config.Resolve()
	if err != nil {
		return err
	}
	if settings.StorageFlowURL == "" {
		return errFlowNotConfigured
	}
	svc, err := services.NewProvisioning(cmd.Context(), settings, services.ProvisioningOptions{
		Logger:       logger,
		WithoutModel: true,
	})
	if err != nil {
		return err
	}

	ctx := auditlog.WithMetadata(cmd.Context(), auditlog.Metadata{
		Action:       string(domain.ActionDelete),
		ResourceType: string(domain.ResourceStorage),
		ResourceName: name,
	})
	err = svc.DeleteBucket(ctx, name, region)
	auditlog.NewRecorder(logger).Record(ctx, cmd.CommandPath(), args, start, err)
	if err != nil {
		return fmt.Errorf("failed to delete bucket %s: %w", name, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted bucket %s (%s)\n", name, region)
	return nil
}
