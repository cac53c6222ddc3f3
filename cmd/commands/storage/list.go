package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"

	"nathanbeddoewebdev/infrachat/internal/config"
	"nathanbeddoewebdev/infrachat/internal/logging"
	"nathanbeddoewebdev/infrachat/internal/provision/domain"
	"nathanbeddoewebdev/infrachat/internal/services"

	"github.com/spf13/cobra"
)

func ListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List storage buckets",
		Long: `List the storage buckets reported by the storage flow.

Examples:
  infrachat storage list
  infrachat storage list -o json`,
		Args:         cobra.NoArgs,
		RunE:         runList,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	if output != "table" && output != "json" {
		return fmt.Errorf("unsupported output format %q", output)
	}

	settings, err := config.Resolve()
	if err != nil {
		return err
	}
	if settings.StorageFlowURL == "" {
		return errFlowNotConfigured
	}
	svc, err := services.NewProvisioning(cmd.Context(), settings, services.ProvisioningOptions{
		Logger:       logging.FromContext(cmd.Context()),
		WithoutModel: true,
	})
	if err != nil {
		return err
	}

	res := svc.Execute(cmd.Context(), domain.ProvisionAction{Kind: domain.ActionList, ResourceType: domain.ResourceStorage})
	if !res.Success {
		return errors.New(res.Error)
	}

	if output == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(res.Resources)
	}

	if len(res.Resources) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No buckets found.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NAME\tCREATED")
	fmt.Fprintln(w, "----\t-------")
	for _, b := range res.Resources {
		created := "-"
		if !b.CreatedAt.IsZero() {
			created = b.CreatedAt.UTC().Format("2006-01-02 15:04:05 UTC")
		}
		fmt.Fprintf(w, "%s\t%s\n", b.Name, created)
	}
	w.Flush()
	return nil
}
