package provision

import (
	"errors"
	"fmt"

	"nathanbeddoewebdev/infrachat/internal/config"
	"nathanbeddoewebdev/infrachat/internal/logging"
	"nathanbeddoewebdev/infrachat/internal/provision/domain"
	"nathanbeddoewebdev/infrachat/internal/services"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func ListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List provisioned resources",
		Long: `List resources straight from the provisioning backend, without the
language model.

Examples:
  infrachat provision list --type server
  infrachat provision list --all -o json`,
		Args:         cobra.NoArgs,
		RunE:         runList,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("type", "t", "", typeFlagUsage())
	cmd.Flags().Bool("all", false, "List every resource type")
	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")

	return cmd
}

// typeListing is the result of listing one resource type.
type typeListing struct {
	ResourceType domain.ResourceType     `json:"resourceType"`
	Resources    []domain.ResourceRecord `json:"resources"`
	Error        string                  `json:"error,omitempty"`
}

func runList(cmd *cobra.Command, args []string) error {
	rt, err := resourceTypeFlag(cmd)
	if err != nil {
		return err
	}
	all, _ := cmd.Flags().GetBool("all")
	switch {
	case rt == "" && !all:
		return errors.New("either --type or --all is required")
	case rt != "" && all:
		return errors.New("--type and --all are mutually exclusive")
	}

	output, _ := cmd.Flags().GetString("output")
	if output != "table" && output != "json" {
		return fmt.Errorf("unsupported output format %q", output)
	}

	settings, err := config.Resolve()
	if err != nil {
		return err
	}
	svc, err := services.NewProvisioning(cmd.Context(), settings, services.ProvisioningOptions{
		Logger:       logging.FromContext(cmd.Context()),
		WithoutModel: true,
	})
	if err != nil {
		return err
	}

	types := []domain.ResourceType{rt}
	if all {
		types = domain.ResourceTypes
	}

	listings := make([]typeListing, len(types))
	g, ctx := errgroup.WithContext(cmd.Context())
	for i, t := range types {
		g.Go(func() error {
			res := svc.Execute(ctx, domain.ProvisionAction{Kind: domain.ActionList, ResourceType: t})
			listings[i] = typeListing{ResourceType: t, Resources: res.Resources}
			if !res.Success {
				listings[i].Error = res.Error
			}
			return nil
		})
	}
	g.Wait()

	if output == "json" {
		if err := printJSON(cmd.OutOrStdout(), listings); err != nil {
			return err
		}
	} else {
		printListings(cmd, listings)
	}

	failed := 0
	for _, l := range listings {
		if l.Error != "" {
			failed++
		}
	}
	if failed == len(listings) {
		return fmt.Errorf("failed to list %s", describeTypes(types))
	}
	return nil
}

func printListings(cmd *cobra.Command, listings []typeListing) {
	w := cmd.OutOrStdout()
	for i, l := range listings {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if len(listings) > 1 {
			fmt.Fprintf(w, "%s\n", l.ResourceType.Plural())
		}
		switch {
		case l.Error != "":
			fmt.Fprintf(cmd.ErrOrStderr(), "Error listing %s: %s\n", l.ResourceType.Plural(), l.Error)
		case len(l.Resources) == 0:
			fmt.Fprintf(w, "No %s found.\n", l.ResourceType.Plural())
		default:
			printRecords(w, l.ResourceType, l.Resources)
		}
	}
}

func describeTypes(types []domain.ResourceType) string {
	if len(types) == 1 {
		return types[0].Plural()
	}
	return "all resource types"
}
