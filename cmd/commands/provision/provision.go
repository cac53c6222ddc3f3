package provision

import (
	"fmt"
	"strings"

	"nathanbeddoewebdev/infrachat/internal/config"
	"nathanbeddoewebdev/infrachat/internal/provision/domain"

	"github.com/spf13/cobra"
)

// NewCommand returns the "provision" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "provision",
		Short: "Provision resources from plain-English requests",
		Long: `Provision cloud resources by describing them in plain English.

Every request is scoped to one resource type: server, database, storage or
networking. Requests that ask for a different type are rejected.

Examples:
  infrachat provision chat --type server
  infrachat provision submit --type database "create a postgres db called orders"
  infrachat provision list --all`,
	}

	cmd.AddCommand(ChatCommand())
	cmd.AddCommand(SubmitCommand())
	cmd.AddCommand(ListCommand())

	return cmd
}

// resourceTypeFlag parses the --type flag. An empty value returns "".
func resourceTypeFlag(cmd *cobra.Command) (domain.ResourceType, error) {
	raw, _ := cmd.Flags().GetString("type")
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	return domain.ParseResourceType(raw)
}

// modelLabel names the configured model for display and audit entries.
func modelLabel(s config.Settings) string {
	if s.Model == "" {
		return s.ModelProvider
	}
	return s.ModelProvider + "/" + s.Model
}

func typeFlagUsage() string {
	names := make([]string, len(domain.ResourceTypes))
	for i, t := range domain.ResourceTypes {
		names[i] = string(t)
	}
	return fmt.Sprintf("Resource type: %s", strings.Join(names, ", "))
}
