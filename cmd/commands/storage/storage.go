package storage

import (
	"github.com/spf13/cobra"
)

// NewCommand returns the "storage" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "storage",
		Short: "Manage storage buckets directly",
		Long: `Manage S3 storage buckets through the storage flow API.

Bucket deletion is only available here; the chat assistant never deletes
resources. Both commands require storage-flow-url to be configured.`,
	}

	cmd.AddCommand(ListCommand())
	cmd.AddCommand(DeleteCommand())

	return cmd
}
