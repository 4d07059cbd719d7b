package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/redisflow/cmd/redisflow/handlers"
)

// Cleanup returns the command that deletes resource groups left behind by
// interrupted runs.
func Cleanup() *cobra.Command {
	var opts handlers.CleanupOptions

	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Delete leftover resource groups",
		Long: `Delete resource groups left behind by interrupted runs.

Groups are addressed by ARM ID, or found by the redisflow management tag with
--all-managed. Groups without the management tag are refused unless --force
is given.

Examples:
  # Delete one group, asking for confirmation
  redisflow cleanup --resource-group-id /subscriptions/.../resourceGroups/RedisRGab12cd34

  # Delete every managed group without prompting
  redisflow cleanup --all-managed --yes`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Cleanup(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringArrayVar(&opts.IDs, "resource-group-id", nil, "ARM ID of a resource group to delete (repeatable)")
	cmd.Flags().BoolVar(&opts.AllManaged, "all-managed", false, "Delete every resource group tagged as managed by redisflow")
	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "Skip the confirmation prompt")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "Delete groups that are not tagged as managed by redisflow")

	return cmd
}
