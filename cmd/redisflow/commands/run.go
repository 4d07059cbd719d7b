package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/redisflow/cmd/redisflow/handlers"
)

type runOptions struct {
	configPath   string
	location     string
	mutationMode string
}

func (o *runOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.configPath, "config", "c", "", "Path to workflow file (default: built-in workflow)")
	cmd.Flags().StringVar(&o.location, "location", "", "Azure region, overrides the workflow file")
	cmd.Flags().StringVar(&o.mutationMode, "mutation-mode", "", "How key regeneration, reboots and deletes are dispatched: await or detach")
}

func (o *runOptions) run(cmd *cobra.Command) error {
	return handlers.Run(cmd.Context(), handlers.RunOptions{
		ConfigPath:   o.configPath,
		Location:     o.location,
		MutationMode: o.mutationMode,
	})
}

// Run returns the command that executes the provisioning workflow.
//
// Environment variables:
//
//	TENANT_ID, CLIENT_ID, CLIENT_SECRET, SUBSCRIPTION_ID: service principal (required)
func Run() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the provisioning workflow",
		Long: `Run the provisioning workflow.

A resource group with a random name is created, the configured caches are
created concurrently, and the follow-up operations run against them. The
resource group is deleted at the end whether or not the run succeeded.

Examples:
  # Run the built-in workflow in centralus
  redisflow run

  # Run a custom workflow in another region
  redisflow run -c workflow.yaml --location westeurope

  # Dispatch key regeneration, reboots and deletes without waiting
  redisflow run --mutation-mode detach`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.run(cmd)
		},
	}
	opts.bind(cmd)

	return cmd
}
