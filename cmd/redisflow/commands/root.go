// Package commands defines the cobra commands of the redisflow CLI. Command
// definitions only bind flags; the work happens in the handlers package.
package commands

import (
	"github.com/spf13/cobra"
)

// Root returns the top-level redisflow command. Invoked without a
// subcommand it performs a run.
func Root() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:          "redisflow",
		Short:        "Provision and tear down Azure Cache for Redis instances",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.run(cmd)
		},
	}
	opts.bind(cmd)

	cmd.AddCommand(
		Run(),
		Cleanup(),
		Version(),
	)

	return cmd
}
