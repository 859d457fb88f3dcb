package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <voter-id>",
		Short: "Remove a recorded vote",
		Long: `Remove a recorded vote. Fails with NOT_FOUND if the voter has no
recorded vote - use purge to empty the store unconditionally.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runDelete(opts *RootOptions, voter string, cmd *cobra.Command) error {
	f := formatter(opts, cmd.OutOrStdout())

	store, closeStore, err := openStore(opts)
	if err != nil {
		return fail(f, err)
	}
	defer closeStore()

	if err := store.Delete(cmd.Context(), voter); err != nil {
		return fail(f, err)
	}

	if opts.Format == "json" {
		return f.Success(map[string]string{"voter_id": voter})
	}
	return f.Success(fmt.Sprintf("deleted voter %s", voter))
}
