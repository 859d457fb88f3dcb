package cli

import (
	"github.com/spf13/cobra"
)

// NewExistsCommand creates the exists command.
func NewExistsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "exists <voter-id>",
		Short:         "Check whether a voter has a recorded vote",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExists(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runExists(opts *RootOptions, voter string, cmd *cobra.Command) error {
	f := formatter(opts, cmd.OutOrStdout())

	store, closeStore, err := openStore(opts)
	if err != nil {
		return fail(f, err)
	}
	defer closeStore()

	present, err := store.Exists(cmd.Context(), voter)
	if err != nil {
		return fail(f, err)
	}

	if opts.Format == "json" {
		return f.Success(map[string]any{"voter_id": voter, "exists": present})
	}
	return f.Success(present)
}
