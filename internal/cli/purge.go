package cli

import (
	"github.com/spf13/cobra"
)

// PurgeOptions holds flags for the purge command.
type PurgeOptions struct {
	*RootOptions
	Yes bool
}

// NewPurgeCommand creates the purge command.
func NewPurgeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PurgeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Remove every record from the ledger",
		Long: `Remove every record from the ledger. Not atomic: an interrupted purge
leaves the store partially emptied. Re-running is safe and finishes
the job - purge is idempotent.

Requires --yes; there is no undo.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPurge(opts, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Yes, "yes", false, "confirm removal of every record")

	return cmd
}

func runPurge(opts *PurgeOptions, cmd *cobra.Command) error {
	f := formatter(opts.RootOptions, cmd.OutOrStdout())

	if !opts.Yes {
		return fail(f, &ExitError{
			Code:    ExitCommandError,
			Message: "purge removes every record; re-run with --yes to confirm",
		})
	}

	store, closeStore, err := openStore(opts.RootOptions)
	if err != nil {
		return fail(f, err)
	}
	defer closeStore()

	if err := store.DeleteAll(cmd.Context()); err != nil {
		return fail(f, err)
	}

	if opts.Format == "json" {
		return f.Success(map[string]string{"purged": "ok"})
	}
	return f.Success("store emptied")
}
