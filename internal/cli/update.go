package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// UpdateOptions holds flags for the update command.
type UpdateOptions struct {
	*RootOptions
	Candidate string
	Station   string
}

// NewUpdateCommand creates the update command.
func NewUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &UpdateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "update <voter-id>",
		Short: "Replace a recorded vote entirely",
		Long: `Replace a recorded vote entirely. The old candidate and station are
discarded, never merged. Fails with NOT_FOUND if the voter has no
recorded vote.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Candidate, "candidate", "", "new candidate ID")
	cmd.Flags().StringVar(&opts.Station, "station", "", "new polling station")
	cmd.MarkFlagRequired("candidate")
	cmd.MarkFlagRequired("station")

	return cmd
}

func runUpdate(opts *UpdateOptions, voter string, cmd *cobra.Command) error {
	f := formatter(opts.RootOptions, cmd.OutOrStdout())

	store, closeStore, err := openStore(opts.RootOptions)
	if err != nil {
		return fail(f, err)
	}
	defer closeStore()

	if err := store.Update(cmd.Context(), voter, opts.Candidate, opts.Station); err != nil {
		return fail(f, err)
	}

	receipt, err := voteReceipt(voter, opts.Candidate, opts.Station)
	if err != nil {
		return fail(f, err)
	}

	if opts.Format == "json" {
		return f.Success(map[string]string{"voter_id": voter, "receipt": receipt})
	}
	return f.Success(fmt.Sprintf("updated voter %s (receipt %s)", voter, receipt))
}
