package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

// NewReadCommand creates the read command.
func NewReadCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "read <voter-id>",
		Short: "Print the raw stored record for a voter",
		Long: `Print the raw stored record for a voter, byte for byte as the ledger
holds it. Fails with NOT_FOUND if the voter has no recorded vote.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRead(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runRead(opts *RootOptions, voter string, cmd *cobra.Command) error {
	f := formatter(opts, cmd.OutOrStdout())

	store, closeStore, err := openStore(opts)
	if err != nil {
		return fail(f, err)
	}
	defer closeStore()

	data, err := store.Read(cmd.Context(), voter)
	if err != nil {
		return fail(f, err)
	}

	if opts.Format == "json" {
		// Stored bytes are canonical JSON already; embed them unparsed so
		// the output shows exactly what the ledger holds. Corrupt values
		// fall back to a string field.
		if json.Valid(data) {
			return f.Success(map[string]any{"voter_id": voter, "record": json.RawMessage(data)})
		}
		return f.Success(map[string]any{"voter_id": voter, "raw": string(data)})
	}
	return f.Success(string(data))
}
