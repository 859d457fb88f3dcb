package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Dump every record in the ledger in key order",
		Long: `Dump every record in the ledger in key order. Values that do not
decode as votes are shown raw rather than skipped, so corrupt entries
stay visible.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(rootOpts, cmd)
		},
	}

	return cmd
}

func runList(opts *RootOptions, cmd *cobra.Command) error {
	f := formatter(opts, cmd.OutOrStdout())

	store, closeStore, err := openStore(opts)
	if err != nil {
		return fail(f, err)
	}
	defer closeStore()

	entries, err := store.ScanAll(cmd.Context())
	if err != nil {
		return fail(f, err)
	}

	if opts.Format == "json" {
		type jsonEntry struct {
			Key         string `json:"key"`
			CandidateID string `json:"candidate_id,omitempty"`
			Station     string `json:"station,omitempty"`
			Raw         string `json:"raw,omitempty"`
		}
		out := make([]jsonEntry, len(entries))
		for i, e := range entries {
			out[i] = jsonEntry{Key: e.Key}
			if e.Vote != nil {
				out[i].CandidateID = e.Vote.CandidateID
				out[i].Station = e.Vote.Station
			} else {
				out[i].Raw = string(e.Raw)
			}
		}
		return f.Success(map[string]any{"count": len(entries), "entries": out})
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d record(s)\n", len(entries))
	for _, e := range entries {
		if e.Vote != nil {
			fmt.Fprintf(&b, "  %s  candidate=%s station=%s\n", e.Key, e.Vote.CandidateID, e.Vote.Station)
		} else {
			fmt.Fprintf(&b, "  %s  (raw) %s\n", e.Key, string(e.Raw))
		}
	}
	return f.Success(strings.TrimRight(b.String(), "\n"))
}
