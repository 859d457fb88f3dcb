package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

// NewTallyCommand creates the tally command.
func NewTallyCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tally",
		Short: "Count recorded votes per candidate",
		Long: `Count recorded votes per candidate. Malformed ledger entries are
skipped (and logged with --verbose); they never abort the tally.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTally(rootOpts, cmd)
		},
	}

	return cmd
}

func runTally(opts *RootOptions, cmd *cobra.Command) error {
	f := formatter(opts, cmd.OutOrStdout())

	store, closeStore, err := openStore(opts)
	if err != nil {
		return fail(f, err)
	}
	defer closeStore()

	counts, err := store.Tally(cmd.Context())
	if err != nil {
		return fail(f, err)
	}

	if opts.Format == "json" {
		return f.Success(map[string]any{"counts": counts})
	}

	candidates := make([]string, 0, len(counts))
	for c := range counts {
		candidates = append(candidates, c)
	}
	sort.Strings(candidates)

	var b strings.Builder
	for _, c := range candidates {
		fmt.Fprintf(&b, "%s: %d\n", c, counts[c])
	}
	if b.Len() == 0 {
		return f.Success("no votes recorded")
	}
	return f.Success(strings.TrimRight(b.String(), "\n"))
}
