package cli

import (
	"github.com/spf13/cobra"
)

// NewFingerprintCommand creates the fingerprint command.
func NewFingerprintCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fingerprint",
		Short: "Print the digest of the full world state",
		Long: `Print the digest of the full world state: a domain-separated SHA-256
over the canonical encoding of every entry in key order. Replicas
holding identical state print identical fingerprints, so this is the
cheap way to check that two copies of the ledger agree.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFingerprint(rootOpts, cmd)
		},
	}

	return cmd
}

func runFingerprint(opts *RootOptions, cmd *cobra.Command) error {
	f := formatter(opts, cmd.OutOrStdout())

	store, closeStore, err := openStore(opts)
	if err != nil {
		return fail(f, err)
	}
	defer closeStore()

	fp, err := store.Fingerprint(cmd.Context())
	if err != nil {
		return fail(f, err)
	}

	if opts.Format == "json" {
		return f.Success(map[string]string{"fingerprint": fp})
	}
	return f.Success(fp)
}
