package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/roach88/scrutin/internal/canon"
	"github.com/roach88/scrutin/internal/votes"
)

// RegisterOptions holds flags for the register command.
type RegisterOptions struct {
	*RootOptions
	Voter     string
	Candidate string
	Station   string
}

// NewRegisterCommand creates the register command.
func NewRegisterCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RegisterOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Record a vote for a voter with no prior vote",
		Long: `Record a vote for a voter with no prior vote.

Fails with ALREADY_EXISTS if the voter already has a recorded vote.
When --voter is omitted, a UUIDv7 voter ID is minted.

On success a receipt is printed: the content digest of the committed
record. Re-reading the record and digesting it yields the same receipt,
so the voter can verify what the ledger holds.

Example:
  scrutin register --voter v-001 --candidate alice --station north`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRegister(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Voter, "voter", "", "voter ID (a UUIDv7 is minted when omitted)")
	cmd.Flags().StringVar(&opts.Candidate, "candidate", "", "candidate ID")
	cmd.Flags().StringVar(&opts.Station, "station", "", "polling station")
	cmd.MarkFlagRequired("candidate")
	cmd.MarkFlagRequired("station")

	return cmd
}

func runRegister(opts *RegisterOptions, cmd *cobra.Command) error {
	f := formatter(opts.RootOptions, cmd.OutOrStdout())

	store, closeStore, err := openStore(opts.RootOptions)
	if err != nil {
		return fail(f, err)
	}
	defer closeStore()

	voter := opts.Voter
	if voter == "" {
		voter = uuid.Must(uuid.NewV7()).String()
	}

	if err := store.Register(cmd.Context(), voter, opts.Candidate, opts.Station); err != nil {
		return fail(f, err)
	}

	receipt, err := voteReceipt(voter, opts.Candidate, opts.Station)
	if err != nil {
		return fail(f, err)
	}

	if opts.Format == "json" {
		return f.Success(map[string]string{"voter_id": voter, "receipt": receipt})
	}
	return f.Success(fmt.Sprintf("registered voter %s (receipt %s)", voter, receipt))
}

// voteReceipt computes the content digest of the record as committed.
func voteReceipt(voter, candidate, station string) (string, error) {
	data, err := votes.Encode(votes.Vote{VoterID: voter, CandidateID: candidate, Station: station})
	if err != nil {
		return "", err
	}
	return canon.Digest(canon.DomainVote, data), nil
}
