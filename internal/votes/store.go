package votes

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/scrutin/internal/ledger"
)

// Store is the vote record store over a world state handle.
//
// The handle is injected explicitly at construction; the store never reads
// ambient or global transaction state. All operations take a context that
// is passed through to the world state boundary, where the host sequences
// and commits the enclosing transaction.
type Store struct {
	ws  ledger.WorldState
	log *slog.Logger
}

// NewStore creates a Store over the given world state.
// A nil logger defaults to slog.Default().
func NewStore(ws ledger.WorldState, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{ws: ws, log: log}
}

// Exists reports whether a vote is recorded for voterID.
// True iff a non-empty value is stored. No side effects.
func (s *Store) Exists(ctx context.Context, voterID string) (bool, error) {
	data, err := s.ws.GetState(ctx, voterID)
	if err != nil {
		return false, fmt.Errorf("exists %q: %w", voterID, err)
	}
	return len(data) > 0, nil
}

// Register records a vote for a voter with no prior vote.
// Fails with ALREADY_EXISTS if the voter is already present; state is
// untouched on failure.
func (s *Store) Register(ctx context.Context, voterID, candidateID, station string) error {
	present, err := s.Exists(ctx, voterID)
	if err != nil {
		return err
	}
	if present {
		return newAlreadyExists(voterID)
	}

	data, err := Encode(Vote{VoterID: voterID, CandidateID: candidateID, Station: station})
	if err != nil {
		return err
	}

	if err := s.ws.PutState(ctx, voterID, data); err != nil {
		return fmt.Errorf("register %q: %w", voterID, err)
	}

	s.log.Debug("vote registered", "voter_id", voterID, "candidate_id", candidateID)
	return nil
}

// Read returns the stored bytes for voterID unchanged. Interpretation is
// the caller's responsibility. Fails with NOT_FOUND if absent.
func (s *Store) Read(ctx context.Context, voterID string) ([]byte, error) {
	data, err := s.ws.GetState(ctx, voterID)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", voterID, err)
	}
	if len(data) == 0 {
		return nil, newNotFound(voterID)
	}
	return data, nil
}

// Update replaces a present voter's vote entirely. The old value is
// discarded, never merged. Fails with NOT_FOUND if absent.
func (s *Store) Update(ctx context.Context, voterID, candidateID, station string) error {
	present, err := s.Exists(ctx, voterID)
	if err != nil {
		return err
	}
	if !present {
		return newNotFound(voterID)
	}

	data, err := Encode(Vote{VoterID: voterID, CandidateID: candidateID, Station: station})
	if err != nil {
		return err
	}

	if err := s.ws.PutState(ctx, voterID, data); err != nil {
		return fmt.Errorf("update %q: %w", voterID, err)
	}

	s.log.Debug("vote updated", "voter_id", voterID, "candidate_id", candidateID)
	return nil
}

// Delete removes a present voter's vote. Fails with NOT_FOUND if absent.
// Distinct from the unguarded per-key deletes inside DeleteAll.
func (s *Store) Delete(ctx context.Context, voterID string) error {
	present, err := s.Exists(ctx, voterID)
	if err != nil {
		return err
	}
	if !present {
		return newNotFound(voterID)
	}

	if err := s.ws.DeleteState(ctx, voterID); err != nil {
		return fmt.Errorf("delete %q: %w", voterID, err)
	}

	s.log.Debug("vote deleted", "voter_id", voterID)
	return nil
}
