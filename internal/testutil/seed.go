// Package testutil provides shared helpers for store and harness tests.
package testutil

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/scrutin/internal/ledger"
	"github.com/roach88/scrutin/internal/votes"
)

// QuietLogger returns a logger that drops everything. Store operations log
// skipped malformed records at Warn; tests that plant malformed records on
// purpose use this to keep output clean.
func QuietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewMemStore creates a store over a fresh in-memory world state.
// The ledger is returned too so tests can plant raw bytes directly.
func NewMemStore() (*votes.Store, *ledger.Mem) {
	ws := ledger.NewMem()
	return votes.NewStore(ws, QuietLogger()), ws
}

// Seed registers the given votes, failing the test on any error.
func Seed(t *testing.T, s *votes.Store, vs ...votes.Vote) {
	t.Helper()
	ctx := context.Background()
	for _, v := range vs {
		require.NoError(t, s.Register(ctx, v.VoterID, v.CandidateID, v.Station))
	}
}

// PlantRaw writes raw bytes straight into the world state, bypassing the
// store's guards and encoding. Used to simulate corrupt or foreign entries.
func PlantRaw(t *testing.T, ws *ledger.Mem, key string, value []byte) {
	t.Helper()
	require.NoError(t, ws.PutState(context.Background(), key, value))
}
