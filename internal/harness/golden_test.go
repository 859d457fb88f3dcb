package harness

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/scrutin/internal/canon"
)

func TestGoldenScenarios(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "scenarios", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, paths, "no scenario files found")

	for _, path := range paths {
		scenario, err := LoadScenario(path)
		require.NoError(t, err, path)

		t.Run(scenario.Name, func(t *testing.T) {
			RunWithGolden(t, scenario)
		})
	}
}

func TestSnapshotDeterministic(t *testing.T) {
	s := &Scenario{
		Name: "snap",
		Steps: []Step{
			{Op: "register", Voter: "v-002", Candidate: "bob", Station: "south"},
			{Op: "register", Voter: "v-001", Candidate: "alice", Station: "north"},
		},
	}

	result, err := Run(s)
	require.NoError(t, err)

	first, err := Snapshot(context.Background(), s.Name, result.store)
	require.NoError(t, err)
	again, err := Snapshot(context.Background(), s.Name, result.store)
	require.NoError(t, err)
	assert.Equal(t, first, again)

	// Entries appear in key order regardless of registration order.
	assert.Contains(t, string(first), `"v-001"`)
	assert.Less(t, strings.Index(string(first), "v-001"), strings.Index(string(first), "v-002"))
}

// A snapshot is canonical JSON end to end: decoding it into canon values
// and re-encoding reproduces the exact bytes.
func TestSnapshotRoundTripsCanonically(t *testing.T) {
	s := &Scenario{
		Name: "roundtrip",
		Steps: []Step{
			{Op: "register", Voter: "v-001", Candidate: "alice", Station: "north"},
			{Op: "plant_raw", Voter: "zz-corrupt", Value: "not a vote"},
		},
	}

	result, err := Run(s)
	require.NoError(t, err)

	snap, err := Snapshot(context.Background(), s.Name, result.store)
	require.NoError(t, err)

	var decoded canon.Obj
	require.NoError(t, json.Unmarshal(snap, &decoded))
	assert.Equal(t, canon.Str(s.Name), decoded["name"])

	again, err := canon.Marshal(decoded)
	require.NoError(t, err)
	assert.Equal(t, snap, again)
}
