package harness

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/scrutin/internal/canon"
	"github.com/roach88/scrutin/internal/votes"
)

// Snapshot renders the store's final state as canonical JSON: the full
// ordered scan, the tally, and the state fingerprint. Byte-identical
// across runs for identical state, so it is safe to compare against
// golden files.
func Snapshot(ctx context.Context, name string, store *votes.Store) ([]byte, error) {
	entries, err := store.ScanAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}

	entryList := canon.Arr{}
	for _, e := range entries {
		obj := canon.Obj{"key": canon.Str(e.Key)}
		if e.Vote != nil {
			obj["vote"] = canon.Obj{
				"voter_id":     canon.Str(e.Vote.VoterID),
				"candidate_id": canon.Str(e.Vote.CandidateID),
				"station":      canon.Str(e.Vote.Station),
			}
		} else {
			obj["raw"] = canon.Str(string(e.Raw))
		}
		entryList = append(entryList, obj)
	}

	counts, err := store.Tally(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	plain := make(map[string]any, len(counts))
	for candidate, n := range counts {
		plain[candidate] = n
	}
	tally, err := canon.FromAny(plain)
	if err != nil {
		return nil, fmt.Errorf("snapshot tally: %w", err)
	}

	fingerprint, err := store.Fingerprint(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}

	snap := canon.Obj{
		"name":        canon.Str(name),
		"entries":     entryList,
		"tally":       tally,
		"fingerprint": canon.Str(fingerprint),
	}
	data, err := canon.Marshal(snap)
	if err != nil {
		return nil, err
	}

	// A snapshot must survive a decode and re-encode byte for byte, or the
	// golden comparison is meaningless.
	var check canon.Obj
	if err := json.Unmarshal(data, &check); err != nil {
		return nil, fmt.Errorf("snapshot is not canonical: %w", err)
	}
	again, err := canon.Marshal(check)
	if err != nil {
		return nil, fmt.Errorf("snapshot is not canonical: %w", err)
	}
	if !bytes.Equal(data, again) {
		return nil, fmt.Errorf("snapshot did not round-trip canonically")
	}
	return data, nil
}

// RunWithGolden executes a scenario and compares the final state snapshot
// against a golden file at testdata/golden/{scenario.Name}.golden.
//
// Assertion failures inside the scenario fail the test before the golden
// comparison runs.
func RunWithGolden(t *testing.T, scenario *Scenario) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		t.Fatalf("scenario %s: %v", scenario.Name, err)
	}
	for _, msg := range result.Errors {
		t.Errorf("scenario %s: %s", scenario.Name, msg)
	}
	if t.Failed() {
		return
	}

	snap, err := Snapshot(context.Background(), scenario.Name, result.store)
	if err != nil {
		t.Fatalf("scenario %s: %v", scenario.Name, err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, snap)
}
