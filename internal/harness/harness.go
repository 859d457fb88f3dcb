package harness

import (
	"context"
	"fmt"
	"reflect"

	"github.com/roach88/scrutin/internal/ledger"
	"github.com/roach88/scrutin/internal/testutil"
	"github.com/roach88/scrutin/internal/votes"
)

// Result captures the outcome of running a scenario.
type Result struct {
	ScenarioName string

	// Errors holds assertion failures. Empty means the scenario passed.
	Errors []string

	store *votes.Store
}

// Passed reports whether all steps and assertions succeeded.
func (r *Result) Passed() bool {
	return len(r.Errors) == 0
}

// Run executes a scenario against a fresh in-memory world state.
//
// Steps run in order. A step that fails without a matching expect_error,
// or succeeds despite one, aborts the run with an error. Assertion
// failures do not abort; they accumulate in the result.
func Run(scenario *Scenario) (*Result, error) {
	ws := ledger.NewMem()
	store := votes.NewStore(ws, testutil.QuietLogger())
	ctx := context.Background()

	for i, step := range scenario.Steps {
		if err := executeStep(ctx, store, ws, step); err != nil {
			return nil, fmt.Errorf("scenario %s step %d (%s): %w", scenario.Name, i, step.Op, err)
		}
	}

	result := &Result{ScenarioName: scenario.Name, store: store}
	for i, a := range scenario.Assertions {
		if err := evaluate(ctx, store, a); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("assertion %d: %v", i, err))
		}
	}

	return result, nil
}

// executeStep runs one step and checks its error expectation.
func executeStep(ctx context.Context, store *votes.Store, ws *ledger.Mem, step Step) error {
	var err error
	switch step.Op {
	case "register":
		err = store.Register(ctx, step.Voter, step.Candidate, step.Station)
	case "update":
		err = store.Update(ctx, step.Voter, step.Candidate, step.Station)
	case "delete":
		err = store.Delete(ctx, step.Voter)
	case "delete_all":
		err = store.DeleteAll(ctx)
	case "plant_raw":
		return ws.PutState(ctx, step.Voter, []byte(step.Value))
	default:
		return fmt.Errorf("unknown op %q", step.Op)
	}

	if step.ExpectError == "" {
		return err
	}

	if err == nil {
		return fmt.Errorf("expected %s, got success", step.ExpectError)
	}
	if !matchesCode(err, step.ExpectError) {
		return fmt.Errorf("expected %s, got: %v", step.ExpectError, err)
	}
	return nil
}

func matchesCode(err error, code string) bool {
	switch votes.ErrorCode(code) {
	case votes.ErrCodeAlreadyExists:
		return votes.IsAlreadyExists(err)
	case votes.ErrCodeNotFound:
		return votes.IsNotFound(err)
	}
	return false
}

// evaluate checks one assertion against the final state.
func evaluate(ctx context.Context, store *votes.Store, a Assertion) error {
	switch a.Type {
	case AssertExists:
		present, err := store.Exists(ctx, a.Voter)
		if err != nil {
			return err
		}
		if present != a.Present {
			return fmt.Errorf("exists %q: expected %v, got %v", a.Voter, a.Present, present)
		}
		return nil

	case AssertTally:
		counts, err := store.Tally(ctx)
		if err != nil {
			return err
		}
		expected := a.Counts
		if expected == nil {
			expected = map[string]int{}
		}
		if !reflect.DeepEqual(counts, expected) {
			return fmt.Errorf("tally: expected %v, got %v", expected, counts)
		}
		return nil

	case AssertScanCount:
		entries, err := store.ScanAll(ctx)
		if err != nil {
			return err
		}
		if len(entries) != a.Count {
			return fmt.Errorf("scan_count: expected %d entries, got %d", a.Count, len(entries))
		}
		return nil

	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}
