package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunHappyPath(t *testing.T) {
	s := &Scenario{
		Name: "happy",
		Steps: []Step{
			{Op: "register", Voter: "v-001", Candidate: "alice", Station: "north"},
			{Op: "register", Voter: "v-002", Candidate: "alice", Station: "south"},
			{Op: "register", Voter: "v-003", Candidate: "bob", Station: "north"},
		},
		Assertions: []Assertion{
			{Type: AssertTally, Counts: map[string]int{"alice": 2, "bob": 1}},
			{Type: AssertScanCount, Count: 3},
			{Type: AssertExists, Voter: "v-001", Present: true},
		},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Passed(), "errors: %v", result.Errors)
}

func TestRunExpectedGuardFailure(t *testing.T) {
	s := &Scenario{
		Name: "guards",
		Steps: []Step{
			{Op: "register", Voter: "v-001", Candidate: "alice", Station: "north"},
			{Op: "register", Voter: "v-001", Candidate: "bob", Station: "south", ExpectError: "ALREADY_EXISTS"},
			{Op: "delete", Voter: "ghost", ExpectError: "NOT_FOUND"},
		},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Passed())
}

func TestRunUnexpectedFailureAborts(t *testing.T) {
	s := &Scenario{
		Name: "aborts",
		Steps: []Step{
			{Op: "delete", Voter: "ghost"}, // no expect_error - must abort
		},
	}

	_, err := Run(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step 0")
}

func TestRunExpectedErrorButSucceeded(t *testing.T) {
	s := &Scenario{
		Name: "wrongly-optimistic",
		Steps: []Step{
			{Op: "register", Voter: "v-001", Candidate: "alice", Station: "north", ExpectError: "ALREADY_EXISTS"},
		},
	}

	_, err := Run(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "got success")
}

func TestRunWrongErrorCode(t *testing.T) {
	s := &Scenario{
		Name: "mismatched",
		Steps: []Step{
			{Op: "delete", Voter: "ghost", ExpectError: "ALREADY_EXISTS"},
		},
	}

	_, err := Run(s)
	require.Error(t, err)
}

func TestRunAssertionFailuresAccumulate(t *testing.T) {
	s := &Scenario{
		Name: "failing-assertions",
		Steps: []Step{
			{Op: "register", Voter: "v-001", Candidate: "alice", Station: "north"},
		},
		Assertions: []Assertion{
			{Type: AssertExists, Voter: "v-001", Present: false}, // wrong
			{Type: AssertScanCount, Count: 5},                    // wrong
		},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Passed())
	assert.Len(t, result.Errors, 2)
}

func TestRunScenariosAreIsolated(t *testing.T) {
	s := &Scenario{
		Name: "isolated",
		Steps: []Step{
			{Op: "register", Voter: "v-001", Candidate: "alice", Station: "north"},
		},
		Assertions: []Assertion{
			{Type: AssertScanCount, Count: 1},
		},
	}

	// Two runs of the same scenario never see each other's writes.
	for i := 0; i < 2; i++ {
		result, err := Run(s)
		require.NoError(t, err)
		assert.True(t, result.Passed(), "run %d: %v", i, result.Errors)
	}
}

func TestRunCorruptEntryAsymmetry(t *testing.T) {
	s := &Scenario{
		Name: "corrupt-entry",
		Steps: []Step{
			{Op: "register", Voter: "v-001", Candidate: "alice", Station: "north"},
			{Op: "plant_raw", Voter: "zz-junk", Value: "{not json"},
		},
		Assertions: []Assertion{
			// The corrupt entry shows up in scans but not in the tally.
			{Type: AssertScanCount, Count: 2},
			{Type: AssertTally, Counts: map[string]int{"alice": 1}},
		},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Passed(), "errors: %v", result.Errors)
}
