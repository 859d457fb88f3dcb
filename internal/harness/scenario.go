package harness

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario: a sequence of store
// operations followed by assertions over the final state.
type Scenario struct {
	// Name uniquely identifies this scenario. Also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Steps are executed in order against a fresh store.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final state after all steps.
	Assertions []Assertion `yaml:"assertions"`
}

// Step is one store operation.
type Step struct {
	// Op is the operation: "register", "update", "delete", "delete_all",
	// or "plant_raw" (write raw bytes directly into world state, bypassing
	// the store - used to simulate corrupt or foreign entries).
	Op string `yaml:"op"`

	// Voter, Candidate, Station are the record fields.
	// Voter doubles as the world state key for plant_raw.
	Voter     string `yaml:"voter,omitempty"`
	Candidate string `yaml:"candidate,omitempty"`
	Station   string `yaml:"station,omitempty"`

	// Value is the raw bytes for plant_raw.
	Value string `yaml:"value,omitempty"`

	// ExpectError is the guard failure code this step must produce:
	// "ALREADY_EXISTS" or "NOT_FOUND". Empty means the step must succeed.
	ExpectError string `yaml:"expect_error,omitempty"`
}

// Assertion validates the final state.
type Assertion struct {
	// Type specifies the assertion type:
	// - "exists": Exists(voter) must equal Present
	// - "tally": Tally() must equal Counts exactly
	// - "scan_count": ScanAll() must yield exactly Count entries
	Type string `yaml:"type"`

	// Voter and Present are used by "exists".
	Voter   string `yaml:"voter,omitempty"`
	Present bool   `yaml:"present,omitempty"`

	// Counts is the exact expected tally (used by "tally").
	Counts map[string]int `yaml:"counts,omitempty"`

	// Count is the expected number of scan entries (used by "scan_count").
	Count int `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertExists    = "exists"
	AssertTally     = "tally"
	AssertScanCount = "scan_count"
)

var validOps = map[string]bool{
	"register":   true,
	"update":     true,
	"delete":     true,
	"delete_all": true,
	"plant_raw":  true,
}

var validAssertions = map[string]bool{
	AssertExists:    true,
	AssertTally:     true,
	AssertScanCount: true,
}

// LoadScenario reads and validates a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario %s: %w", path, err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}

	return &s, nil
}

// Validate checks structural requirements before execution.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("scenario must have a name")
	}

	for i, step := range s.Steps {
		if !validOps[step.Op] {
			return fmt.Errorf("step %d: unknown op %q", i, step.Op)
		}
		switch step.Op {
		case "register", "update", "delete":
			if step.Voter == "" {
				return fmt.Errorf("step %d: op %q requires a voter", i, step.Op)
			}
		case "plant_raw":
			if step.Voter == "" {
				return fmt.Errorf("step %d: plant_raw requires a voter key", i)
			}
			if step.ExpectError != "" {
				return fmt.Errorf("step %d: plant_raw cannot expect an error", i)
			}
		}
	}

	for i, a := range s.Assertions {
		if !validAssertions[a.Type] {
			return fmt.Errorf("assertion %d: unknown type %q", i, a.Type)
		}
		if a.Type == AssertExists && a.Voter == "" {
			return fmt.Errorf("assertion %d: exists requires a voter", i)
		}
	}

	return nil
}
