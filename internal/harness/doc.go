// Package harness provides a conformance testing framework for the vote
// record store.
//
// Scenarios are YAML files describing a sequence of store operations and
// assertions over the resulting state. Each scenario runs against a fresh
// in-memory world state for isolation, so scenarios compose freely and
// never observe each other's writes.
//
// Steps may declare an expected guard failure (expect_error), which the
// runner verifies by error code. A step that fails without a matching
// expectation aborts the scenario.
//
// Golden snapshots capture the final state (full scan, tally, state
// fingerprint) as canonical JSON. Because every layer below is
// deterministic, snapshots are byte-identical across runs and machines,
// making them a cheap regression net for encoding changes.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
package harness
