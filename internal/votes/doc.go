// Package votes implements the ledger-backed vote record store.
//
// One record per voter: the voter ID is the world state key, the value is
// the canonical JSON encoding of the vote. Every operation re-reads world
// state; nothing is cached.
//
// # Critical Patterns
//
// CP-1: Existence-Guarded Mutation
//   - Register requires the voter to be absent (ALREADY_EXISTS otherwise)
//   - Read/Update/Delete require the voter to be present (NOT_FOUND otherwise)
//   - Guard violations never mutate state and never degrade to upserts
//
// CP-2: Canonical Encoding Only
//   - Encoded bytes are committed to a replicated, hash-verified ledger;
//     any encoding non-determinism diverges state across replicas
//
// CP-3: Malformed Records Never Abort Bulk Reads
//   - ScanAll substitutes the raw bytes for an undecodable value
//   - Tally logs and skips it (no count, no failure)
//
// Atomicity of a single operation is the host transaction's concern: the
// store performs no locking, retries, or isolation of its own.
package votes
