// Package canon provides canonical JSON encoding for ledger state.
//
// The ledger commits raw value bytes and replicates them for independent
// verification, so every replica must produce byte-identical encodings for
// the same logical record. Package canon guarantees this with RFC 8785
// canonical JSON:
//   - Object keys sorted by UTF-16 code units at every nesting level
//   - NFC-normalized strings, no HTML escaping
//   - No floats, no null (both are determinism hazards and are rejected)
//   - Fixed separators, no incidental whitespace
//
// This package contains encoding primitives only. All other internal
// packages may import canon; canon imports nothing internal.
package canon
