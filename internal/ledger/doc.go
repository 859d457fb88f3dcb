// Package ledger defines the world state: the ordered key-value map that
// is the sole persistence layer for vote records.
//
// Two backends implement the WorldState interface:
//   - Mem: an in-memory ordered map for tests and ephemeral runs
//   - SQLite: a durable single-table store using WAL mode
//
// Both provide point get/put/delete and an ordered range scan. Range scans
// return a single-pass forward iterator; callers must Close it on every
// exit path or the underlying scan resource leaks.
//
// Keys are compared and ordered byte-wise (lexicographic). A half-open
// range [startKey, endKey) with empty bounds covers the entire keyspace.
//
// The world state stores opaque bytes. It never interprets values; the
// record layer above owns encoding and decoding.
package ledger
