package votes

import (
	"context"
	"fmt"

	"github.com/roach88/scrutin/internal/canon"
)

// Entry is one result of a full-range scan: either a decoded vote or, when
// the stored bytes do not parse as a vote, the raw bytes themselves.
// Exactly one of Vote and Raw is set.
type Entry struct {
	Key  string
	Vote *Vote
	Raw  []byte
}

// ScanAll returns every world state entry in key order. Values that do not
// decode as votes are returned raw; a malformed entry never aborts the
// scan. No side effects.
func (s *Store) ScanAll(ctx context.Context) ([]Entry, error) {
	it, err := s.ws.GetStateByRange(ctx, "", "")
	if err != nil {
		return nil, fmt.Errorf("scan all: %w", err)
	}
	defer it.Close()

	var entries []Entry
	for {
		kv, err := it.Next()
		if err != nil {
			return nil, fmt.Errorf("scan all: %w", err)
		}
		if kv == nil {
			return entries, nil
		}

		v, err := Decode(kv.Value)
		if err != nil {
			entries = append(entries, Entry{Key: kv.Key, Raw: kv.Value})
			continue
		}
		entries = append(entries, Entry{Key: kv.Key, Vote: &v})
	}
}

// DeleteAll removes every world state entry. Each key gets an unguarded
// delete, so re-invoking after a partial failure is safe: keys already
// gone are simply no-ops. Not atomic as a whole - an interrupted run
// leaves the store partially emptied.
//
// Keys are collected and the scan released before any delete is issued.
// The SQLite backend runs on a single-connection pool, and a delete
// against the world state while the scan still holds the connection
// would block on it.
func (s *Store) DeleteAll(ctx context.Context) error {
	keys, err := s.allKeys(ctx)
	if err != nil {
		return fmt.Errorf("delete all: %w", err)
	}

	for _, key := range keys {
		if err := s.ws.DeleteState(ctx, key); err != nil {
			return fmt.Errorf("delete all %q: %w", key, err)
		}
	}

	s.log.Debug("store emptied", "deleted", len(keys))
	return nil
}

// allKeys drains a full-range scan into a key slice and closes the
// iterator before returning.
func (s *Store) allKeys(ctx context.Context) ([]string, error) {
	it, err := s.ws.GetStateByRange(ctx, "", "")
	if err != nil {
		return nil, err
	}
	defer it.Close()

	var keys []string
	for {
		kv, err := it.Next()
		if err != nil {
			return nil, err
		}
		if kv == nil {
			return keys, nil
		}
		keys = append(keys, kv.Key)
	}
}

// Tally counts votes per candidate ID. Malformed entries are logged and
// skipped; they contribute to no count and never abort the tally. The
// result is built fresh on each call and is independent of key order.
func (s *Store) Tally(ctx context.Context) (map[string]int, error) {
	it, err := s.ws.GetStateByRange(ctx, "", "")
	if err != nil {
		return nil, fmt.Errorf("tally: %w", err)
	}
	defer it.Close()

	counts := make(map[string]int)
	for {
		kv, err := it.Next()
		if err != nil {
			return nil, fmt.Errorf("tally: %w", err)
		}
		if kv == nil {
			return counts, nil
		}

		v, err := Decode(kv.Value)
		if err != nil {
			s.log.Warn("skipping malformed record", "key", kv.Key, "error", err)
			continue
		}
		counts[v.CandidateID]++
	}
}

// Fingerprint returns a domain-separated SHA-256 digest over the canonical
// encoding of the full ordered state. Replicas holding identical world
// state compute identical fingerprints regardless of how the state was
// built. The empty store has a well-defined fingerprint.
//
// Malformed values are included as raw strings so that replicas disagree
// when their corruption differs.
func (s *Store) Fingerprint(ctx context.Context) (string, error) {
	it, err := s.ws.GetStateByRange(ctx, "", "")
	if err != nil {
		return "", fmt.Errorf("fingerprint: %w", err)
	}
	defer it.Close()

	state := canon.Arr{}
	for {
		kv, err := it.Next()
		if err != nil {
			return "", fmt.Errorf("fingerprint: %w", err)
		}
		if kv == nil {
			break
		}

		state = append(state, canon.Obj{
			"key":   canon.Str(kv.Key),
			"value": canon.Str(string(kv.Value)),
		})
	}

	data, err := canon.Marshal(state)
	if err != nil {
		return "", fmt.Errorf("fingerprint: %w", err)
	}
	return canon.Digest(canon.DomainState, data), nil
}
