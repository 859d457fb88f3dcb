package ledger

import "context"

// KV is one world state entry.
type KV struct {
	Key   string
	Value []byte
}

// Iterator is a single-pass forward iterator over a key range.
//
// Next returns the next entry in key order, or nil when the range is
// exhausted. Iterators are not restartable. Callers must call Close on
// every exit path, including early returns on error.
type Iterator interface {
	Next() (*KV, error)
	Close() error
}

// WorldState is the ordered key-value map backing the vote ledger.
//
// GetState returns (nil, nil) for an absent key; absence is not an error.
// DeleteState of an absent key is a no-op. GetStateByRange scans the
// half-open range [startKey, endKey) in byte-wise key order; empty bounds
// mean the entire keyspace.
//
// Snapshot isolation across concurrent mutation is the host's concern,
// not this interface's: callers must not assume mutations made while an
// iterator is open become visible mid-iteration.
type WorldState interface {
	GetState(ctx context.Context, key string) ([]byte, error)
	PutState(ctx context.Context, key string, value []byte) error
	DeleteState(ctx context.Context, key string) error
	GetStateByRange(ctx context.Context, startKey, endKey string) (Iterator, error)
}
