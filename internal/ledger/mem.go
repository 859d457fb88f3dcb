package ledger

import (
	"context"
	"sort"
	"sync"
)

// Mem is an in-memory WorldState for tests and ephemeral runs.
//
// All methods are safe for concurrent use. Range scans iterate over a
// snapshot of the keys taken when the iterator is opened, so mutations
// made during iteration are not visible to that iterator.
type Mem struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewMem creates an empty in-memory world state.
func NewMem() *Mem {
	return &Mem{entries: make(map[string][]byte)}
}

// GetState returns the value for key, or (nil, nil) if absent.
func (m *Mem) GetState(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.entries[key]
	if !ok {
		return nil, nil
	}
	// Copy so callers cannot mutate stored state.
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// PutState stores value under key, replacing any previous value.
func (m *Mem) PutState(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	m.entries[key] = stored
	return nil
}

// DeleteState removes key. Deleting an absent key is a no-op.
func (m *Mem) DeleteState(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, key)
	return nil
}

// GetStateByRange scans [startKey, endKey) in lexicographic key order.
// Empty bounds cover the entire keyspace.
func (m *Mem) GetStateByRange(_ context.Context, startKey, endKey string) (Iterator, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.entries))
	for k := range m.entries {
		if startKey != "" && k < startKey {
			continue
		}
		if endKey != "" && k >= endKey {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	snapshot := make([]KV, len(keys))
	for i, k := range keys {
		value := make([]byte, len(m.entries[k]))
		copy(value, m.entries[k])
		snapshot[i] = KV{Key: k, Value: value}
	}

	return &memIterator{entries: snapshot}, nil
}

type memIterator struct {
	entries []KV
	pos     int
	closed  bool
}

func (it *memIterator) Next() (*KV, error) {
	if it.closed || it.pos >= len(it.entries) {
		return nil, nil
	}
	kv := it.entries[it.pos]
	it.pos++
	return &kv, nil
}

func (it *memIterator) Close() error {
	it.closed = true
	return nil
}
