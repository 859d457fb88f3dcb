package ledger

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// backends returns a fresh instance of every WorldState implementation.
// Both must satisfy the same contract.
func backends(t *testing.T) map[string]WorldState {
	t.Helper()

	sq, err := OpenSQLite(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sq.Close() })

	return map[string]WorldState{
		"mem":    NewMem(),
		"sqlite": sq,
	}
}

// drain collects all remaining entries from an iterator and closes it.
func drain(t *testing.T, it Iterator) []KV {
	t.Helper()
	defer it.Close()

	var out []KV
	for {
		kv, err := it.Next()
		require.NoError(t, err)
		if kv == nil {
			return out
		}
		out = append(out, *kv)
	}
}

func TestGetStateAbsent(t *testing.T) {
	for name, ws := range backends(t) {
		t.Run(name, func(t *testing.T) {
			value, err := ws.GetState(context.Background(), "missing")
			require.NoError(t, err)
			assert.Nil(t, value)
		})
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	for name, ws := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, ws.PutState(ctx, "k1", []byte("v1")))

			value, err := ws.GetState(ctx, "k1")
			require.NoError(t, err)
			assert.Equal(t, []byte("v1"), value)
		})
	}
}

func TestPutOverwrites(t *testing.T) {
	for name, ws := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, ws.PutState(ctx, "k1", []byte("old")))
			require.NoError(t, ws.PutState(ctx, "k1", []byte("new")))

			value, err := ws.GetState(ctx, "k1")
			require.NoError(t, err)
			assert.Equal(t, []byte("new"), value)
		})
	}
}

func TestDeleteState(t *testing.T) {
	for name, ws := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, ws.PutState(ctx, "k1", []byte("v1")))
			require.NoError(t, ws.DeleteState(ctx, "k1"))

			value, err := ws.GetState(ctx, "k1")
			require.NoError(t, err)
			assert.Nil(t, value)
		})
	}
}

func TestDeleteAbsentIsNoOp(t *testing.T) {
	for name, ws := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, ws.DeleteState(context.Background(), "never-written"))
		})
	}
}

func TestRangeScanFullKeyspace(t *testing.T) {
	for name, ws := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			// Insert out of order; scan must come back sorted.
			require.NoError(t, ws.PutState(ctx, "c", []byte("3")))
			require.NoError(t, ws.PutState(ctx, "a", []byte("1")))
			require.NoError(t, ws.PutState(ctx, "b", []byte("2")))

			it, err := ws.GetStateByRange(ctx, "", "")
			require.NoError(t, err)

			entries := drain(t, it)
			require.Len(t, entries, 3)
			assert.Equal(t, "a", entries[0].Key)
			assert.Equal(t, "b", entries[1].Key)
			assert.Equal(t, "c", entries[2].Key)
			assert.Equal(t, []byte("1"), entries[0].Value)
		})
	}
}

func TestRangeScanBounds(t *testing.T) {
	for name, ws := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			for _, k := range []string{"a", "b", "c", "d"} {
				require.NoError(t, ws.PutState(ctx, k, []byte(k)))
			}

			// Half-open [b, d): includes b and c, excludes d.
			it, err := ws.GetStateByRange(ctx, "b", "d")
			require.NoError(t, err)

			entries := drain(t, it)
			require.Len(t, entries, 2)
			assert.Equal(t, "b", entries[0].Key)
			assert.Equal(t, "c", entries[1].Key)
		})
	}
}

func TestRangeScanEmptyStore(t *testing.T) {
	for name, ws := range backends(t) {
		t.Run(name, func(t *testing.T) {
			it, err := ws.GetStateByRange(context.Background(), "", "")
			require.NoError(t, err)
			assert.Empty(t, drain(t, it))
		})
	}
}

func TestIteratorCloseEarly(t *testing.T) {
	for name, ws := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, ws.PutState(ctx, "a", []byte("1")))
			require.NoError(t, ws.PutState(ctx, "b", []byte("2")))

			it, err := ws.GetStateByRange(ctx, "", "")
			require.NoError(t, err)

			kv, err := it.Next()
			require.NoError(t, err)
			require.NotNil(t, kv)

			// Closing mid-scan must not error, and the backend must be
			// usable for further operations afterward.
			require.NoError(t, it.Close())

			value, err := ws.GetState(ctx, "b")
			require.NoError(t, err)
			assert.Equal(t, []byte("2"), value)
		})
	}
}

func TestMemScanIsSnapshot(t *testing.T) {
	ctx := context.Background()
	ws := NewMem()
	require.NoError(t, ws.PutState(ctx, "a", []byte("1")))

	it, err := ws.GetStateByRange(ctx, "", "")
	require.NoError(t, err)
	defer it.Close()

	// A write after the iterator opens must not appear mid-iteration.
	require.NoError(t, ws.PutState(ctx, "b", []byte("2")))

	var keys []string
	for {
		kv, err := it.Next()
		require.NoError(t, err)
		if kv == nil {
			break
		}
		keys = append(keys, kv.Key)
	}
	assert.Equal(t, []string{"a"}, keys)
}

func TestMemGetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	ws := NewMem()
	require.NoError(t, ws.PutState(ctx, "k", []byte("abc")))

	value, err := ws.GetState(ctx, "k")
	require.NoError(t, err)
	value[0] = 'X'

	again, err := ws.GetState(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}

func TestOpenSQLiteIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	first, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, first.PutState(context.Background(), "k", []byte("v")))
	require.NoError(t, first.Close())

	second, err := OpenSQLite(path)
	require.NoError(t, err)
	defer second.Close()

	value, err := second.GetState(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), value)
}
