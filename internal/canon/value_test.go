package canon

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortedKeysASCII(t *testing.T) {
	obj := Obj{"b": Int(1), "a": Int(2), "c": Int(3)}
	assert.Equal(t, []string{"a", "b", "c"}, obj.SortedKeys())
}

func TestSortedKeysPrefix(t *testing.T) {
	// Shorter string sorts first when one is a prefix of the other.
	obj := Obj{"ab": Int(1), "a": Int(2)}
	assert.Equal(t, []string{"a", "ab"}, obj.SortedKeys())
}

func TestObjUnmarshalJSON(t *testing.T) {
	var obj Obj
	require.NoError(t, json.Unmarshal([]byte(`{"s":"x","n":12,"b":true,"a":[1,2],"o":{"k":"v"}}`), &obj))

	assert.Equal(t, Str("x"), obj["s"])
	assert.Equal(t, Int(12), obj["n"])
	assert.Equal(t, Bool(true), obj["b"])
	assert.Equal(t, Arr{Int(1), Int(2)}, obj["a"])
	assert.Equal(t, Obj{"k": Str("v")}, obj["o"])
}

func TestObjUnmarshalRejectsFloat(t *testing.T) {
	var obj Obj
	err := json.Unmarshal([]byte(`{"x":1.5}`), &obj)
	require.Error(t, err)
}

func TestObjUnmarshalRejectsNull(t *testing.T) {
	var obj Obj
	err := json.Unmarshal([]byte(`{"x":null}`), &obj)
	require.Error(t, err)
}

func TestObjUnmarshalLargeInt(t *testing.T) {
	// Integers above 2^53 must survive without float64 precision loss.
	var obj Obj
	require.NoError(t, json.Unmarshal([]byte(`{"n":9007199254740993}`), &obj))
	assert.Equal(t, Int(9007199254740993), obj["n"])
}

func TestDigestDomainSeparation(t *testing.T) {
	data := []byte(`{"a":1}`)
	assert.NotEqual(t, Digest(DomainVote, data), Digest(DomainState, data))
	assert.Equal(t, Digest(DomainVote, data), Digest(DomainVote, data))
}
