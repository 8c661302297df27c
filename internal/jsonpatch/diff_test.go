package jsonpatch

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, s string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(s), &v))
	return v
}

func TestDiffBothObjects(t *testing.T) {
	a := decode(t, `{"keep":1,"gone":true,"lead":null}`)
	b := decode(t, `{"keep":1,"lead":{"name":"acme"},"new":"x"}`)

	fwd, bwd := DiffBoth(a, b, "")
	assert.Equal(t, []Op{
		removeOp("/gone"),
		replaceOp("/lead", map[string]any{"name": "acme"}),
		addOp("/new", "x"),
	}, fwd)
	assert.Equal(t, []Op{
		addOp("/gone", true),
		replaceOp("/lead", nil),
		removeOp("/new"),
	}, bwd)
}

func TestDiffArrays(t *testing.T) {
	a := decode(t, `[1,2,3]`)
	b := decode(t, `[1,5]`)

	fwd, bwd := DiffBoth(a, b, "/xs")
	assert.Equal(t, []Op{replaceOp("/xs/1", 5.0), removeOp("/xs/2")}, fwd)
	assert.Equal(t, []Op{replaceOp("/xs/1", 2.0), addOp("/xs/2", 3.0)}, bwd)
}

func TestDiffTypeChange(t *testing.T) {
	fwd := Diff(decode(t, `{"a":[1]}`), decode(t, `{"a":{"b":1}}`), "")
	assert.Equal(t, []Op{replaceOp("/a", map[string]any{"b": 1.0})}, fwd)
}

func TestDiffEscapesKeys(t *testing.T) {
	fwd := Diff(decode(t, `{}`), decode(t, `{"a/b~c":1}`), "")
	require.Len(t, fwd, 1)
	assert.Equal(t, "/a~1b~0c", fwd[0].Path)
}

func TestBetweenEncodesNullValues(t *testing.T) {
	type doc struct {
		Lead *string `json:"lead"`
	}
	name := "acme"
	fwd, bwd, err := Between(doc{}, doc{Lead: &name})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"op":"replace","path":"/lead","value":"acme"}]`, string(fwd))
	assert.JSONEq(t, `[{"op":"replace","path":"/lead","value":null}]`, string(bwd))

	fwd, bwd, err = Between(doc{}, doc{})
	require.NoError(t, err)
	assert.Equal(t, "[]", string(fwd))
	assert.Equal(t, "[]", string(bwd))
}

func TestRemoveOmitsValue(t *testing.T) {
	raw, err := json.Marshal(removeOp("/x"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"op":"remove","path":"/x"}`, string(raw))
}
