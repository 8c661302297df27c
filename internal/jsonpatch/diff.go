// Package jsonpatch computes RFC 6902 patches between two JSON documents.
// The engine uses it to record how each operation changed the hierarchy
// state, forwards and backwards.
package jsonpatch

import (
	"sort"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

type Op struct {
	Op    string
	Path  string
	Value any
}

// MarshalJSON keeps an explicit null value on add and replace; remove carries
// no value member.
func (o Op) MarshalJSON() ([]byte, error) {
	if o.Op == "remove" {
		return json.Marshal(struct {
			Op   string `json:"op"`
			Path string `json:"path"`
		}{o.Op, o.Path})
	}
	return json.Marshal(struct {
		Op    string `json:"op"`
		Path  string `json:"path"`
		Value any    `json:"value"`
	}{o.Op, o.Path, o.Value})
}

// Between marshals a and b, diffs the generic documents and returns both
// patches encoded. An unchanged document yields "[]" twice.
func Between(a, b any) (fwd, bwd json.RawMessage, err error) {
	da, err := generic(a)
	if err != nil {
		return nil, nil, err
	}
	db, err := generic(b)
	if err != nil {
		return nil, nil, err
	}
	f, r := DiffBoth(da, db, "")
	if fwd, err = encode(f); err != nil {
		return nil, nil, err
	}
	if bwd, err = encode(r); err != nil {
		return nil, nil, err
	}
	return fwd, bwd, nil
}

func generic(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func encode(ops []Op) (json.RawMessage, error) {
	if len(ops) == 0 {
		return json.RawMessage("[]"), nil
	}
	return json.Marshal(ops)
}

// Diff returns the patch turning a into b. Both must be generic JSON values
// (maps, slices, primitives) as produced by json.Unmarshal into any.
func Diff(a, b any, path string) []Op {
	fwd, _ := DiffBoth(a, b, path)
	return fwd
}

// DiffBoth computes forward (a to b) and backward (b to a) patches in one walk.
func DiffBoth(a, b any, path string) (fwd, bwd []Op) {
	if a == nil && b == nil {
		return nil, nil
	}
	if a == nil || b == nil {
		return []Op{replaceOp(path, b)}, []Op{replaceOp(path, a)}
	}

	aMap, aIsMap := a.(map[string]any)
	bMap, bIsMap := b.(map[string]any)
	if aIsMap && bIsMap {
		return diffObjects(aMap, bMap, path)
	}

	aArr, aIsArr := a.([]any)
	bArr, bIsArr := b.([]any)
	if aIsArr && bIsArr {
		return diffArrays(aArr, bArr, path)
	}

	if aIsMap || bIsMap || aIsArr || bIsArr || a != b {
		return []Op{replaceOp(path, b)}, []Op{replaceOp(path, a)}
	}
	return nil, nil
}

func diffObjects(a, b map[string]any, path string) (fwd, bwd []Op) {
	for _, k := range sortedKeys(a) {
		if _, ok := b[k]; !ok {
			childPath := path + "/" + escapeKey(k)
			fwd = append(fwd, removeOp(childPath))
			bwd = append(bwd, addOp(childPath, a[k]))
		}
	}

	for _, k := range sortedKeys(b) {
		childPath := path + "/" + escapeKey(k)
		av, inA := a[k]
		if !inA {
			fwd = append(fwd, addOp(childPath, b[k]))
			bwd = append(bwd, removeOp(childPath))
			continue
		}
		subFwd, subBwd := DiffBoth(av, b[k], childPath)
		fwd = append(fwd, subFwd...)
		bwd = append(bwd, subBwd...)
	}
	return fwd, bwd
}

func diffArrays(a, b []any, path string) (fwd, bwd []Op) {
	common := min(len(a), len(b))

	for i := 0; i < common; i++ {
		subFwd, subBwd := DiffBoth(a[i], b[i], path+"/"+strconv.Itoa(i))
		fwd = append(fwd, subFwd...)
		bwd = append(bwd, subBwd...)
	}

	// removals run from the tail so earlier indexes stay valid
	for i := len(a) - 1; i >= common; i-- {
		fwd = append(fwd, removeOp(path+"/"+strconv.Itoa(i)))
	}
	for i := common; i < len(a); i++ {
		bwd = append(bwd, addOp(path+"/"+strconv.Itoa(i), a[i]))
	}

	for i := common; i < len(b); i++ {
		fwd = append(fwd, addOp(path+"/"+strconv.Itoa(i), b[i]))
	}
	for i := len(b) - 1; i >= common; i-- {
		bwd = append(bwd, removeOp(path+"/"+strconv.Itoa(i)))
	}
	return fwd, bwd
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func replaceOp(path string, value any) Op {
	return Op{Op: "replace", Path: path, Value: value}
}

func addOp(path string, value any) Op {
	return Op{Op: "add", Path: path, Value: value}
}

func removeOp(path string) Op {
	return Op{Op: "remove", Path: path}
}

// escapeKey escapes a JSON Pointer token per RFC 6901.
func escapeKey(s string) string {
	s = strings.ReplaceAll(s, "~", "~0")
	s = strings.ReplaceAll(s, "/", "~1")
	return s
}
