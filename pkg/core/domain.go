// Package core holds the value model and contracts shared by the sfio adapters.
package core

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Map is the key-value mapping produced by every structured reader.
// Keys keep the order in which they were first set.
type Map = orderedmap.OrderedMap[string, any]

// Rows is the CSV representation: an ordered list of rows of cells.
type Rows = [][]string

// NewMap creates an empty Map.
func NewMap() *Map {
	return orderedmap.New[string, any]()
}

// MapOf builds a Map from alternating key/value arguments.
// It panics if a key is not a string or a value is missing, like a composite literal would
// fail to compile.
func MapOf(kv ...any) *Map {
	if len(kv)%2 != 0 {
		panic("core.MapOf: odd number of arguments")
	}
	m := NewMap()
	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			panic(fmt.Sprintf("core.MapOf: key %v is not a string", kv[i]))
		}
		m.Set(k, kv[i+1])
	}
	return m
}

// Keys returns the keys of m in order.
func Keys(m *Map) []string {
	keys := make([]string, 0, m.Len())
	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// AsMap accepts the mapping shapes callers hand to writers and returns them as a Map.
// Plain Go maps are taken in sorted key order.
func AsMap(v any) (*Map, bool) {
	switch m := v.(type) {
	case *Map:
		return m, m != nil
	case map[string]any:
		out := NewMap()
		for _, k := range sortedKeys(m) {
			out.Set(k, m[k])
		}
		return out, true
	case map[string]string:
		out := NewMap()
		for _, k := range sortedKeys(m) {
			out.Set(k, m[k])
		}
		return out, true
	}
	return nil, false
}

// ToPlain converts ordered maps to map[string]any and json.Number to int64 or float64,
// recursively. Encoders that only understand builtin Go types consume its output.
func ToPlain(v any) any {
	switch val := v.(type) {
	case *Map:
		out := make(map[string]any, val.Len())
		for pair := val.Oldest(); pair != nil; pair = pair.Next() {
			out[pair.Key] = ToPlain(pair.Value)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = ToPlain(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = ToPlain(item)
		}
		return out
	case json.Number:
		if i, err := strconv.ParseInt(string(val), 10, 64); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(string(val), 64); err == nil {
			return f
		}
		return val
	default:
		return v
	}
}

// FromPlain converts map[string]any values into ordered Maps with sorted keys, recursively.
func FromPlain(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := NewMap()
		for _, k := range sortedKeys(val) {
			out.Set(k, FromPlain(val[k]))
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = FromPlain(item)
		}
		return out
	case []map[string]any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = FromPlain(item)
		}
		return out
	default:
		return v
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
