package schema

import (
	json "github.com/goccy/go-json"
)

// Fragment is a single JSON Schema object with its keys in document order.
// Nested objects are themselves Fragments; nested arrays are []any; scalars
// are string, bool, json.Number or nil.
type Fragment struct {
	keys   []string
	values map[string]any
}

// NewFragment returns an empty fragment. Decoders and tests build
// fragments through Set; engine code only reads them.
func NewFragment() *Fragment {
	return &Fragment{values: make(map[string]any)}
}

// Set stores a value under key, appending the key to the order on first
// insertion. It is intended for decoders; fragments handed to the engine
// are treated as immutable.
func (f *Fragment) Set(key string, value any) {
	if _, ok := f.values[key]; !ok {
		f.keys = append(f.keys, key)
	}
	f.values[key] = value
}

// Len returns the number of keys.
func (f *Fragment) Len() int {
	if f == nil {
		return 0
	}
	return len(f.keys)
}

// Keys returns the keys in document order. The returned slice is shared;
// callers must not modify it.
func (f *Fragment) Keys() []string {
	if f == nil {
		return nil
	}
	return f.keys
}

// Get returns the raw value stored under key.
func (f *Fragment) Get(key string) (any, bool) {
	if f == nil {
		return nil, false
	}
	v, ok := f.values[key]
	return v, ok
}

// Has reports whether key is present.
func (f *Fragment) Has(key string) bool {
	_, ok := f.Get(key)
	return ok
}

// String returns the string stored under key.
func (f *Fragment) String(key string) (string, bool) {
	v, ok := f.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Bool returns the bool stored under key, false when absent or not a bool.
func (f *Fragment) Bool(key string) bool {
	v, ok := f.Get(key)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// Number returns the JSON number stored under key.
func (f *Fragment) Number(key string) (json.Number, bool) {
	v, ok := f.Get(key)
	if !ok {
		return "", false
	}
	n, ok := v.(json.Number)
	return n, ok
}

// Float returns the number stored under key as a float64.
func (f *Fragment) Float(key string) (float64, bool) {
	n, ok := f.Number(key)
	if !ok {
		return 0, false
	}
	fv, err := n.Float64()
	if err != nil {
		return 0, false
	}
	return fv, true
}

// Int returns the number stored under key as an int.
func (f *Fragment) Int(key string) (int, bool) {
	n, ok := f.Number(key)
	if !ok {
		return 0, false
	}
	iv, err := n.Int64()
	if err != nil {
		return 0, false
	}
	return int(iv), true
}

// Object returns the nested fragment stored under key.
func (f *Fragment) Object(key string) (*Fragment, bool) {
	v, ok := f.Get(key)
	if !ok {
		return nil, false
	}
	sub, ok := v.(*Fragment)
	return sub, ok
}

// Array returns the array stored under key.
func (f *Fragment) Array(key string) ([]any, bool) {
	v, ok := f.Get(key)
	if !ok {
		return nil, false
	}
	arr, ok := v.([]any)
	return arr, ok
}

// Plain converts a decoded schema value into plain Go data: fragments
// become map[string]any (order is lost), arrays are converted element-wise
// and scalars pass through. Used when a schema-held value, such as a
// "default", must be loaded into the node tree like instance data.
func Plain(v any) any {
	switch t := v.(type) {
	case *Fragment:
		out := make(map[string]any, t.Len())
		for _, k := range t.Keys() {
			raw, _ := t.Get(k)
			out[k] = Plain(raw)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = Plain(e)
		}
		return out
	default:
		return v
	}
}
