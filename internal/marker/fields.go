package marker

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// GeoKey is reserved for the coordinate slot and never stored in Fields.
const GeoKey = "geo"

// Fields is a string-keyed map that preserves insertion order, so that
// generated output is deterministic and follows the source document.
//
// Keys are lower-cased on Set. Values are strings for XML/KML-derived data
// and arbitrary JSON values (numbers, booleans, nested structures) for
// GeoJSON-derived data.
type Fields struct {
	keys   []string
	values map[string]any
}

// NewFields returns an empty field map.
func NewFields() *Fields {
	return &Fields{values: make(map[string]any)}
}

// Set stores a value under the lower-cased key, appending the key to the
// order on first insertion. The reserved "geo" key is silently ignored.
func (f *Fields) Set(key string, value any) {
	key = strings.ToLower(key)
	if key == GeoKey {
		return
	}
	if _, ok := f.values[key]; !ok {
		f.keys = append(f.keys, key)
	}
	f.values[key] = value
}

// Get returns the value stored under the lower-cased key.
func (f *Fields) Get(key string) (any, bool) {
	v, ok := f.values[strings.ToLower(key)]
	return v, ok
}

// GetString returns the text form of the value under key, or "" when the
// key is absent.
func (f *Fields) GetString(key string) string {
	v, ok := f.Get(key)
	if !ok {
		return ""
	}
	return ValueString(v)
}

// Delete removes a key and its position in the order.
func (f *Fields) Delete(key string) {
	key = strings.ToLower(key)
	if _, ok := f.values[key]; !ok {
		return
	}
	delete(f.values, key)
	for i, k := range f.keys {
		if k == key {
			f.keys = append(f.keys[:i], f.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order.
func (f *Fields) Keys() []string {
	out := make([]string, len(f.keys))
	copy(out, f.keys)
	return out
}

// Len returns the number of stored fields.
func (f *Fields) Len() int {
	return len(f.keys)
}

// Clone returns an independent copy, letting renderers rename entries
// without mutating the parsed collection.
func (f *Fields) Clone() *Fields {
	c := NewFields()
	for _, k := range f.keys {
		c.Set(k, f.values[k])
	}
	return c
}

// MarshalJSON emits the fields as a JSON object in insertion order.
func (f *Fields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range f.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		value, err := json.Marshal(f.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ValueString renders a field value as text for XML/KML output.
func ValueString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return ""
	default:
		data, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(data)
	}
}

// IsEmptyValue reports whether a field value is falsy: nil, empty string,
// zero number, or false. KML rendering skips such values.
func IsEmptyValue(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case float64:
		return t == 0
	case bool:
		return !t
	default:
		return false
	}
}
