package models

import (
	"bytes"

	"github.com/goccy/go-json"
)

// Patch is caller input for insert and update, keyed by header name.
type Patch map[string]string

// Record is one logical data row keyed by header name.
// Keys are kept in header order so that rendering is stable.
type Record struct {
	keys   []string
	values map[string]string
}

// NewRecord returns a record holding every non-blank key of h set to "".
func NewRecord(h Header) Record {
	keys := h.Keys()
	values := make(map[string]string, len(keys))
	for _, k := range keys {
		values[k] = ""
	}
	return Record{keys: keys, values: values}
}

// RecordOf builds a record for h from a patch. Keys missing from the patch
// are set to "", keys the header does not know are ignored.
func RecordOf(h Header, p Patch) Record {
	r := NewRecord(h)
	for k, v := range p {
		r.Set(k, v)
	}
	return r
}

// Keys returns the record's keys in header order.
func (r Record) Keys() []string {
	return append([]string(nil), r.keys...)
}

// Len returns the number of keys.
func (r Record) Len() int {
	return len(r.keys)
}

// Get returns the value for key, or "" when the key is unknown.
func (r Record) Get(key string) string {
	return r.values[key]
}

// Lookup returns the value for key and whether the record has that key.
func (r Record) Lookup(key string) (string, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Set assigns value to an existing key. It returns false for unknown keys.
func (r Record) Set(key, value string) bool {
	if _, ok := r.values[key]; !ok {
		return false
	}
	r.values[key] = value
	return true
}

// IsBlank reports whether every value is empty.
func (r Record) IsBlank() bool {
	for _, v := range r.values {
		if v != "" {
			return false
		}
	}
	return true
}

// Map returns a copy of the record as a plain map.
func (r Record) Map() map[string]string {
	m := make(map[string]string, len(r.values))
	for k, v := range r.values {
		m[k] = v
	}
	return m
}

// Equal reports whether both records have the same keys, order and values.
func (r Record) Equal(other Record) bool {
	if len(r.keys) != len(other.keys) {
		return false
	}
	for i, k := range r.keys {
		if other.keys[i] != k || other.values[k] != r.values[k] {
			return false
		}
	}
	return true
}

// MarshalJSON renders the record as an object in header order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
