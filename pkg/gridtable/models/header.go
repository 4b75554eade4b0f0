package models

// Header is the ordered list of column keys read from row 1.
// Position i maps to column i+1. In sparse mode a position may hold "",
// which marks a column that carries no record key.
type Header []string

// Key returns the primary-key column name (the first position).
func (h Header) Key() string {
	if len(h) == 0 {
		return ""
	}
	return h[0]
}

// Width returns the number of header positions.
func (h Header) Width() int {
	return len(h)
}

// Index returns the 0-based position of key, or -1.
// Blank keys are never found.
func (h Header) Index(key string) int {
	if key == "" {
		return -1
	}
	for i, k := range h {
		if k == key {
			return i
		}
	}
	return -1
}

// Keys returns the non-blank keys in column order.
func (h Header) Keys() []string {
	keys := make([]string, 0, len(h))
	for _, k := range h {
		if k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// Equal reports whether both headers hold the same keys in the same positions.
func (h Header) Equal(other Header) bool {
	if len(h) != len(other) {
		return false
	}
	for i := range h {
		if h[i] != other[i] {
			return false
		}
	}
	return true
}
