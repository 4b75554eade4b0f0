package gridtable

import (
	"context"
	"fmt"

	"github.com/ukaji3/gridtable-go/pkg/gridtable/models"
)

// keyIndex maps primary-key values to the physical rows holding them.
type keyIndex struct {
	rows map[string][]int
	// lastRow is the last row with a non-blank key cell, or 1 when there is none.
	lastRow int
}

// locateKeys scans column 1 over rows 2..rowCount and records the rows of
// every key in keys. All populated rows count towards lastRow.
func (s *Sheet) locateKeys(ctx context.Context, rowCount int, keys ...string) (keyIndex, error) {
	ix := keyIndex{rows: make(map[string][]int, len(keys)), lastRow: 1}
	if rowCount < 2 {
		return ix, nil
	}

	want := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		want[k] = struct{}{}
	}

	cells, err := s.grid.FetchRange(ctx, models.Range{R1: 2, C1: 1, R2: rowCount, C2: 1}, false)
	if err != nil {
		return ix, fmt.Errorf("fetch key column: %w", err)
	}

	for _, c := range cells {
		if c.Col != 1 || c.Value == "" {
			continue
		}
		if c.Row > ix.lastRow {
			ix.lastRow = c.Row
		}
		if _, ok := want[c.Value]; ok {
			ix.rows[c.Value] = append(ix.rows[c.Value], c.Row)
		}
	}
	return ix, nil
}

// unique returns the single row holding key.
func (ix keyIndex) unique(key string) (int, error) {
	rows := ix.rows[key]
	switch len(rows) {
	case 0:
		return 0, fmt.Errorf("%w: %q", ErrKeyNotFound, key)
	case 1:
		return rows[0], nil
	}
	return 0, fmt.Errorf("%w: %q is held by rows %v", ErrDuplicateKey, key, rows)
}

// exists reports whether any row holds key.
func (ix keyIndex) exists(key string) bool {
	return len(ix.rows[key]) > 0
}
