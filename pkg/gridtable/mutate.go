package gridtable

import (
	"context"
	"fmt"

	"github.com/ukaji3/gridtable-go/pkg/gridtable/models"
)

// UpdateRow rewrites the row whose primary key equals key. The key column
// itself is never written. Only cells whose value changes are submitted.
func (s *Sheet) UpdateRow(ctx context.Context, key string, patch models.Patch, opts UpdateOptions) (models.UpdateResult, error) {
	res, err := s.updateRow(ctx, key, patch, opts)
	if err != nil {
		return models.UpdateResult{}, s.fail("update", err)
	}
	return res, nil
}

func (s *Sheet) updateRow(ctx context.Context, key string, patch models.Patch, opts UpdateOptions) (models.UpdateResult, error) {
	header, rows, _, err := s.header(ctx)
	if err != nil {
		return models.UpdateResult{}, err
	}
	if err := requireKeyColumn(header); err != nil {
		return models.UpdateResult{}, err
	}
	if err := validatePatch(header, patch); err != nil {
		return models.UpdateResult{}, err
	}
	if v, ok := patch[header.Key()]; ok && v != key {
		return models.UpdateResult{}, fmt.Errorf("%w: %q", ErrKeyImmutable, header.Key())
	}

	ix, err := s.locateKeys(ctx, rows, key)
	if err != nil {
		return models.UpdateResult{}, err
	}
	row, err := ix.unique(key)
	if err != nil {
		if ix.exists(key) {
			s.log.WarnContext(ctx, "key held by more than one row", "key", key, "rows", ix.rows[key])
		}
		return models.UpdateResult{}, err
	}

	current, err := s.fetchRow(ctx, row, header.Width())
	if err != nil {
		return models.UpdateResult{}, err
	}

	var batch []models.Cell
	for pos := 1; pos < header.Width(); pos++ {
		k := header[pos]
		if k == "" {
			continue
		}
		next, named := patch[k]
		if !named && !opts.Replace {
			continue
		}
		cell, err := cellAt(current, row, pos+1)
		if err != nil {
			return models.UpdateResult{}, err
		}
		if cell.Value != next {
			batch = append(batch, models.Cell{Row: row, Col: pos + 1, Value: next})
		}
	}

	if err := s.write(ctx, batch); err != nil {
		return models.UpdateResult{}, err
	}
	s.log.DebugContext(ctx, "row updated", "key", key, "row", row, "cells", len(batch), "replace", opts.Replace)
	return models.UpdateResult{UpdatedRowCount: 1, UpdatedCellCount: len(batch)}, nil
}

// InsertRow appends a record after the last row whose key cell is populated
// and returns the physical row it was written to. Rows freed by clearing
// are not reused. A target row with a blank key but other values is
// overwritten; a warning is logged when that happens.
func (s *Sheet) InsertRow(ctx context.Context, patch models.Patch) (int, error) {
	row, err := s.insertRow(ctx, patch)
	if err != nil {
		return 0, s.fail("insert", err)
	}
	return row, nil
}

func (s *Sheet) insertRow(ctx context.Context, patch models.Patch) (int, error) {
	header, rows, _, err := s.header(ctx)
	if err != nil {
		return 0, err
	}
	key, err := recordKey(header, patch)
	if err != nil {
		return 0, err
	}

	ix, err := s.locateKeys(ctx, rows, key)
	if err != nil {
		return 0, err
	}
	if ix.exists(key) {
		return 0, fmt.Errorf("%w: %q already exists", ErrDuplicateKey, key)
	}

	row := ix.lastRow + 1
	current, err := s.fetchRow(ctx, row, header.Width())
	if err != nil {
		return 0, err
	}
	if occupied := nonEmpty(current); len(occupied) > 0 {
		s.log.WarnContext(ctx, "insert target row is not empty", "key", key, "row", row, "cells", occupied)
	}

	var batch []models.Cell
	for pos, k := range header {
		if k == "" {
			continue
		}
		cell, err := cellAt(current, row, pos+1)
		if err != nil {
			return 0, err
		}
		if next := patch[k]; cell.Value != next {
			batch = append(batch, models.Cell{Row: row, Col: pos + 1, Value: next})
		}
	}

	if err := s.write(ctx, batch); err != nil {
		return 0, err
	}
	s.log.DebugContext(ctx, "row inserted", "key", key, "row", row, "cells", len(batch))
	return row, nil
}

// InsertRows inserts records one at a time in order and returns the rows
// they were written to. It is not atomic: on failure the returned *RowError
// names the failing record and every earlier record stays written. With
// opts.ValidateFirst all records are checked before anything is written.
func (s *Sheet) InsertRows(ctx context.Context, patches []models.Patch, opts InsertOptions) ([]int, error) {
	if len(patches) == 0 {
		return nil, nil
	}

	header, rows, _, err := s.header(ctx)
	if err != nil {
		return nil, s.fail("insert", err)
	}
	keyOf := func(p models.Patch) string { return p[header.Key()] }

	if opts.ValidateFirst {
		if err := s.validateBatch(ctx, header, rows, patches); err != nil {
			return nil, err
		}
	}

	written := make([]int, 0, len(patches))
	for i, p := range patches {
		row, err := s.InsertRow(ctx, p)
		if err != nil {
			return written, &RowError{Index: i, Key: keyOf(p), Err: err}
		}
		written = append(written, row)
	}
	return written, nil
}

// validateBatch checks every record's shape, then their keys against each
// other and the sheet, with no writes.
func (s *Sheet) validateBatch(ctx context.Context, header models.Header, rows int, patches []models.Patch) error {
	keys := make([]string, len(patches))
	first := make(map[string]int, len(patches))
	for i, p := range patches {
		key, err := recordKey(header, p)
		if err != nil {
			return &RowError{Index: i, Key: key, Err: s.fail("insert", err)}
		}
		if j, ok := first[key]; ok {
			err := fmt.Errorf("%w: %q repeats record %d", ErrDuplicateKey, key, j)
			return &RowError{Index: i, Key: key, Err: s.fail("insert", err)}
		}
		first[key] = i
		keys[i] = key
	}

	ix, err := s.locateKeys(ctx, rows, keys...)
	if err != nil {
		return s.fail("insert", err)
	}
	for i, key := range keys {
		if ix.exists(key) {
			err := fmt.Errorf("%w: %q already exists", ErrDuplicateKey, key)
			return &RowError{Index: i, Key: key, Err: s.fail("insert", err)}
		}
	}
	return nil
}

// validatePatch rejects keys the header does not have.
func validatePatch(header models.Header, patch models.Patch) error {
	for k := range patch {
		if header.Index(k) < 0 {
			return fmt.Errorf("%w: %q", ErrKeyMissing, k)
		}
	}
	return nil
}

// requireKeyColumn fails when column 1 carries no key.
func requireKeyColumn(header models.Header) error {
	if header.Key() == "" {
		return fmt.Errorf("%w: column 1 has no header", ErrKeyMissing)
	}
	return nil
}

// recordKey validates patch and returns its primary-key value.
func recordKey(header models.Header, patch models.Patch) (string, error) {
	if err := requireKeyColumn(header); err != nil {
		return "", err
	}
	if err := validatePatch(header, patch); err != nil {
		return "", err
	}
	key := patch[header.Key()]
	if key == "" {
		return "", fmt.Errorf("%w: record has no value for %q", ErrKeyMissing, header.Key())
	}
	return key, nil
}

// fetchRow returns columns 1..width of row, including empty cells.
func (s *Sheet) fetchRow(ctx context.Context, row, width int) ([]models.Cell, error) {
	cells, err := s.grid.FetchRange(ctx, models.RowRange(row, 1, width), true)
	if err != nil {
		return nil, fmt.Errorf("fetch row %d: %w", row, err)
	}
	return cells, nil
}

// nonEmpty returns the columns of cells holding a value.
func nonEmpty(cells []models.Cell) []int {
	var cols []int
	for _, c := range cells {
		if c.Value != "" {
			cols = append(cols, c.Col)
		}
	}
	return cols
}

func cellAt(cells []models.Cell, row, col int) (models.Cell, error) {
	for _, c := range cells {
		if c.Row == row && c.Col == col {
			return c, nil
		}
	}
	return models.Cell{}, fmt.Errorf("%w: row %d, column %d", ErrCellNotReturned, row, col)
}

// write submits batch as one call. Empty batches are not sent.
func (s *Sheet) write(ctx context.Context, batch []models.Cell) error {
	if len(batch) == 0 {
		return nil
	}
	if err := s.grid.WriteBatch(ctx, batch); err != nil {
		return fmt.Errorf("write %d cells: %w", len(batch), err)
	}
	return nil
}
