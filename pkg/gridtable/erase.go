package gridtable

import (
	"context"
	"fmt"

	"github.com/ukaji3/gridtable-go/pkg/gridtable/models"
)

// ClearByRowNumber blanks every cell of physical row n. The header row
// cannot be cleared. A row outside the grid is a no-op.
func (s *Sheet) ClearByRowNumber(ctx context.Context, n int) (models.UpdateResult, error) {
	if n <= 1 {
		return models.UpdateResult{}, s.fail("clear", fmt.Errorf("%w: %d", ErrInvalidRow, n))
	}
	_, cols, err := s.grid.Dimensions(ctx)
	if err != nil {
		return models.UpdateResult{}, s.fail("clear", fmt.Errorf("grid dimensions: %w", err))
	}
	res, err := s.clearRow(ctx, n, cols)
	if err != nil {
		return models.UpdateResult{}, s.fail("clear", err)
	}
	return res, nil
}

// ClearByKey blanks every row whose primary key equals key.
// No matching row is a no-op. On failure the result still counts the rows
// cleared before it.
func (s *Sheet) ClearByKey(ctx context.Context, key string) (models.UpdateResult, error) {
	header, rows, cols, err := s.header(ctx)
	if err != nil {
		return models.UpdateResult{}, s.fail("clear", err)
	}
	if err := requireKeyColumn(header); err != nil {
		return models.UpdateResult{}, s.fail("clear", err)
	}
	ix, err := s.locateKeys(ctx, rows, key)
	if err != nil {
		return models.UpdateResult{}, s.fail("clear", err)
	}
	if len(ix.rows[key]) > 1 {
		s.log.WarnContext(ctx, "clearing key held by more than one row", "key", key, "rows", ix.rows[key])
	}

	var total models.UpdateResult
	for _, row := range ix.rows[key] {
		res, err := s.clearRow(ctx, row, cols)
		if err != nil {
			return total, s.fail("clear", err)
		}
		total.Add(res)
	}
	return total, nil
}

func (s *Sheet) clearRow(ctx context.Context, row, cols int) (models.UpdateResult, error) {
	cells, err := s.fetchRow(ctx, row, cols)
	if err != nil {
		return models.UpdateResult{}, err
	}
	if len(cells) == 0 {
		return models.UpdateResult{}, nil
	}

	var batch []models.Cell
	for _, c := range cells {
		if c.Value != "" {
			batch = append(batch, models.Cell{Row: c.Row, Col: c.Col})
		}
	}
	if err := s.write(ctx, batch); err != nil {
		return models.UpdateResult{}, err
	}
	s.log.DebugContext(ctx, "row cleared", "row", row, "cells", len(batch))
	return models.UpdateResult{UpdatedRowCount: 1, UpdatedCellCount: len(batch)}, nil
}
