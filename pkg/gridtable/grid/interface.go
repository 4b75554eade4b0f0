// Package grid defines the cell-range collaborator consumed by the table layer
// and provides in-memory and instrumented implementations.
package grid

import (
	"context"

	"github.com/ukaji3/gridtable-go/pkg/gridtable/models"
)

// Grid is a sheet's addressed-cell surface.
type Grid interface {
	// Dimensions returns the grid's row and column count.
	Dimensions(ctx context.Context) (rows, cols int, err error)

	// FetchRange returns the cells inside r in row-major order. Cells with an
	// empty value are omitted unless includeEmpty is set. Positions outside
	// the grid are never returned.
	FetchRange(ctx context.Context, r models.Range, includeEmpty bool) ([]models.Cell, error)

	// WriteBatch applies every (row, col, value) in cells. A failure means
	// none of the batch should be considered applied.
	WriteBatch(ctx context.Context, cells []models.Cell) error
}
