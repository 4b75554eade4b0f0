package grid

import (
	"context"
	"fmt"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/ukaji3/gridtable-go/pkg/gridtable/models"
)

// Memory is a fixed-size in-memory Grid. It is safe for concurrent use.
type Memory struct {
	rows  int
	cols  int
	cells *xsync.MapOf[models.Addr, string]
}

// NewMemory creates an empty grid of rows x cols cells.
func NewMemory(rows, cols int) *Memory {
	return &Memory{
		rows:  rows,
		cols:  cols,
		cells: xsync.NewMapOf[models.Addr, string](),
	}
}

// NewMemoryFromRows creates a grid sized rows x cols and fills it from values,
// where values[i][j] lands at row i+1, column j+1.
func NewMemoryFromRows(rows, cols int, values [][]string) *Memory {
	m := NewMemory(rows, cols)
	for i, row := range values {
		for j, v := range row {
			if v != "" && i < rows && j < cols {
				m.cells.Store(models.Addr{Row: i + 1, Col: j + 1}, v)
			}
		}
	}
	return m
}

// Dimensions implements Grid.
func (m *Memory) Dimensions(context.Context) (int, int, error) {
	return m.rows, m.cols, nil
}

// FetchRange implements Grid.
func (m *Memory) FetchRange(ctx context.Context, r models.Range, includeEmpty bool) ([]models.Cell, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r = r.Clamp(m.rows, m.cols)
	if r.Empty() {
		return nil, nil
	}

	var cells []models.Cell
	for row := r.R1; row <= r.R2; row++ {
		for col := r.C1; col <= r.C2; col++ {
			v, _ := m.cells.Load(models.Addr{Row: row, Col: col})
			if v == "" && !includeEmpty {
				continue
			}
			cells = append(cells, models.Cell{Row: row, Col: col, Value: v})
		}
	}
	return cells, nil
}

// WriteBatch implements Grid. The whole batch is checked before any cell is stored.
func (m *Memory) WriteBatch(ctx context.Context, cells []models.Cell) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, c := range cells {
		if c.Row < 1 || c.Row > m.rows || c.Col < 1 || c.Col > m.cols {
			return fmt.Errorf("cell (%d,%d) outside %dx%d grid", c.Row, c.Col, m.rows, m.cols)
		}
	}
	for _, c := range cells {
		if c.Value == "" {
			m.cells.Delete(c.Addr())
			continue
		}
		m.cells.Store(c.Addr(), c.Value)
	}
	return nil
}

// Value returns the value at (row, col).
func (m *Memory) Value(row, col int) string {
	v, _ := m.cells.Load(models.Addr{Row: row, Col: col})
	return v
}

// Rows renders the grid as a dense matrix trimmed to the last non-empty row.
func (m *Memory) Rows() [][]string {
	last := 0
	m.cells.Range(func(a models.Addr, v string) bool {
		if a.Row > last {
			last = a.Row
		}
		return true
	})
	out := make([][]string, last)
	for i := range out {
		out[i] = make([]string, m.cols)
	}
	m.cells.Range(func(a models.Addr, v string) bool {
		out[a.Row-1][a.Col-1] = v
		return true
	})
	return out
}
