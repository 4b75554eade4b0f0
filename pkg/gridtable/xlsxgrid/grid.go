// Package xlsxgrid implements the grid collaborator on top of a sheet of an
// .xlsx workbook.
package xlsxgrid

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/ukaji3/gridtable-go/pkg/gridtable/models"
	"github.com/xuri/excelize/v2"
)

// ErrSheetNotFound indicates the workbook has no sheet with the requested name.
var ErrSheetNotFound = errors.New("sheet not found")

const (
	// DefaultMinRows matches the row count of a freshly created online sheet.
	DefaultMinRows = 1000
	// DefaultMinCols matches the column count (A..Z) of a freshly created online sheet.
	DefaultMinCols = 26
)

// Options configures a Grid.
type Options struct {
	// Sheet is the sheet to expose. Empty selects the first sheet.
	Sheet string
	// MinRows is the smallest row count the grid reports, so rows past the
	// data can be addressed by appends. Zero means DefaultMinRows.
	MinRows int
	// MinCols is the smallest column count the grid reports. Zero means DefaultMinCols.
	MinCols int
}

// Grid exposes one sheet of a workbook as addressed cells.
type Grid struct {
	mu    sync.Mutex
	f     *excelize.File
	path  string
	sheet string
	opts  Options
}

// Open opens the workbook at path.
func Open(path string, opts Options) (*Grid, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	g, err := New(f, opts)
	if err != nil {
		f.Close()
		return nil, err
	}
	g.path = path
	return g, nil
}

// New wraps an already open workbook.
func New(f *excelize.File, opts Options) (*Grid, error) {
	if opts.MinRows <= 0 {
		opts.MinRows = DefaultMinRows
	}
	if opts.MinCols <= 0 {
		opts.MinCols = DefaultMinCols
	}

	sheet := opts.Sheet
	if sheet == "" {
		list := f.GetSheetList()
		if len(list) == 0 {
			return nil, ErrSheetNotFound
		}
		sheet = list[0]
	}
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("%w: %q in %v", ErrSheetNotFound, sheet, f.GetSheetList())
	}

	return &Grid{f: f, sheet: sheet, opts: opts}, nil
}

// Sheet returns the name of the exposed sheet.
func (g *Grid) Sheet() string {
	return g.sheet
}

// Dimensions implements grid.Grid. The extent is the larger of the sheet's
// declared dimension, its data bounds and the configured minimum.
func (g *Grid) Dimensions(ctx context.Context) (int, int, error) {
	if err := ctx.Err(); err != nil {
		return 0, 0, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.dimensions()
}

func (g *Grid) dimensions() (int, int, error) {
	rows, cols := g.opts.MinRows, g.opts.MinCols

	dim, err := g.f.GetSheetDimension(g.sheet)
	if err != nil {
		return 0, 0, err
	}
	if r := parseRange(dim); r != nil {
		rows, cols = max(rows, r.R2), max(cols, r.C2)
	}

	data, err := g.f.GetRows(g.sheet)
	if err != nil {
		return 0, 0, err
	}
	lastRow, lastCol := dataExtent(data)
	return max(rows, lastRow), max(cols, lastCol), nil
}

// FetchRange implements grid.Grid.
func (g *Grid) FetchRange(ctx context.Context, r models.Range, includeEmpty bool) ([]models.Cell, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	rows, cols, err := g.dimensions()
	if err != nil {
		return nil, err
	}
	r = r.Clamp(rows, cols)
	if r.Empty() {
		return nil, nil
	}

	data, err := g.f.GetRows(g.sheet)
	if err != nil {
		return nil, err
	}

	var cells []models.Cell
	for row := r.R1; row <= r.R2; row++ {
		var values []string
		if row <= len(data) {
			values = data[row-1]
		}
		for col := r.C1; col <= r.C2; col++ {
			value := ""
			if col <= len(values) {
				value = values[col-1]
			}
			if value == "" && !includeEmpty {
				continue
			}
			cells = append(cells, models.Cell{Row: row, Col: col, Value: value})
		}
	}
	return cells, nil
}

// WriteBatch implements grid.Grid. Every address is resolved before the
// first write, and previous values are restored if a write fails.
func (g *Grid) WriteBatch(ctx context.Context, cells []models.Cell) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	names := make([]string, len(cells))
	prev := make([]any, len(cells))
	for i, c := range cells {
		name, err := excelize.CoordinatesToCellName(c.Col, c.Row)
		if err != nil {
			return err
		}
		old, err := g.snapshot(name)
		if err != nil {
			return err
		}
		names[i], prev[i] = name, old
	}

	for i, c := range cells {
		if err := g.f.SetCellStr(g.sheet, names[i], c.Value); err != nil {
			err = fmt.Errorf("write %s: %w", names[i], err)
			return errors.Join(err, g.restore(names[:i], prev[:i]))
		}
	}
	return nil
}

// snapshot returns a cell's stored value typed so that SetCellValue writes
// it back unchanged: numbers as float64, booleans as bool, anything else as
// its raw text.
func (g *Grid) snapshot(name string) (any, error) {
	raw, err := g.f.GetCellValue(g.sheet, name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}
	typ, err := g.f.GetCellType(g.sheet, name)
	if err != nil {
		return nil, err
	}

	switch typ {
	case excelize.CellTypeBool:
		return raw == "1" || raw == "TRUE", nil
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		// numbers are stored without a type attribute
		if raw != "" {
			if n, err := strconv.ParseFloat(raw, 64); err == nil {
				return n, nil
			}
		}
	}
	return raw, nil
}

// restore writes prev back in reverse order and reports every cell it
// could not restore.
func (g *Grid) restore(names []string, prev []any) error {
	var errs []error
	for j := len(names) - 1; j >= 0; j-- {
		if err := g.f.SetCellValue(g.sheet, names[j], prev[j]); err != nil {
			errs = append(errs, fmt.Errorf("restore %s: %w", names[j], err))
		}
	}
	return errors.Join(errs...)
}

// Save writes the workbook back to the path it was opened from.
func (g *Grid) Save() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.path == "" {
		return errors.New("workbook has no path; use SaveAs")
	}
	return g.f.Save()
}

// SaveAs writes the workbook to path.
func (g *Grid) SaveAs(path string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.f.SaveAs(path); err != nil {
		return err
	}
	g.path = path
	return nil
}

// Close releases the workbook.
func (g *Grid) Close() error {
	return g.f.Close()
}
