package xlsxgrid

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/ukaji3/gridtable-go/pkg/gridtable/models"
	"github.com/xuri/excelize/v2"
)

// newBook saves a workbook with the given values on Sheet1 and returns its path.
func newBook(t *testing.T, values map[string]string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for cell, v := range values {
		if err := f.SetCellValue("Sheet1", cell, v); err != nil {
			t.Fatalf("SetCellValue(%s) failed: %v", cell, err)
		}
	}

	path := filepath.Join(t.TempDir(), "book.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}
	return path
}

func TestOpenSheetNotFound(t *testing.T) {
	path := newBook(t, map[string]string{"A1": "id"})

	if _, err := Open(path, Options{Sheet: "Missing"}); !errors.Is(err, ErrSheetNotFound) {
		t.Fatalf("Expected ErrSheetNotFound, got %v", err)
	}
}

func TestDimensions(t *testing.T) {
	path := newBook(t, map[string]string{"A1": "id", "C4": "x"})

	g, err := Open(path, Options{MinRows: 2, MinCols: 2})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer g.Close()

	rows, cols, err := g.Dimensions(context.Background())
	if err != nil {
		t.Fatalf("Dimensions failed: %v", err)
	}
	if rows != 4 || cols != 3 {
		t.Errorf("Expected 4x3, got %dx%d", rows, cols)
	}

	g2, err := Open(path, Options{})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer g2.Close()
	rows, cols, _ = g2.Dimensions(context.Background())
	if rows != DefaultMinRows || cols != DefaultMinCols {
		t.Errorf("Expected default %dx%d, got %dx%d", DefaultMinRows, DefaultMinCols, rows, cols)
	}
}

func TestFetchRange(t *testing.T) {
	path := newBook(t, map[string]string{"A1": "id", "B1": "qty", "A2": "a1", "B3": "7"})

	g, err := Open(path, Options{MinRows: 5, MinCols: 3})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer g.Close()
	ctx := context.Background()

	cells, err := g.FetchRange(ctx, models.Range{R1: 1, C1: 1, R2: 5, C2: 3}, false)
	if err != nil {
		t.Fatalf("FetchRange failed: %v", err)
	}
	expected := []models.Cell{
		{Row: 1, Col: 1, Value: "id"},
		{Row: 1, Col: 2, Value: "qty"},
		{Row: 2, Col: 1, Value: "a1"},
		{Row: 3, Col: 2, Value: "7"},
	}
	if len(cells) != len(expected) {
		t.Fatalf("Expected %d cells, got %d: %v", len(expected), len(cells), cells)
	}
	for i := range expected {
		if cells[i] != expected[i] {
			t.Errorf("cell %d: expected %+v, got %+v", i, expected[i], cells[i])
		}
	}

	cells, err = g.FetchRange(ctx, models.RowRange(5, 1, 10), true)
	if err != nil {
		t.Fatalf("FetchRange failed: %v", err)
	}
	if len(cells) != 3 {
		t.Errorf("Expected 3 empty cells, got %v", cells)
	}
}

func TestWriteBatchAndSave(t *testing.T) {
	path := newBook(t, map[string]string{"A1": "id", "B1": "qty"})
	ctx := context.Background()

	g, err := Open(path, Options{MinRows: 10, MinCols: 2})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := g.WriteBatch(ctx, []models.Cell{{Row: 2, Col: 1, Value: "a1"}, {Row: 2, Col: 2, Value: "3"}}); err != nil {
		t.Fatalf("WriteBatch failed: %v", err)
	}
	if err := g.WriteBatch(ctx, []models.Cell{{Row: 0, Col: 1, Value: "bad"}}); err == nil {
		t.Error("Expected error for row 0")
	}
	if err := g.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	g.Close()

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Failed to reopen: %v", err)
	}
	defer f.Close()
	for cell, want := range map[string]string{"A2": "a1", "B2": "3"} {
		got, err := f.GetCellValue("Sheet1", cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s) failed: %v", cell, err)
		}
		if got != want {
			t.Errorf("%s: expected %q, got %q", cell, want, got)
		}
	}
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		input    string
		expected *models.Range
	}{
		{"$A$1:$D$10", &models.Range{R1: 1, C1: 1, R2: 10, C2: 4}},
		{"B2:C3", &models.Range{R1: 2, C1: 2, R2: 3, C2: 3}},
		{"A1", &models.Range{R1: 1, C1: 1, R2: 1, C2: 1}},
		{"", nil},
		{"nonsense", nil},
	}

	for _, tt := range tests {
		result := parseRange(tt.input)
		if (result == nil) != (tt.expected == nil) {
			t.Errorf("parseRange(%q) = %v, expected %v", tt.input, result, tt.expected)
			continue
		}
		if result != nil && *result != *tt.expected {
			t.Errorf("parseRange(%q) = %+v, expected %+v", tt.input, *result, *tt.expected)
		}
	}
}

func TestDataExtent(t *testing.T) {
	rows, cols := dataExtent([][]string{{"a"}, {}, {"", "", "c"}, {""}})
	if rows != 3 || cols != 3 {
		t.Errorf("Expected 3x3, got %dx%d", rows, cols)
	}
	if rows, cols := dataExtent(nil); rows != 0 || cols != 0 {
		t.Errorf("Expected 0x0, got %dx%d", rows, cols)
	}
}

func TestNewAndSaveAs(t *testing.T) {
	f := excelize.NewFile()
	g, err := New(f, Options{MinRows: 3, MinCols: 2})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if g.Sheet() != "Sheet1" {
		t.Errorf("Expected Sheet1, got %q", g.Sheet())
	}
	if err := g.WriteBatch(context.Background(), []models.Cell{{Row: 1, Col: 1, Value: "id"}}); err != nil {
		t.Fatalf("WriteBatch failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "copy.xlsx")
	if err := g.SaveAs(path); err != nil {
		t.Fatalf("SaveAs failed: %v", err)
	}
	if err := g.WriteBatch(context.Background(), []models.Cell{{Row: 1, Col: 2, Value: "qty"}}); err != nil {
		t.Fatalf("WriteBatch failed: %v", err)
	}
	// Save goes to the path given to SaveAs
	if err := g.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	g.Close()

	reopened, err := Open(path, Options{})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer reopened.Close()
	cells, err := reopened.FetchRange(context.Background(), models.RowRange(1, 1, 2), false)
	if err != nil {
		t.Fatalf("FetchRange failed: %v", err)
	}
	if len(cells) != 2 || cells[0].Value != "id" || cells[1].Value != "qty" {
		t.Errorf("Expected id, qty in row 1, got %v", cells)
	}
}

func TestRestoreKeepsCellTypes(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	for cell, v := range map[string]any{"A2": 42, "B2": "abc", "C2": true, "D2": "7"} {
		if err := f.SetCellValue("Sheet1", cell, v); err != nil {
			t.Fatalf("SetCellValue(%s) failed: %v", cell, err)
		}
	}
	g, err := New(f, Options{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	names := []string{"A2", "B2", "C2", "D2", "E2"}
	prev := make([]any, len(names))
	for i, name := range names {
		if prev[i], err = g.snapshot(name); err != nil {
			t.Fatalf("snapshot(%s) failed: %v", name, err)
		}
	}
	expected := []any{float64(42), "abc", true, "7", ""}
	for i := range expected {
		if prev[i] != expected[i] {
			t.Errorf("snapshot(%s): expected %#v, got %#v", names[i], expected[i], prev[i])
		}
	}

	overwrite := []models.Cell{
		{Row: 2, Col: 1, Value: "x"}, {Row: 2, Col: 2, Value: "y"},
		{Row: 2, Col: 3, Value: "z"}, {Row: 2, Col: 4, Value: "w"},
	}
	if err := g.WriteBatch(context.Background(), overwrite); err != nil {
		t.Fatalf("WriteBatch failed: %v", err)
	}
	if err := g.restore(names[:4], prev[:4]); err != nil {
		t.Fatalf("restore failed: %v", err)
	}

	if typ, _ := f.GetCellType("Sheet1", "A2"); typ == excelize.CellTypeSharedString || typ == excelize.CellTypeInlineString {
		t.Errorf("A2: expected a numeric cell after restore, got type %v", typ)
	}
	for i, name := range names[:4] {
		got, err := g.snapshot(name)
		if err != nil {
			t.Fatalf("snapshot(%s) failed: %v", name, err)
		}
		if got != expected[i] {
			t.Errorf("%s after restore: expected %#v, got %#v", name, expected[i], got)
		}
	}
}

func TestRestoreReportsFailures(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	g, err := New(f, Options{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	err = g.restore([]string{"A1", "A0", "B1"}, []any{"a", "b", 3.0})
	if err == nil {
		t.Fatal("Expected error for invalid cell name")
	}
	if v, _ := f.GetCellValue("Sheet1", "A1"); v != "a" {
		t.Errorf("Expected A1 restored past the failure, got %q", v)
	}
	if v, _ := f.GetCellValue("Sheet1", "B1"); v != "3" {
		t.Errorf("Expected B1 restored, got %q", v)
	}
}
