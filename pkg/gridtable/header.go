package gridtable

import (
	"fmt"

	"github.com/ukaji3/gridtable-go/pkg/gridtable/models"
)

// ResolveHeader derives the header from row-1 cells. Cells from other rows
// are ignored; cells are expected in ascending column order.
func ResolveHeader(cells []models.Cell, mode HeaderMode) (models.Header, error) {
	row1 := headerCells(cells)

	var (
		header models.Header
		err    error
	)
	switch mode {
	case HeaderStrict:
		header, err = strictHeader(row1)
	case HeaderSparse, "":
		header, err = sparseHeader(row1)
	default:
		return nil, fmt.Errorf("unknown header mode %q", mode)
	}
	if err != nil {
		return nil, err
	}

	if err := checkDuplicates(header); err != nil {
		return nil, err
	}
	return header, nil
}

// headerCells returns the row-1 prefix of a row-major cell stream.
func headerCells(cells []models.Cell) []models.Cell {
	var row1 []models.Cell
	for _, c := range cells {
		if c.Row == 1 {
			row1 = append(row1, c)
		}
	}
	return row1
}

// strictHeader walks cells from column 1 and requires each following cell to
// sit exactly one column to the right. Trailing empty cells are ignored.
func strictHeader(cells []models.Cell) (models.Header, error) {
	end := len(cells)
	for end > 0 && cells[end-1].Value == "" {
		end--
	}
	if end == 0 {
		return nil, ErrHeaderEmpty
	}

	header := make(models.Header, 0, end)
	for i, c := range cells[:end] {
		if c.Col != i+1 {
			return nil, fmt.Errorf("%w: column %d out of sequence (want %d)", ErrHeaderInvalid, c.Col, i+1)
		}
		if c.Value == "" {
			return nil, fmt.Errorf("%w: column %d is blank", ErrHeaderInvalid, c.Col)
		}
		header = append(header, c.Value)
	}
	return header, nil
}

// sparseHeader anchors the header at the last non-blank cell and walks
// backward, filling columns the stream skipped with "".
func sparseHeader(cells []models.Cell) (models.Header, error) {
	last := -1
	for i := len(cells) - 1; i >= 0; i-- {
		if cells[i].Value != "" {
			last = i
			break
		}
	}
	if last < 0 {
		return nil, ErrHeaderEmpty
	}

	header := make(models.Header, cells[last].Col)
	idx := last
	for pos := len(header) - 1; pos >= 0; pos-- {
		// Skip blanks (allows sparse)
		if idx < 0 || cells[idx].Col-1 < pos {
			header[pos] = ""
			continue
		}
		header[pos] = cells[idx].Value
		idx--
	}
	return header, nil
}

func checkDuplicates(header models.Header) error {
	seen := make(map[string]struct{}, len(header))
	for _, k := range header {
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			return fmt.Errorf("%w: %q", ErrHeaderDuplicate, k)
		}
		seen[k] = struct{}{}
	}
	return nil
}
