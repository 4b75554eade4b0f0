package gridtable

import (
	"fmt"

	"github.com/ukaji3/gridtable-go/pkg/gridtable/models"
)

// AssembleRecords rebuilds data records from a row-major cell stream that
// starts at row 1. Assembly stops at the first row that is blank across the
// header's width; that row and everything after it are not returned.
func AssembleRecords(cells []models.Cell, header models.Header, mode AssemblyMode) ([]models.Record, error) {
	if header.Width() == 0 {
		return nil, ErrHeaderEmpty
	}
	switch mode {
	case AssemblyPositional, "":
		return assemblePositional(cells, header), nil
	case AssemblyGrouped:
		return assembleGrouped(cells, header), nil
	}
	return nil, fmt.Errorf("unknown assembly mode %q", mode)
}

// assemblePositional visits every expected (row, col) in order and consumes
// the next stream cell only when it sits at that address.
func assemblePositional(cells []models.Cell, header models.Header) []models.Record {
	width := header.Width()
	records := []models.Record{}

	i := 0
	for rowN := 0; ; rowN++ {
		row := rowN + 2
		rec := models.NewRecord(header)
		blank := true

		for colN := 0; colN < width; colN++ {
			col := colN + 1

			// drop header cells, cells past the header width and anything
			// the walk has already moved beyond
			for i < len(cells) && behind(cells[i], row, col, width) {
				i++
			}

			value := ""
			if i < len(cells) && cells[i].Row == row && cells[i].Col == col {
				value = cells[i].Value
				i++
			}
			if value != "" {
				blank = false
			}
			if key := header[colN]; key != "" {
				rec.Set(key, value)
			}
		}

		if blank {
			return records
		}
		records = append(records, rec)
	}
}

func behind(c models.Cell, row, col, width int) bool {
	if c.Col > width {
		return true
	}
	return c.Row < row || (c.Row == row && c.Col < col)
}

// assembleGrouped splits the stream into runs of cells sharing a row. A row
// number missing from the stream is a blank row.
func assembleGrouped(cells []models.Cell, header models.Header) []models.Record {
	width := header.Width()
	records := []models.Record{}

	want := 2
	for start := 0; start < len(cells); {
		row := cells[start].Row
		end := start
		for end < len(cells) && cells[end].Row == row {
			end++
		}
		run := cells[start:end]
		start = end

		if row < 2 {
			continue
		}
		if row != want {
			break
		}

		rec := models.NewRecord(header)
		blank := true
		for _, c := range run {
			if c.Col > width || c.Value == "" {
				continue
			}
			blank = false
			if key := header[c.Col-1]; key != "" {
				rec.Set(key, c.Value)
			}
		}
		if blank {
			break
		}
		records = append(records, rec)
		want++
	}
	return records
}
