package xlsxgrid

import (
	"strings"

	"github.com/ukaji3/gridtable-go/pkg/gridtable/models"
	"github.com/xuri/excelize/v2"
)

// parseRange parses a range string like $A$1:$D$10 (or a single cell A1).
func parseRange(rangeStr string) *models.Range {
	// Remove $ signs
	rangeStr = strings.ReplaceAll(rangeStr, "$", "")
	if rangeStr == "" {
		return nil
	}

	parts := strings.Split(rangeStr, ":")
	if len(parts) == 1 {
		parts = append(parts, parts[0])
	}
	if len(parts) != 2 {
		return nil
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return nil
	}

	endCol, endRow, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return nil
	}

	return &models.Range{
		R1: startRow,
		C1: startCol,
		R2: endRow,
		C2: endCol,
	}
}

// dataExtent returns the last row and column (1-based) holding a non-empty
// value, or 0, 0 for an empty sheet.
func dataExtent(rows [][]string) (lastRow, lastCol int) {
	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if cell == "" {
				continue
			}
			if rowIdx+1 > lastRow {
				lastRow = rowIdx + 1
			}
			if colIdx+1 > lastCol {
				lastCol = colIdx + 1
			}
		}
	}
	return
}
