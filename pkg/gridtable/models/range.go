package models

// Range represents inclusive cell coordinate bounds of a rectangular fetch.
type Range struct {
	// R1 is the start row (1-based).
	R1 int `json:"r1"`
	// C1 is the start column (1-based).
	C1 int `json:"c1"`
	// R2 is the end row (1-based, inclusive).
	R2 int `json:"r2"`
	// C2 is the end column (1-based, inclusive).
	C2 int `json:"c2"`
}

// RowRange returns the range covering columns c1..c2 of a single row.
func RowRange(row, c1, c2 int) Range {
	return Range{R1: row, C1: c1, R2: row, C2: c2}
}

// Empty reports whether the range covers no cells.
func (r Range) Empty() bool {
	return r.R1 < 1 || r.C1 < 1 || r.R2 < r.R1 || r.C2 < r.C1
}

// Contains reports whether (row, col) lies inside the range.
func (r Range) Contains(row, col int) bool {
	return row >= r.R1 && row <= r.R2 && col >= r.C1 && col <= r.C2
}

// Clamp restricts the range to a grid of rows x cols cells.
func (r Range) Clamp(rows, cols int) Range {
	if r.R1 < 1 {
		r.R1 = 1
	}
	if r.C1 < 1 {
		r.C1 = 1
	}
	if r.R2 > rows {
		r.R2 = rows
	}
	if r.C2 > cols {
		r.C2 = cols
	}
	return r
}
