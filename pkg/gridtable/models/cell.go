// Package models defines the data structures shared by the table layer and grid backends.
package models

// Cell is a single addressed value of a sheet grid.
type Cell struct {
	// Row is the row index (1-based).
	Row int `json:"row"`
	// Col is the column index (1-based).
	Col int `json:"col"`
	// Value is the cell's text value. Empty cells carry "".
	Value string `json:"value"`
}

// Addr returns the cell's (row, col) identity.
func (c Cell) Addr() Addr {
	return Addr{Row: c.Row, Col: c.Col}
}

// Addr identifies a cell position independent of its value.
type Addr struct {
	Row int
	Col int
}
