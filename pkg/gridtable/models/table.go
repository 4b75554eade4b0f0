package models

// Table is the logical view of a sheet: a header plus its data records.
type Table struct {
	// Sheet is the sheet name the table was read from (may be empty).
	Sheet string `json:"sheet,omitempty"`
	// Header is the resolved column key list.
	Header Header `json:"header"`
	// Rows contains records in sheet order, ending before the first blank row.
	Rows []Record `json:"rows"`
}

// Find returns the first record whose primary-key value equals key.
func (t *Table) Find(key string) (Record, bool) {
	k := t.Header.Key()
	for _, r := range t.Rows {
		if r.Get(k) == key {
			return r, true
		}
	}
	return Record{}, false
}

// UpdateResult reports how many rows and cells a mutation wrote.
type UpdateResult struct {
	// UpdatedRowCount is the number of rows matched by the operation.
	UpdatedRowCount int `json:"updated_row_count"`
	// UpdatedCellCount is the number of cells submitted for write.
	UpdatedCellCount int `json:"updated_cell_count"`
}

// Add accumulates another result into r.
func (r *UpdateResult) Add(other UpdateResult) {
	r.UpdatedRowCount += other.UpdatedRowCount
	r.UpdatedCellCount += other.UpdatedCellCount
}
