package gridtable

import (
	"errors"
	"fmt"
)

// ErrHeaderEmpty indicates row 1 holds no non-blank cell.
var ErrHeaderEmpty = errors.New("there is no header")

// ErrHeaderDuplicate indicates two header cells share a key.
var ErrHeaderDuplicate = errors.New("header has duplicates")

// ErrHeaderInvalid indicates a blank or out-of-sequence header cell in strict mode.
var ErrHeaderInvalid = errors.New("header is invalid")

// ErrKeyMissing indicates a referenced key is not part of the header,
// or a record lacks its primary-key value.
var ErrKeyMissing = errors.New("header key not found")

// ErrKeyNotFound indicates no row holds the requested primary key.
var ErrKeyNotFound = errors.New("key not found")

// ErrDuplicateKey indicates a primary key already exists or is held by more than one row.
var ErrDuplicateKey = errors.New("duplicate key")

// ErrCellNotReturned indicates the grid did not return a cell the mutation must address.
var ErrCellNotReturned = errors.New("update target cell not returned")

// ErrKeyImmutable indicates an update tried to change the primary-key column.
var ErrKeyImmutable = errors.New("key column cannot be updated")

// ErrInvalidRow indicates a row number that cannot be cleared (the header or below).
var ErrInvalidRow = errors.New("invalid row number")

// OpError records the failing operation and sheet.
type OpError struct {
	Sheet string
	Op    string // "header", "fetch", "update", "insert", "clear"
	Err   error
}

func (e *OpError) Error() string {
	if e.Sheet == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s sheet %q: %v", e.Op, e.Sheet, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// RowError identifies the record of a multi-row insert that failed.
// Records before Index were committed.
type RowError struct {
	Index int
	Key   string
	Err   error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("record %d (key %q): %v", e.Index, e.Key, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}
