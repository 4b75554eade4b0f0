package gridtable

import (
	"fmt"
	"log/slog"
)

// HeaderMode selects how row 1 is turned into a header.
type HeaderMode string

const (
	// HeaderSparse takes the last non-blank row-1 cell as the header's end and
	// tolerates blank positions before it. Blank positions carry no record key.
	HeaderSparse HeaderMode = "sparse"
	// HeaderStrict requires contiguous non-blank cells starting at column 1.
	HeaderStrict HeaderMode = "strict"
)

// AssemblyMode selects how data cells are grouped into records.
type AssemblyMode string

const (
	// AssemblyPositional walks expected (row, col) positions in row-major order
	// and reads "" wherever the stream has no matching cell.
	AssemblyPositional AssemblyMode = "positional"
	// AssemblyGrouped groups the stream into runs of equal row number.
	AssemblyGrouped AssemblyMode = "grouped"
)

// ParseHeaderMode converts a flag value into a HeaderMode.
func ParseHeaderMode(s string) (HeaderMode, error) {
	switch HeaderMode(s) {
	case HeaderSparse, HeaderStrict:
		return HeaderMode(s), nil
	case "":
		return HeaderSparse, nil
	}
	return "", fmt.Errorf("invalid header mode: %s (must be sparse or strict)", s)
}

// ParseAssemblyMode converts a flag value into an AssemblyMode.
func ParseAssemblyMode(s string) (AssemblyMode, error) {
	switch AssemblyMode(s) {
	case AssemblyPositional, AssemblyGrouped:
		return AssemblyMode(s), nil
	case "":
		return AssemblyPositional, nil
	}
	return "", fmt.Errorf("invalid assembly mode: %s (must be positional or grouped)", s)
}

// Options configures a Table.
type Options struct {
	// Sheet names the sheet in errors and logs. It does not select anything.
	Sheet string
	// HeaderMode selects header parsing. Defaults to HeaderSparse.
	HeaderMode HeaderMode
	// Assembly selects record assembly. Defaults to AssemblyPositional.
	Assembly AssemblyMode
	// Logger receives debug traces of each operation.
	// If nil, slog.Default() is used.
	Logger *slog.Logger
}

// DefaultOptions returns default table options.
func DefaultOptions() Options {
	return Options{
		HeaderMode: HeaderSparse,
		Assembly:   AssemblyPositional,
	}
}

func (o Options) withDefaults() Options {
	if o.HeaderMode == "" {
		o.HeaderMode = HeaderSparse
	}
	if o.Assembly == "" {
		o.Assembly = AssemblyPositional
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// UpdateOptions controls UpdateRow.
type UpdateOptions struct {
	// Replace blanks every non-key column the patch does not name.
	// When false, unnamed columns are left untouched.
	Replace bool
}

// InsertOptions controls InsertRows.
type InsertOptions struct {
	// ValidateFirst checks every record and key before the first write, so a
	// bad record or colliding key aborts the call with nothing committed.
	ValidateFirst bool
}
