package gridtable

import (
	"errors"
	"testing"

	"github.com/ukaji3/gridtable-go/pkg/gridtable/models"
)

func row1(values ...string) []models.Cell {
	var cells []models.Cell
	for i, v := range values {
		cells = append(cells, models.Cell{Row: 1, Col: i + 1, Value: v})
	}
	return cells
}

func TestResolveHeader(t *testing.T) {
	tests := []struct {
		name     string
		cells    []models.Cell
		mode     HeaderMode
		expected models.Header
		err      error
	}{
		{"strict contiguous", row1("id", "qty"), HeaderStrict, models.Header{"id", "qty"}, nil},
		{"strict trailing empties", row1("a", "b", "", ""), HeaderStrict, models.Header{"a", "b"}, nil},
		{"strict blank inside", row1("a", "", "c"), HeaderStrict, nil, ErrHeaderInvalid},
		{"strict gap", []models.Cell{{Row: 1, Col: 1, Value: "a"}, {Row: 1, Col: 3, Value: "c"}}, HeaderStrict, nil, ErrHeaderInvalid},
		{"strict not at column 1", []models.Cell{{Row: 1, Col: 2, Value: "b"}}, HeaderStrict, nil, ErrHeaderInvalid},
		{"strict empty", nil, HeaderStrict, nil, ErrHeaderEmpty},
		{"strict duplicate", row1("a", "b", "a"), HeaderStrict, nil, ErrHeaderDuplicate},
		{"sparse contiguous", row1("Name", "Age"), HeaderSparse, models.Header{"Name", "Age"}, nil},
		{"sparse gaps", []models.Cell{{Row: 1, Col: 2, Value: "b"}, {Row: 1, Col: 4, Value: "d"}}, HeaderSparse, models.Header{"", "b", "", "d"}, nil},
		{"sparse empty cells inside", row1("a", "", "c"), HeaderSparse, models.Header{"a", "", "c"}, nil},
		{"sparse trailing empties", row1("a", "", ""), HeaderSparse, models.Header{"a"}, nil},
		{"sparse all blank", row1("", ""), HeaderSparse, nil, ErrHeaderEmpty},
		{"sparse duplicate", []models.Cell{{Row: 1, Col: 1, Value: "x"}, {Row: 1, Col: 3, Value: "x"}}, HeaderSparse, nil, ErrHeaderDuplicate},
		{"other rows ignored", append(row1("a"), models.Cell{Row: 2, Col: 5, Value: "z"}), HeaderSparse, models.Header{"a"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header, err := ResolveHeader(tt.cells, tt.mode)
			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Fatalf("expected error %v, got %v", tt.err, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveHeader failed: %v", err)
			}
			if !header.Equal(tt.expected) {
				t.Errorf("expected header %q, got %q", tt.expected, header)
			}
		})
	}
}

func TestParseModes(t *testing.T) {
	if m, err := ParseHeaderMode(""); err != nil || m != HeaderSparse {
		t.Errorf("ParseHeaderMode(\"\") = %v, %v", m, err)
	}
	if _, err := ParseHeaderMode("loose"); err == nil {
		t.Error("expected error for unknown header mode")
	}
	if m, err := ParseAssemblyMode("grouped"); err != nil || m != AssemblyGrouped {
		t.Errorf("ParseAssemblyMode(\"grouped\") = %v, %v", m, err)
	}
	if _, err := ParseAssemblyMode("stream"); err == nil {
		t.Error("expected error for unknown assembly mode")
	}
}
