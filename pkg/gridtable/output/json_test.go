package output

import (
	"testing"

	"github.com/ukaji3/gridtable-go/pkg/gridtable/models"
)

func TestToJSON(t *testing.T) {
	h := models.Header{"id", "qty"}
	table := &models.Table{
		Header: h,
		Rows:   []models.Record{models.RecordOf(h, models.Patch{"id": "a1", "qty": "3"})},
	}

	data, err := ToJSON(table, false)
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}
	expected := `{"header":["id","qty"],"rows":[{"id":"a1","qty":"3"}]}`
	if string(data) != expected {
		t.Errorf("expected %s, got %s", expected, data)
	}
}

func TestResultToJSON(t *testing.T) {
	data, err := ResultToJSON(models.UpdateResult{UpdatedRowCount: 1, UpdatedCellCount: 2}, false)
	if err != nil {
		t.Fatalf("ResultToJSON failed: %v", err)
	}
	expected := `{"updated_row_count":1,"updated_cell_count":2}`
	if string(data) != expected {
		t.Errorf("expected %s, got %s", expected, data)
	}
}

func TestEmptyValuesRenderAsArrays(t *testing.T) {
	data, err := HeaderToJSON(nil, false)
	if err != nil || string(data) != "[]" {
		t.Errorf("HeaderToJSON(nil) = %s, %v", data, err)
	}
	data, err = InsertedToJSON(nil, false)
	if err != nil || string(data) != `{"rows":[]}` {
		t.Errorf("InsertedToJSON(nil) = %s, %v", data, err)
	}
}
