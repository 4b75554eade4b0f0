// Package output renders table results as JSON.
package output

import (
	"github.com/goccy/go-json"
	"github.com/ukaji3/gridtable-go/pkg/gridtable/models"
)

// ToJSON serializes a table. Records keep header order.
func ToJSON(t *models.Table, pretty bool) ([]byte, error) {
	return marshal(t, pretty)
}

// HeaderToJSON serializes a header as an array of keys.
func HeaderToJSON(h models.Header, pretty bool) ([]byte, error) {
	if h == nil {
		h = models.Header{}
	}
	return marshal(h, pretty)
}

// ResultToJSON serializes a mutation result.
func ResultToJSON(r models.UpdateResult, pretty bool) ([]byte, error) {
	return marshal(r, pretty)
}

// InsertedToJSON serializes the rows written by an insert.
func InsertedToJSON(rows []int, pretty bool) ([]byte, error) {
	if rows == nil {
		rows = []int{}
	}
	return marshal(struct {
		Rows []int `json:"rows"`
	}{rows}, pretty)
}

func marshal(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
