// Package dataset validates, merges and serializes tour package tables.
package dataset

import (
	"github.com/joseph-ayodele/tourpack/constants"
	"github.com/joseph-ayodele/tourpack/internal/entity"
)

// Validate reports whether columns contain every schema field. Extra columns are fine.
func Validate(columns []string) bool {
	return len(MissingColumns(columns)) == 0
}

// MissingColumns lists schema fields absent from columns, in schema order.
func MissingColumns(columns []string) []string {
	have := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		have[c] = struct{}{}
	}
	var missing []string
	for _, f := range constants.Fields {
		if _, ok := have[f]; !ok {
			missing = append(missing, f)
		}
	}
	return missing
}

// Empty returns a dataset with the schema columns and no rows.
func Empty() entity.Dataset {
	return entity.Dataset{Columns: append([]string(nil), constants.Fields...)}
}
