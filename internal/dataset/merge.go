package dataset

import (
	"slices"

	"github.com/joseph-ayodele/tourpack/constants"
	"github.com/joseph-ayodele/tourpack/internal/entity"
)

// Merge appends records to a copy of base. Base rows and column order are kept as they are.
// Record fields that base lacks become extra columns (schema fields first, then by name) and
// base rows read "" there. Columns a record lacks read "" in its row. base is never modified.
func Merge(base entity.Dataset, records []entity.Record) entity.Dataset {
	extras := extraColumns(base.Columns, records)

	out := entity.Dataset{
		Columns: slices.Concat(base.Columns, extras),
		Rows:    make([][]string, 0, len(base.Rows)+len(records)),
	}
	for _, row := range base.Rows {
		r := slices.Clone(row)
		if len(extras) > 0 {
			r = append(fitRow(r, len(base.Columns)), make([]string, len(extras))...)
		}
		out.Rows = append(out.Rows, r)
	}
	for _, rec := range records {
		out.Rows = append(out.Rows, rec.Values(out.Columns))
	}
	return out
}

func extraColumns(columns []string, records []entity.Record) []string {
	have := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		have[c] = struct{}{}
	}
	missing := map[string]struct{}{}
	for _, rec := range records {
		for k := range rec {
			if _, ok := have[k]; !ok {
				missing[k] = struct{}{}
			}
		}
	}
	if len(missing) == 0 {
		return nil
	}

	extras := make([]string, 0, len(missing))
	for _, f := range constants.Fields {
		if _, ok := missing[f]; ok {
			extras = append(extras, f)
			delete(missing, f)
		}
	}
	rest := make([]string, 0, len(missing))
	for k := range missing {
		rest = append(rest, k)
	}
	slices.Sort(rest)
	return append(extras, rest...)
}
