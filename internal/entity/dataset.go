package entity

import "slices"

// Dataset is an ordered table of string cells; rows align with Columns.
type Dataset struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

func (d Dataset) Len() int {
	return len(d.Rows)
}

// ColumnIndex returns the position of name in Columns, or -1.
func (d Dataset) ColumnIndex(name string) int {
	return slices.Index(d.Columns, name)
}

// Clone deep-copies the dataset so callers can append without touching the original.
func (d Dataset) Clone() Dataset {
	out := Dataset{
		Columns: slices.Clone(d.Columns),
		Rows:    make([][]string, len(d.Rows)),
	}
	for i, row := range d.Rows {
		out.Rows[i] = slices.Clone(row)
	}
	return out
}

// Row returns row i as a Record keyed by column name.
func (d Dataset) Row(i int) Record {
	r := make(Record, len(d.Columns))
	row := d.Rows[i]
	for j, c := range d.Columns {
		if j < len(row) {
			r[c] = row[j]
		} else {
			r[c] = ""
		}
	}
	return r
}
