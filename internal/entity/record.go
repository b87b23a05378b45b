package entity

import (
	"maps"

	"github.com/joseph-ayodele/tourpack/constants"
)

// Record is one extracted tour package row keyed by field name.
type Record map[string]string

// NewRecord returns a record holding every schema field set to "".
func NewRecord() Record {
	r := make(Record, len(constants.Fields))
	for _, f := range constants.Fields {
		r[f] = ""
	}
	return r
}

// Get returns the value for field, "" when absent.
func (r Record) Get(field string) string {
	return r[field]
}

// Values lays the record out along columns; missing fields become "".
func (r Record) Values(columns []string) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = r[c]
	}
	return out
}

func (r Record) Clone() Record {
	return maps.Clone(r)
}

// WithoutTimestamps returns a copy with created_at and updated_at cleared, for comparing runs.
func (r Record) WithoutTimestamps() Record {
	c := r.Clone()
	if _, ok := c[constants.FieldCreatedAt]; ok {
		c[constants.FieldCreatedAt] = ""
	}
	if _, ok := c[constants.FieldUpdatedAt]; ok {
		c[constants.FieldUpdatedAt] = ""
	}
	return c
}
