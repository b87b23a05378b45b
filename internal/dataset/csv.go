package dataset

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/joseph-ayodele/tourpack/internal/entity"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadCSV parses a header row followed by data rows. A leading UTF-8 BOM is dropped, short rows
// are padded with "" and header names are trimmed.
func ReadCSV(r io.Reader) (entity.Dataset, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return entity.Dataset{}, fmt.Errorf("csv: missing header row")
	}
	if err != nil {
		return entity.Dataset{}, fmt.Errorf("csv header: %w", err)
	}
	d := entity.Dataset{Columns: make([]string, len(header))}
	for i, h := range header {
		d.Columns[i] = strings.TrimSpace(h)
	}

	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return entity.Dataset{}, fmt.Errorf("csv row %d: %w", line, err)
		}
		d.Rows = append(d.Rows, fitRow(row, len(d.Columns)))
	}
	return d, nil
}

// WriteCSV writes the header row and every data row as UTF-8 without a BOM.
func WriteCSV(w io.Writer, d entity.Dataset) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(d.Columns); err != nil {
		return fmt.Errorf("csv header: %w", err)
	}
	for i, row := range d.Rows {
		if err := cw.Write(fitRow(row, len(d.Columns))); err != nil {
			return fmt.Errorf("csv row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// fitRow pads or truncates row to n cells without modifying the input.
func fitRow(row []string, n int) []string {
	if len(row) == n {
		return row
	}
	out := make([]string, n)
	copy(out, row)
	return out
}
