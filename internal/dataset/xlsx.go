package dataset

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/tourpack/internal/entity"
)

// SheetName is the worksheet tour package workbooks are written to.
const SheetName = "Tour Packages"

// ReadXLSX loads a worksheet with a header row. An empty sheet name means SheetName when the
// workbook has one, else the first sheet.
func ReadXLSX(r io.Reader, sheet string) (entity.Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return entity.Dataset{}, fmt.Errorf("xlsx open: %w", err)
	}
	defer func() { _ = f.Close() }()

	if sheet == "" {
		sheet = f.GetSheetName(0)
		if idx, _ := f.GetSheetIndex(SheetName); idx >= 0 {
			sheet = SheetName
		}
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return entity.Dataset{}, fmt.Errorf("xlsx sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return entity.Dataset{}, fmt.Errorf("xlsx sheet %q: missing header row", sheet)
	}

	d := entity.Dataset{Columns: make([]string, len(rows[0]))}
	for i, h := range rows[0] {
		d.Columns[i] = strings.TrimSpace(h)
	}
	// GetRows drops trailing empty cells, so rows are padded back to the header width.
	for _, row := range rows[1:] {
		d.Rows = append(d.Rows, fitRow(row, len(d.Columns)))
	}
	return d, nil
}
