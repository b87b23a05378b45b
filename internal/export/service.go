package export

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/tourpack/internal/dataset"
	"github.com/joseph-ayodele/tourpack/internal/entity"
)

// Format names accepted by Render.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// wide columns get more room; everything else uses defaultWidth.
var columnWidths = map[string]float64{
	"title":       36,
	"description": 60,
	"inclusions":  48,
	"exclusions":  48,
	"itinerary":   60,
	"hotels":      36,
	"locations":   36,
}

const (
	defaultWidth = 18
	maxWidth     = 80
)

// Service renders merged datasets to CSV or XLSX bytes.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// Render returns the dataset serialized in format.
func (s *Service) Render(d entity.Dataset, format string) ([]byte, error) {
	switch format {
	case FormatCSV, "":
		return s.CSV(d)
	case FormatXLSX:
		return s.XLSX(d)
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}

// WriteFile renders d and writes it to path.
func (s *Service) WriteFile(path string, d entity.Dataset, format string) error {
	b, err := s.Render(d, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	s.logger.Info("export.write.ok", "path", path, "format", format, "rows", d.Len(), "bytes", len(b))
	return nil
}

// CSV returns the dataset as UTF-8 CSV with a header row.
func (s *Service) CSV(d entity.Dataset) ([]byte, error) {
	var buf bytes.Buffer
	if err := dataset.WriteCSV(&buf, d); err != nil {
		return nil, fmt.Errorf("csv write: %w", err)
	}
	return buf.Bytes(), nil
}

// XLSX returns an XLSX workbook (as bytes) with one sheet holding the dataset.
func (s *Service) XLSX(d entity.Dataset) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := dataset.SheetName
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		s.logger.Warn("export.xlsx.delete_default_sheet", "error", err)
	}

	header := make([]any, len(d.Columns))
	for i, c := range d.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("xlsx header: %w", err)
	}

	widths := make([]float64, len(d.Columns))
	for i, c := range d.Columns {
		widths[i] = defaultWidth
		if w, ok := columnWidths[c]; ok {
			widths[i] = w
		}
	}

	for r, row := range d.Rows {
		cells := make([]any, len(d.Columns))
		for i := range d.Columns {
			v := ""
			if i < len(row) {
				v = row[i]
			}
			cells[i] = v
			if n := float64(utf8.RuneCountInString(v)); n > widths[i] {
				widths[i] = min(n, maxWidth)
			}
		}
		cell, _ := excelize.CoordinatesToCellName(1, r+2)
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return nil, fmt.Errorf("xlsx row %d: %w", r+2, err)
		}
	}

	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(sheet, col, col, w)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", d.Len(),
		"columns", len(d.Columns),
		"bytes", buf.Len(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
