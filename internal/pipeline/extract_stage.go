package pipeline

import (
	"context"
	"log/slog"

	"github.com/joseph-ayodele/tourpack/internal/common"
	"github.com/joseph-ayodele/tourpack/internal/entity"
	"github.com/joseph-ayodele/tourpack/internal/extract"
)

// ExtractStage runs the batch's record extractor over one document.
type ExtractStage struct {
	Extractor extract.RecordExtractor
	Logger    *slog.Logger
}

func NewExtractStage(re extract.RecordExtractor, logger *slog.Logger) *ExtractStage {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExtractStage{Extractor: re, Logger: logger}
}

// Run extracts one record. Errors that are not already document-scoped are
// reported as an ExtractionFailure for doc.
func (s *ExtractStage) Run(ctx context.Context, doc entity.Document) (entity.Record, error) {
	rec, err := s.Extractor.Extract(ctx, doc)
	if err != nil {
		if common.KindOf(err) == "" {
			err = common.NewExtractionFailure(doc.ID, err)
		}
		return nil, err
	}
	return rec, nil
}
