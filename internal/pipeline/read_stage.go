package pipeline

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/joseph-ayodele/tourpack/internal/common"
	"github.com/joseph-ayodele/tourpack/internal/entity"
	"github.com/joseph-ayodele/tourpack/internal/extract"
)

// ReadStage turns a file path into a Document.
type ReadStage struct {
	TextExtractor extract.TextExtractor
	Logger        *slog.Logger
}

func NewReadStage(tx extract.TextExtractor, logger *slog.Logger) *ReadStage {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReadStage{TextExtractor: tx, Logger: logger}
}

// Run reads path. Any failure comes back as a DocumentReadFailure for that document.
func (s *ReadStage) Run(ctx context.Context, path string) (entity.Document, extract.TextExtractionResult, error) {
	id := filepath.Base(path)
	res, err := s.TextExtractor.Extract(ctx, path)
	if err != nil {
		return entity.Document{ID: id, Path: path}, res, common.NewReadFailure(id, err)
	}
	for _, w := range res.Warnings {
		s.Logger.Warn("pipeline.read.warning", "doc_id", id, "warning", w)
	}
	return entity.Document{ID: id, Path: path, Text: res.Text}, res, nil
}
