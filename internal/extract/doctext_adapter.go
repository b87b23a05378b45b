package extract

import (
	"context"
	"log/slog"

	"github.com/joseph-ayodele/tourpack/internal/doctext"
)

// DocTextAdapter exposes a doctext.Extractor as a TextExtractor.
type DocTextAdapter struct {
	e *doctext.Extractor
}

func NewDocTextAdapter(e *doctext.Extractor, _ *slog.Logger) *DocTextAdapter {
	return &DocTextAdapter{e: e}
}

func (a *DocTextAdapter) Extract(ctx context.Context, path string) (TextExtractionResult, error) {
	r, err := a.e.Extract(ctx, path)
	return TextExtractionResult{
		Text:       r.Text,
		Pages:      r.Pages,
		SourceType: r.SourceType,
		Method:     r.Method,
		Duration:   r.Duration,
		Warnings:   r.Warnings,
	}, err
}
