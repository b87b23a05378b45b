package extract

import (
	"context"
	"time"

	"github.com/joseph-ayodele/tourpack/internal/entity"
)

// TextExtractor is Stage 1: file -> text.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (TextExtractionResult, error)
}

type TextExtractionResult struct {
	Text       string
	Pages      int
	SourceType string // constants.PDF | constants.TEXT | constants.HTML
	Method     string // "pdftotext" | "pdfcpu" | "plain" | "html"
	Duration   time.Duration
	Warnings   []string
}

// RecordExtractor is Stage 2: text -> record. The rule engine and the model-backed
// extractor both implement it; one is chosen per batch.
type RecordExtractor interface {
	Extract(ctx context.Context, doc entity.Document) (entity.Record, error)
	Name() string
}
