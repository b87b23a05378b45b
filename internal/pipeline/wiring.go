package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/joseph-ayodele/tourpack/constants"
	"github.com/joseph-ayodele/tourpack/internal/common"
	"github.com/joseph-ayodele/tourpack/internal/doctext"
	"github.com/joseph-ayodele/tourpack/internal/extract"
	"github.com/joseph-ayodele/tourpack/internal/llm/provider"
)

// NewTextExtractor builds the file-to-text reader from the documents config.
func NewTextExtractor(cfg common.DocumentsConfig, logger *slog.Logger) extract.TextExtractor {
	dt := doctext.NewExtractor(doctext.Config{
		Pdftotext: cfg.Pdftotext,
		MaxFileMB: cfg.MaxFileMB,
	}, logger)
	return extract.NewDocTextAdapter(dt, logger)
}

// NewRecordExtractor returns the extractor for the batch strategy. The close func releases
// model clients and is never nil.
func NewRecordExtractor(ctx context.Context, cfg *common.Config, logger *slog.Logger) (extract.RecordExtractor, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Batch.Strategy {
	case constants.StrategyRules, "":
		return extract.NewEngine(logger), noop, nil
	case constants.StrategyLLM:
		ex, closeFn, err := provider.NewExtractor(ctx, cfg.LLM, logger)
		if err != nil {
			return nil, noop, fmt.Errorf("llm extractor: %w", err)
		}
		return ex, closeFn, nil
	default:
		return nil, noop, fmt.Errorf("unknown strategy %q", cfg.Batch.Strategy)
	}
}

// NewFromConfig wires a Processor for cfg.
func NewFromConfig(ctx context.Context, cfg *common.Config, logger *slog.Logger) (*Processor, func() error, error) {
	if logger == nil {
		logger = slog.Default()
	}
	re, closeFn, err := NewRecordExtractor(ctx, cfg, logger)
	if err != nil {
		return nil, closeFn, err
	}
	read := NewReadStage(NewTextExtractor(cfg.Documents, logger), logger)
	return NewProcessor(logger, read, NewExtractStage(re, logger), cfg.Batch.Workers), closeFn, nil
}
