// Package provider picks the llm.Generator configured for a batch.
package provider

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/joseph-ayodele/tourpack/constants"
	"github.com/joseph-ayodele/tourpack/internal/common"
	"github.com/joseph-ayodele/tourpack/internal/llm"
	"github.com/joseph-ayodele/tourpack/internal/llm/gemini"
	"github.com/joseph-ayodele/tourpack/internal/llm/openai"
	"github.com/joseph-ayodele/tourpack/internal/llm/vertex"
)

// New returns the generator for cfg.Provider and a close func the caller must run when done.
func New(ctx context.Context, cfg common.LLMConfig, logger *slog.Logger) (llm.Generator, func() error, error) {
	if logger == nil {
		logger = slog.Default()
	}
	noop := func() error { return nil }

	switch cfg.Provider {
	case constants.ProviderOpenAI, "":
		c := openai.NewClient(openai.Config{
			APIKey:      cfg.APIKey,
			BaseURL:     cfg.BaseURL,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
			Timeout:     cfg.Timeout,
		}, logger)
		return c, noop, nil
	case constants.ProviderGemini:
		c, err := gemini.NewClient(ctx, gemini.Config{
			APIKey:      cfg.APIKey,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
			Timeout:     cfg.Timeout,
		}, logger)
		if err != nil {
			return nil, noop, err
		}
		return c, c.Close, nil
	case constants.ProviderVertex:
		c, err := vertex.NewClient(ctx, vertex.Config{
			Project:     cfg.Project,
			Region:      cfg.Region,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
			Timeout:     cfg.Timeout,
		}, logger)
		if err != nil {
			return nil, noop, err
		}
		return c, c.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}

// NewExtractor wires the configured generator into an llm.Extractor.
func NewExtractor(ctx context.Context, cfg common.LLMConfig, logger *slog.Logger) (*llm.Extractor, func() error, error) {
	gen, closeFn, err := New(ctx, cfg, logger)
	if err != nil {
		return nil, closeFn, err
	}
	ex, err := llm.NewExtractor(gen, llm.ExtractorOptions{Lenient: cfg.LenientValues}, logger)
	if err != nil {
		_ = closeFn()
		return nil, func() error { return nil }, err
	}
	return ex, closeFn, nil
}
