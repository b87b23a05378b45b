// Package gemini adapts the Google Generative Language API to llm.Generator.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/joseph-ayodele/tourpack/internal/llm"
)

type Config struct {
	APIKey      string // if empty, falls back to env GEMINI_API_KEY
	Model       string // e.g., "gemini-1.5-flash"
	Temperature float32
	Timeout     time.Duration
}

type Client struct {
	cfg    Config
	client *genai.Client
	model  *genai.GenerativeModel
	log    *slog.Logger
}

func NewClient(ctx context.Context, cfg Config, logger *slog.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("gemini: api key is required")
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-1.5-flash"
	}
	if logger == nil {
		logger = slog.Default()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("genai.NewClient: %w", err)
	}
	model := client.GenerativeModel(cfg.Model)
	model.SetTemperature(cfg.Temperature)
	model.ResponseMIMEType = "application/json"

	return &Client{cfg: cfg, client: client, model: model, log: logger}, nil
}

func (c *Client) Name() string { return "gemini/" + c.cfg.Model }

// Generate implements llm.Generator.
func (c *Client) Generate(ctx context.Context, p llm.Prompt) (string, error) {
	start := time.Now()
	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	// The model is shared across calls, so the system prompt travels with the request content.
	resp, err := c.model.GenerateContent(ctx, genai.Text(p.System), genai.Text(p.User))
	if err != nil {
		c.log.Error("llm.gemini.generate_error",
			"model", c.cfg.Model, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", fmt.Errorf("gemini: %w", err)
	}

	var parts []string
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				parts = append(parts, string(text))
			}
		}
		break
	}
	c.log.Debug("llm.gemini.response",
		"model", c.cfg.Model,
		"candidates", len(resp.Candidates),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	if len(parts) == 0 {
		return "", errors.New("gemini: response has no text parts")
	}
	return strings.Join(parts, ""), nil
}

func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}
