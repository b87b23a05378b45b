package llm

import "context"

// Prompt is one request to a text generation backend.
type Prompt struct {
	System string
	User   string
}

// Generator is the provider-neutral model call. Implementations return the raw text of the first
// candidate; parsing and validation happen in Extractor.
type Generator interface {
	Generate(ctx context.Context, p Prompt) (string, error)
	Name() string
}
