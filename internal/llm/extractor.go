package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/joseph-ayodele/tourpack/constants"
	"github.com/joseph-ayodele/tourpack/internal/common"
	"github.com/joseph-ayodele/tourpack/internal/entity"
)

var errEmptyResponse = errors.New("empty model response")

// ExtractorOptions tune the model-backed record extractor.
type ExtractorOptions struct {
	Fields []string
	// Lenient runs NormalizeAndSanitizeJSON before strict validation.
	Lenient bool
	Now     func() time.Time
}

// Extractor produces records by delegating to a Generator. One call per document, no retry.
type Extractor struct {
	gen     Generator
	fields  []string
	cschema *jsonschema.Schema
	lenient bool
	now     func() time.Time
	log     *slog.Logger
}

func NewExtractor(gen Generator, opts ExtractorOptions, logger *slog.Logger) (*Extractor, error) {
	if gen == nil {
		return nil, errors.New("llm: generator is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if len(opts.Fields) == 0 {
		opts.Fields = constants.Fields
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	cs, err := CompileSchema(BuildRecordJSONSchema(opts.Fields))
	if err != nil {
		return nil, err
	}
	return &Extractor{
		gen:     gen,
		fields:  opts.Fields,
		cschema: cs,
		lenient: opts.Lenient,
		now:     opts.Now,
		log:     logger,
	}, nil
}

func (e *Extractor) Name() string { return string(constants.StrategyLLM) + ":" + e.gen.Name() }

// Extract implements extract.RecordExtractor. Every failure is a *common.DocumentError of kind
// ExtractionFailure naming doc.ID.
func (e *Extractor) Extract(ctx context.Context, doc entity.Document) (entity.Record, error) {
	start := time.Now()
	e.log.Info("llm.extract.start",
		"doc_id", doc.ID,
		"provider", e.gen.Name(),
		"text_len", len(doc.Text),
	)

	prompt := Prompt{
		System: BuildSystemPrompt(e.fields),
		User:   BuildUserPrompt(doc.ID, doc.Text),
	}
	reply, err := e.gen.Generate(ctx, prompt)
	if err != nil {
		e.log.Error("llm.extract.generate_error",
			"doc_id", doc.ID, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, common.NewExtractionFailure(doc.ID, err)
	}

	rec, err := e.ParseReply(reply)
	if err != nil {
		e.log.Error("llm.extract.schema_validation_failed",
			"doc_id", doc.ID, "error", err, "content", reply,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, common.NewExtractionFailure(doc.ID, err)
	}

	e.log.Info("llm.extract.ok",
		"doc_id", doc.ID,
		"title", rec[constants.FieldTitle],
		"country", rec[constants.FieldCountry],
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return rec, nil
}

// ParseReply turns raw model output into a record, or explains why it is not one.
func (e *Extractor) ParseReply(reply string) (entity.Record, error) {
	content := []byte(StripCodeFences(reply))
	if len(content) == 0 {
		return nil, errEmptyResponse
	}

	if e.lenient {
		cleaned, _, err := NormalizeAndSanitizeJSON(content, e.log)
		if err != nil {
			return nil, err
		}
		content = cleaned
	}
	if err := ValidateJSON(e.cschema, content); err != nil {
		return nil, err
	}

	var values map[string]string
	if err := json.Unmarshal(content, &values); err != nil {
		return nil, fmt.Errorf("unmarshal fields: %w", err)
	}

	rec := entity.NewRecord()
	for _, f := range e.fields {
		rec[f] = values[f]
	}
	ts := e.now().UTC().Format(time.RFC3339)
	for _, f := range []string{constants.FieldCreatedAt, constants.FieldUpdatedAt} {
		if rec[f] == "" {
			rec[f] = ts
		}
	}
	return rec, nil
}
