// Package doctext turns itinerary documents (PDF, plain text, HTML) into one normalized text blob
// per document, page order preserved and page markers removed.
package doctext

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joseph-ayodele/tourpack/constants"
)

var ErrFileTooLarge = errors.New("document exceeds size limit")

type Config struct {
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
	MaxFileMB int    // 0 = no limit
	// DisablePDFFallback skips the pdfcpu content-stream reader when pdftotext fails.
	DisablePDFFallback bool
}

type Result struct {
	Text       string
	Pages      int
	SourceType string // constants.PDF | constants.TEXT | constants.HTML
	Method     string // "pdftotext" | "pdfcpu" | "plain" | "html"
	Duration   time.Duration
	Warnings   []string
}

type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	return &Extractor{cfg: cfg, runner: execRunner{logger: logger}, logger: logger}
}

// WithRunner swaps the external command runner, mainly for tests.
func (e *Extractor) WithRunner(r Runner) *Extractor {
	if r != nil {
		e.runner = r
	}
	return e
}

// Extract picks a reader based on file extension.
func (e *Extractor) Extract(ctx context.Context, path string) (Result, error) {
	start := time.Now()
	ext := constants.NormalizeExt(filepath.Ext(path))
	e.logger.Debug("doctext.extract.start", "path", path, "ext", ext)

	if err := e.checkSize(path); err != nil {
		return Result{}, err
	}

	var (
		res Result
		err error
	)
	switch constants.MapExtToFormat(ext) {
	case constants.PDF:
		res, err = e.extractPDF(ctx, path)
	case constants.TEXT:
		res, err = extractPlain(path)
	case constants.HTML:
		res, err = extractHTML(path)
	default:
		e.logger.Error("doctext.extract.unsupported", "path", path, "ext", ext)
		return Result{}, fmt.Errorf("unsupported extension: %q", ext)
	}
	res.Duration = time.Since(start)
	if err != nil {
		return res, err
	}
	res.Text = Normalize(res.Text)

	e.logger.Debug("doctext.extract.ok",
		"path", path,
		"method", res.Method,
		"pages", res.Pages,
		"text_len", len(res.Text),
		"elapsed_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}

func (e *Extractor) checkSize(path string) error {
	st, err := os.Stat(path)
	if err != nil {
		return err
	}
	if st.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	if e.cfg.MaxFileMB > 0 && st.Size() > int64(e.cfg.MaxFileMB)<<20 {
		return fmt.Errorf("%w: %d bytes > %d MB", ErrFileTooLarge, st.Size(), e.cfg.MaxFileMB)
	}
	return nil
}
