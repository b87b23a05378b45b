package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"time"

	"github.com/joseph-ayodele/tourpack/constants"
	"github.com/joseph-ayodele/tourpack/internal/common"
	"github.com/joseph-ayodele/tourpack/internal/entity"
	"github.com/joseph-ayodele/tourpack/internal/llm"
	"github.com/joseph-ayodele/tourpack/internal/pipeline"
)

func main() {
	var (
		configPath = flag.String("config", "", "optional YAML config file")
		strategy   = flag.String("strategy", "", "record extractor: rules | llm (overrides STRATEGY)")
		times      = flag.Int("times", 1, "run the extractor this many times on the same document")
		pause      = flag.Duration("pause", 750*time.Millisecond, "pause between llm runs")
	)
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if flag.NArg() != 1 {
		logger.Error("usage: tour-extract [-strategy rules|llm] [-times N] <document>")
		os.Exit(2)
	}
	path := flag.Arg(0)
	if *times < 1 {
		*times = 1
	}

	cfg, err := common.LoadConfig(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *strategy != "" {
		cfg.Batch.Strategy = constants.Strategy(*strategy)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute*time.Duration(*times))
	defer cancel()

	read := pipeline.NewReadStage(pipeline.NewTextExtractor(cfg.Documents, logger), logger)
	doc, res, err := read.Run(ctx, path)
	if err != nil {
		logger.Error("read document", "path", path, "error", err)
		os.Exit(1)
	}
	logger.Info("document.read.ok",
		"doc_id", doc.ID,
		"method", res.Method,
		"pages", res.Pages,
		"text_len", len(doc.Text),
	)

	re, closeFn, err := pipeline.NewRecordExtractor(ctx, cfg, logger)
	if err != nil {
		logger.Error("set up extractor", "error", err)
		os.Exit(1)
	}
	defer func() { _ = closeFn() }()
	stage := pipeline.NewExtractStage(re, logger)

	var first entity.Record
	identical := true
	for i := 1; i <= *times; i++ {
		start := time.Now()
		logger.Info("extract.run.start", "iter", i, "doc_id", doc.ID, "extractor", re.Name())

		rec, err := stage.Run(common.WithDocumentID(ctx, doc.ID), doc)
		if err != nil {
			logger.Error("extract.run.error", "iter", i, "error", err)
			identical = false
			continue
		}
		logger.Info("extract.run.ok", "iter", i, "elapsed_ms", time.Since(start).Milliseconds())

		if first == nil {
			first = rec
		} else if !maps.Equal(first.WithoutTimestamps(), rec.WithoutTimestamps()) {
			identical = false
			logger.Warn("extract.run.diverged", "iter", i, "doc_id", doc.ID)
		}

		if i < *times && cfg.Batch.Strategy == constants.StrategyLLM {
			time.Sleep(*pause)
		}
	}

	if first == nil {
		logger.Error("no successful run", "doc_id", doc.ID, "times", *times)
		os.Exit(1)
	}
	logger.Info("done", "doc_id", doc.ID, "basename", filepath.Base(path), "times", *times, "identical", identical)

	fmt.Println(llm.MustJSON(first))
}
