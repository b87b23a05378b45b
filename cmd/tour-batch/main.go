package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/joseph-ayodele/tourpack/constants"
	"github.com/joseph-ayodele/tourpack/internal/common"
	"github.com/joseph-ayodele/tourpack/internal/dataset"
	"github.com/joseph-ayodele/tourpack/internal/entity"
	"github.com/joseph-ayodele/tourpack/internal/export"
	"github.com/joseph-ayodele/tourpack/internal/ingest"
	"github.com/joseph-ayodele/tourpack/internal/pipeline"
	repo "github.com/joseph-ayodele/tourpack/internal/repository"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		configPath = flag.String("config", "", "optional YAML config file")
		basePath   = flag.String("base", "", "base dataset file (.csv or .xlsx)")
		dbTable    = flag.String("db-table", "", "base dataset SQL table (uses DB_DRIVER and DB_URL)")
		dir        = flag.String("dir", "", "directory of itinerary documents")
		out        = flag.String("out", "", "output file path (optional, defaults next to -dir)")
		format     = flag.String("format", export.FormatCSV, "output format: csv | xlsx")
		strategy   = flag.String("strategy", "", "record extractor: rules | llm (overrides STRATEGY)")
		workers    = flag.Int("workers", 0, "number of workers (overrides WORKERS)")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *dir == "" && flag.NArg() == 0 {
		printError("Error: --dir or at least one document path is required\n")
		os.Exit(2)
	}
	if *basePath != "" && *dbTable != "" {
		printError("Error: use either --base or --db-table, not both\n")
		os.Exit(2)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := common.LoadConfig(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *strategy != "" {
		cfg.Batch.Strategy = constants.Strategy(*strategy)
	}
	if *workers > 0 {
		cfg.Batch.Workers = *workers
	}
	if *dbTable != "" {
		cfg.Database.Table = *dbTable
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Collect the batch
	paths := flag.Args()
	if *dir != "" {
		found, stats, err := ingest.ListDocuments(*dir, nil, cfg.Documents.SkipHidden)
		if err != nil {
			logger.Error("failed to list documents", "dir", *dir, "error", err)
			os.Exit(1)
		}
		logger.Info("ingestion complete",
			"dir", *dir,
			"scanned", stats.Scanned,
			"matched", stats.Matched,
			"hidden", stats.Hidden,
			"failed", stats.Failed,
		)
		paths = append(paths, found...)
	}

	// Base dataset
	var (
		base  entity.Dataset
		store *repo.TableStore
	)
	switch {
	case *basePath != "":
		base, err = dataset.LoadFile(*basePath)
		if err != nil {
			logger.Error("failed to load base dataset", "path", *basePath, "error", err)
			os.Exit(1)
		}
	case *dbTable != "":
		if cfg.Database.Driver == "" {
			logger.Error("--db-table needs DB_DRIVER and DB_URL")
			os.Exit(1)
		}
		db, err := repo.Open(ctx, repo.Config{
			Driver:          cfg.Database.Driver,
			DSN:             cfg.Database.DSN,
			MaxConns:        cfg.Database.MaxConns,
			MinConns:        cfg.Database.MinConns,
			MaxConnLifetime: cfg.Database.MaxConnLifetime,
			MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
			DialTimeout:     cfg.Database.DialTimeout,
		}, logger)
		if err != nil {
			logger.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		store = repo.NewTableStore(db, cfg.Database.Table, logger)
		if err := store.EnsureTable(ctx); err != nil {
			logger.Error("failed to prepare table", "table", cfg.Database.Table, "error", err)
			os.Exit(1)
		}
		base, err = store.Load(ctx)
		if err != nil {
			logger.Error("failed to load table", "table", cfg.Database.Table, "error", err)
			os.Exit(1)
		}
	default:
		logger.Warn("no base dataset given, starting from an empty schema table")
		base = dataset.Empty()
	}

	processor, closeFn, err := pipeline.NewFromConfig(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to set up pipeline", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := closeFn(); err != nil {
			logger.Warn("failed to close extractor", "error", err)
		}
	}()

	res, err := processor.Run(ctx, base, paths)
	for _, f := range res.Failures {
		printError("- %s [%s]: %s\n", f.DocumentID, f.Kind, f.Reason)
	}
	if err != nil {
		switch {
		case errors.Is(err, common.ErrSchemaMismatch):
			printError("Error: base dataset does not match the schema: %v\n", err)
		case errors.Is(err, common.ErrNoRecords):
			printError("Error: no records extracted from %d documents\n", len(paths))
		default:
			printError("Error: batch failed: %v\n", err)
		}
		os.Exit(1)
	}

	// Persist
	if store != nil {
		if _, err := store.Append(ctx, res.Records); err != nil {
			logger.Error("failed to append records", "table", cfg.Database.Table, "error", err)
			os.Exit(1)
		}
	}
	if *out == "" && store == nil {
		parent := "."
		if *dir != "" {
			parent = filepath.Dir(filepath.Clean(*dir))
		}
		*out = filepath.Join(parent, "tour_packages."+*format)
	}
	if *out != "" {
		if err := export.NewService(logger).WriteFile(*out, res.Dataset, *format); err != nil {
			logger.Error("failed to write output file", "error", err)
			os.Exit(1)
		}
	}

	logger.Info("batch processing complete",
		"batch_id", res.BatchID,
		"documents", len(paths),
		"records", len(res.Records),
		"failures", len(res.Failures),
		"rows", res.Dataset.Len(),
		"output_file", *out,
	)

	fmt.Printf("Batch processing complete!\n")
	fmt.Printf("- Documents: %d\n", len(paths))
	fmt.Printf("- Records added: %d\n", len(res.Records))
	fmt.Printf("- Failures: %d\n", len(res.Failures))
	fmt.Printf("- Rows in dataset: %d\n", res.Dataset.Len())
	if store != nil {
		fmt.Printf("- Table: %s\n", cfg.Database.Table)
	}
	if *out != "" {
		fmt.Printf("- Output: %s\n", *out)
	}
}
