package pipeline

import (
	"context"
	"log/slog"
	"path/filepath"
	"slices"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/joseph-ayodele/tourpack/internal/common"
	"github.com/joseph-ayodele/tourpack/internal/dataset"
	"github.com/joseph-ayodele/tourpack/internal/entity"
)

// Result is the outcome of one batch.
type Result struct {
	BatchID  uuid.UUID
	Dataset  entity.Dataset // base rows followed by the new records
	Records  []entity.Record
	Failures []entity.Failure
	Elapsed  time.Duration
}

// Processor coordinates read (file to text) then extract (text to record) for a batch,
// and merges the records into the base dataset.
type Processor struct {
	logger  *slog.Logger
	read    *ReadStage
	extract *ExtractStage
	workers int
}

func NewProcessor(logger *slog.Logger, read *ReadStage, extract *ExtractStage, workers int) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if workers < 1 {
		workers = 1
	}
	return &Processor{logger: logger, read: read, extract: extract, workers: workers}
}

// item is one unit of a batch: either a path still to be read or a document already in memory.
type item struct {
	path string
	doc  *entity.Document
}

// outcome is a worker's buffer for its partition.
type outcome struct {
	records  []entity.Record
	failures []entity.Failure
}

// Run processes the files at paths in order against base.
func (p *Processor) Run(ctx context.Context, base entity.Dataset, paths []string) (Result, error) {
	items := make([]item, len(paths))
	for i, path := range paths {
		items[i] = item{path: path}
	}
	return p.run(ctx, base, items)
}

// RunDocuments processes documents whose text is already available.
func (p *Processor) RunDocuments(ctx context.Context, base entity.Dataset, docs []entity.Document) (Result, error) {
	items := make([]item, len(docs))
	for i := range docs {
		items[i] = item{doc: &docs[i]}
	}
	return p.run(ctx, base, items)
}

func (p *Processor) run(ctx context.Context, base entity.Dataset, items []item) (Result, error) {
	start := time.Now()
	res := Result{BatchID: uuid.New()}
	log := p.logger.With("batch_id", res.BatchID)
	ctx = common.WithBatchID(ctx, res.BatchID.String())

	if missing := dataset.MissingColumns(base.Columns); len(missing) > 0 {
		log.Error("pipeline.batch.schema_mismatch", "missing", missing)
		return res, common.NewSchemaMismatch(missing)
	}

	log.Info("pipeline.batch.start",
		"documents", len(items),
		"base_rows", base.Len(),
		"extractor", p.extract.Extractor.Name(),
		"workers", p.workers,
	)

	parts := partition(items, p.workers)
	outs := make([]outcome, len(parts))
	var g errgroup.Group
	for i, part := range parts {
		g.Go(func() error {
			out, err := p.process(ctx, log, part)
			outs[i] = out
			return err
		})
	}
	if err := g.Wait(); err != nil {
		log.Error("pipeline.batch.aborted", "error", err)
		return res, err
	}

	for _, out := range outs {
		res.Records = append(res.Records, out.records...)
		res.Failures = append(res.Failures, out.failures...)
	}
	res.Elapsed = time.Since(start)

	if len(res.Records) == 0 {
		log.Error("pipeline.batch.no_records", "failures", len(res.Failures))
		return res, common.ErrNoRecords
	}

	res.Dataset = dataset.Merge(base, res.Records)
	log.Info("pipeline.batch.ok",
		"records", len(res.Records),
		"failures", len(res.Failures),
		"rows", res.Dataset.Len(),
		"elapsed_ms", res.Elapsed.Milliseconds(),
	)
	return res, nil
}

// process handles one partition in order. Only context cancellation stops it early;
// document failures are collected and the next document continues.
func (p *Processor) process(ctx context.Context, log *slog.Logger, items []item) (outcome, error) {
	var out outcome
	for _, it := range items {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		rec, doc, err := p.one(ctx, it)
		if err != nil {
			if ctx.Err() != nil {
				return out, ctx.Err()
			}
			out.failures = append(out.failures, failureOf(doc, err))
			log.Warn("pipeline.doc.failed", "doc_id", doc.ID, "kind", common.KindOf(err), "error", err)
			continue
		}
		out.records = append(out.records, rec)
		log.Debug("pipeline.doc.ok", "doc_id", doc.ID)
	}
	return out, nil
}

func (p *Processor) one(ctx context.Context, it item) (entity.Record, entity.Document, error) {
	var doc entity.Document
	if it.doc != nil {
		doc = *it.doc
		ctx = common.WithDocumentID(ctx, doc.ID)
	} else {
		ctx = common.WithDocumentID(ctx, filepath.Base(it.path))
		d, res, err := p.read.Run(ctx, it.path)
		if err != nil {
			return nil, d, err
		}
		doc = d
		p.logger.Debug("pipeline.read.ok",
			"doc_id", doc.ID,
			"method", res.Method,
			"pages", res.Pages,
			"text_len", len(doc.Text),
			"elapsed_ms", res.Duration.Milliseconds(),
		)
	}
	rec, err := p.extract.Run(ctx, doc)
	return rec, doc, err
}

func failureOf(doc entity.Document, err error) entity.Failure {
	return entity.Failure{
		DocumentID: doc.ID,
		Path:       doc.Path,
		Kind:       common.KindOf(err),
		Reason:     err.Error(),
	}
}

// partition splits items into at most n contiguous, disjoint slices in input order.
func partition(items []item, n int) [][]item {
	if len(items) == 0 {
		return nil
	}
	size := (len(items) + n - 1) / n
	return slices.Collect(slices.Chunk(items, size))
}
