package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/regscan/internal/core/domain"
	"github.com/custodia-labs/regscan/internal/core/ports/driven"
	"github.com/custodia-labs/regscan/internal/core/ports/driving"
	"github.com/custodia-labs/regscan/internal/logger"
)

// Ensure BatchService implements the interface.
var _ driving.BatchService = (*BatchService)(nil)

// BatchOptions bounds a batch run.
type BatchOptions struct {
	// Concurrency is the number of documents processed at once.
	Concurrency int

	// DocumentTimeout caps each document, fetch included. Zero disables it.
	DocumentTimeout time.Duration
}

// BatchService fans documents out to the extraction pipeline and merges
// the results in input order.
type BatchService struct {
	source    driven.DocumentSource
	extractor driving.ExtractionService
	filter    *ReportFilter
	runStore  driven.RunStore
	writer    driven.ReportWriter
	opts      BatchOptions
	now       func() time.Time
}

// NewBatchService creates a batch service. runStore and writer are optional.
func NewBatchService(
	source driven.DocumentSource,
	extractor driving.ExtractionService,
	runStore driven.RunStore,
	writer driven.ReportWriter,
	opts BatchOptions,
) *BatchService {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	return &BatchService{
		source:    source,
		extractor: extractor,
		filter:    NewReportFilter(),
		runStore:  runStore,
		writer:    writer,
		opts:      opts,
		now:       time.Now,
	}
}

// documentOutcome is written by exactly one worker.
type documentOutcome struct {
	attempted bool
	records   []domain.OutputRecord
	err       error
}

// Run processes every record of req.
func (b *BatchService) Run(
	ctx context.Context,
	req domain.BatchRequest,
	progress driving.ProgressFunc,
) (*domain.Run, error) {
	if err := req.Criteria.Validate(); err != nil {
		return nil, err
	}

	run := &domain.Run{
		ID:        uuid.New().String(),
		Mode:      req.Mode,
		Regulator: req.Regulator,
		Key:       req.Key,
		Criteria:  req.Criteria,
		StartedAt: b.now(),
		Documents: len(req.Records),
	}
	logger.Section("Run " + run.ID)
	logger.Info("Processing %d document(s), concurrency %d", len(req.Records), b.opts.Concurrency)

	outcomes := make([]documentOutcome, len(req.Records))

	var (
		mu   sync.Mutex
		done int
	)
	report := func(recordID string, err error) {
		mu.Lock()
		defer mu.Unlock()
		done++
		if progress != nil {
			progress(done, len(req.Records), recordID, err)
		}
	}

	// Document failures never cancel siblings, so no group context.
	var g errgroup.Group
	g.SetLimit(b.opts.Concurrency)
	for i, rec := range req.Records {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			records, err := b.processRecord(ctx, rec, req.Criteria)
			outcomes[i] = documentOutcome{attempted: true, records: records, err: err}
			report(rec.RecordID, err)
			return nil
		})
	}
	_ = g.Wait()

	// Merge in input order.
	for i, o := range outcomes {
		recordID := req.Records[i].RecordID
		switch {
		case !o.attempted:
			run.Failures = append(run.Failures, domain.DocumentFailure{
				RecordID: recordID,
				Error:    fmt.Sprintf("not processed: %v", ctx.Err()),
			})
		case o.err != nil:
			run.Failures = append(run.Failures, domain.DocumentFailure{RecordID: recordID, Error: o.err.Error()})
		}
		run.Records = append(run.Records, o.records...)
	}
	run.FinishedAt = b.now()

	logger.Info("Run %s: %d record(s), %d failure(s) in %s",
		run.ID, len(run.Records), len(run.Failures), run.Duration().Round(time.Millisecond))

	var errs []error
	if err := ctx.Err(); err != nil {
		errs = append(errs, fmt.Errorf("run interrupted: %w", err))
	}
	// A partial report is still written after an interrupt.
	if req.Output != "" && b.writer != nil {
		if err := b.writer.WriteReport(context.WithoutCancel(ctx), req.Output, run.Records); err != nil {
			errs = append(errs, fmt.Errorf("write report: %w", err))
		} else {
			logger.Info("Report written to %s", req.Output)
		}
	}
	if b.runStore != nil {
		if err := b.runStore.SaveRun(context.WithoutCancel(ctx), run); err != nil {
			errs = append(errs, fmt.Errorf("save run: %w", err))
		}
	}
	return run, errors.Join(errs...)
}

// processRecord runs one record end to end under the per-document deadline.
func (b *BatchService) processRecord(
	ctx context.Context,
	rec domain.SourceRecord,
	criteria domain.FilterCriteria,
) ([]domain.OutputRecord, error) {
	if b.opts.DocumentTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.opts.DocumentTimeout)
		defer cancel()
	}

	logger.Info("%s: %s", rec.RecordID, rec.Link)

	doc, err := b.source.Fetch(ctx, rec)
	if err != nil {
		logger.Warn("%s: fetch: %v", rec.RecordID, err)
		return nil, fmt.Errorf("fetch: %w", err)
	}

	result, err := b.extractor.Extract(ctx, doc, criteria)
	if err != nil {
		logger.Warn("%s: %v", rec.RecordID, err)
		return nil, err
	}

	records, err := b.filter.Filter(rec, result.Matches, criteria)
	if err != nil {
		// Unparseable dates drop only their own match.
		logger.Warn("%s: %v", rec.RecordID, err)
	}
	return records, nil
}
