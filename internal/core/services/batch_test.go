package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/regscan/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/regscan/internal/core/domain"
	"github.com/custodia-labs/regscan/internal/core/ports/driven"
	"github.com/custodia-labs/regscan/internal/normalisers/ocrtext"
)

func newTestBatch(src *fakeSource, store driven.RunStore, opts BatchOptions) *BatchService {
	extractor := NewExtractionService(&fakeAssembler{}, &fakeRasterizer{}, &fakeRecognizer{}, ocrtext.New(), nil, 2)
	return NewBatchService(src, extractor, store, nil, opts)
}

func records(ids ...string) []domain.SourceRecord {
	out := make([]domain.SourceRecord, len(ids))
	for i, id := range ids {
		out[i] = domain.SourceRecord{RecordID: id, Institution: "Bank " + id, Link: "https://example.com/" + id + ".pdf"}
	}
	return out
}

func TestBatchService_Run_EndToEnd(t *testing.T) {
	src := &fakeSource{pages: map[string][]string{
		"R1": {"Fined on March 3, 1995. No relevant content."},
	}}
	store := memory.NewRunStore()
	svc := newTestBatch(src, store, BatchOptions{Concurrency: 1})

	run, err := svc.Run(context.Background(), domain.BatchRequest{
		Records:  records("R1"),
		Criteria: domain.FilterCriteria{Start: date(1990, 1, 1), End: date(2000, 1, 1)},
		Mode:     domain.RunModeBatch,
	}, nil)

	require.NoError(t, err)
	require.Len(t, run.Records, 1)
	assert.Equal(t, domain.OutputRecord{
		RecordID:       "R1",
		Institution:    "Bank R1",
		KeyInformation: "March 3, 1995",
		Sentence:       "Fined on March 3, 1995",
	}, run.Records[0])
	assert.Empty(t, run.Failures)
	assert.Equal(t, 1, run.Documents)
	assert.NotEmpty(t, run.ID)
	assert.False(t, run.FinishedAt.Before(run.StartedAt))

	saved, err := store.GetRun(context.Background(), run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.Records, saved.Records)
}

func TestBatchService_Run_FailureIsolation(t *testing.T) {
	src := &fakeSource{
		pages: map[string][]string{
			"A": {"penalty A"},
			"C": {"penalty C"},
		},
		errs: map[string]error{"B": errors.New("connection reset")},
	}
	svc := newTestBatch(src, nil, BatchOptions{Concurrency: 3})

	var (
		mu    sync.Mutex
		dones []int
		fails []string
	)
	progress := func(done, total int, recordID string, err error) {
		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, 3, total)
		dones = append(dones, done)
		if err != nil {
			fails = append(fails, recordID)
		}
	}

	run, err := svc.Run(context.Background(), domain.BatchRequest{
		Records:  records("A", "B", "C"),
		Criteria: domain.FilterCriteria{Keywords: []string{"penalty"}},
	}, progress)

	require.NoError(t, err)
	require.Len(t, run.Records, 2)
	assert.Equal(t, "A", run.Records[0].RecordID)
	assert.Equal(t, "C", run.Records[1].RecordID)
	require.Len(t, run.Failures, 1)
	assert.Equal(t, "B", run.Failures[0].RecordID)
	assert.Contains(t, run.Failures[0].Error, "connection reset")
	assert.Equal(t, 2, run.Succeeded())

	assert.Equal(t, []int{1, 2, 3}, dones)
	assert.Equal(t, []string{"B"}, fails)
}

func TestBatchService_Run_PreservesInputOrder(t *testing.T) {
	// Earlier documents finish later.
	src := &fakeSource{
		pages: map[string][]string{},
		delay: map[string]time.Duration{},
	}
	ids := []string{"1", "2", "3", "4", "5"}
	for i, id := range ids {
		src.pages[id] = []string{"penalty " + id}
		src.delay[id] = time.Duration(len(ids)-i) * 10 * time.Millisecond
	}
	svc := newTestBatch(src, nil, BatchOptions{Concurrency: len(ids)})

	run, err := svc.Run(context.Background(), domain.BatchRequest{
		Records:  records(ids...),
		Criteria: domain.FilterCriteria{Keywords: []string{"penalty"}},
	}, nil)

	require.NoError(t, err)
	require.Len(t, run.Records, len(ids))
	for i, rec := range run.Records {
		assert.Equal(t, ids[i], rec.RecordID)
	}
}

func TestBatchService_Run_DateParseErrorDoesNotFailDocument(t *testing.T) {
	src := &fakeSource{pages: map[string][]string{
		"R": {"Issued February 30, 2015. Fined June 1, 2015."},
	}}
	svc := newTestBatch(src, nil, BatchOptions{})

	run, err := svc.Run(context.Background(), domain.BatchRequest{
		Records:  records("R"),
		Criteria: domain.FilterCriteria{Start: date(2015, 1, 1)},
	}, nil)

	require.NoError(t, err)
	assert.Empty(t, run.Failures)
	require.Len(t, run.Records, 1)
	assert.Equal(t, "June 1, 2015", run.Records[0].KeyInformation)
}

func TestBatchService_Run_ZeroMatchesIsNotAFailure(t *testing.T) {
	src := &fakeSource{pages: map[string][]string{"R": {"Nothing to see."}}}
	svc := newTestBatch(src, nil, BatchOptions{})

	run, err := svc.Run(context.Background(), domain.BatchRequest{Records: records("R")}, nil)

	require.NoError(t, err)
	assert.Empty(t, run.Records)
	assert.Empty(t, run.Failures)
}

func TestBatchService_Run_InvalidCriteria(t *testing.T) {
	svc := newTestBatch(&fakeSource{}, nil, BatchOptions{})

	run, err := svc.Run(context.Background(), domain.BatchRequest{
		Records:  records("R"),
		Criteria: domain.FilterCriteria{Start: date(2001, 1, 1), End: date(2000, 1, 1)},
	}, nil)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, run)
}

func TestBatchService_Run_DocumentTimeout(t *testing.T) {
	src := &fakeSource{
		pages: map[string][]string{"fast": {"penalty"}},
		block: map[string]bool{"slow": true},
	}
	svc := newTestBatch(src, nil, BatchOptions{Concurrency: 2, DocumentTimeout: 20 * time.Millisecond})

	run, err := svc.Run(context.Background(), domain.BatchRequest{
		Records:  records("slow", "fast"),
		Criteria: domain.FilterCriteria{Keywords: []string{"penalty"}},
	}, nil)

	require.NoError(t, err)
	require.Len(t, run.Failures, 1)
	assert.Equal(t, "slow", run.Failures[0].RecordID)
	assert.Contains(t, run.Failures[0].Error, context.DeadlineExceeded.Error())
	require.Len(t, run.Records, 1)
	assert.Equal(t, "fast", run.Records[0].RecordID)
}

func TestBatchService_Run_Cancelled(t *testing.T) {
	store := memory.NewRunStore()
	svc := newTestBatch(&fakeSource{pages: map[string][]string{"A": {"x"}}}, store, BatchOptions{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	run, err := svc.Run(ctx, domain.BatchRequest{Records: records("A", "B")}, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, run)
	require.Len(t, run.Failures, 2)
	assert.True(t, strings.HasPrefix(run.Failures[0].Error, "not processed"))

	// The partial run is still saved.
	_, err = store.GetRun(context.Background(), run.ID)
	assert.NoError(t, err)
}

func TestBatchService_Run_SaveFailure(t *testing.T) {
	src := &fakeSource{pages: map[string][]string{"A": {"penalty"}}}
	svc := newTestBatch(src, failingRunStore{}, BatchOptions{})

	run, err := svc.Run(context.Background(), domain.BatchRequest{
		Records:  records("A"),
		Criteria: domain.FilterCriteria{Keywords: []string{"penalty"}},
	}, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "save run")
	require.NotNil(t, run)
	assert.Len(t, run.Records, 1)
}

func TestBatchService_Run_RecordsRequestMetadata(t *testing.T) {
	src := &fakeSource{pages: map[string][]string{"A": {"x"}}}
	svc := newTestBatch(src, nil, BatchOptions{})

	run, err := svc.Run(context.Background(), domain.BatchRequest{
		Records:   records("A"),
		Mode:      domain.RunModeLookup,
		Regulator: domain.RegulatorOCC,
		Key:       "AA-EC-2015-1",
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, domain.RunModeLookup, run.Mode)
	assert.Equal(t, domain.RegulatorOCC, run.Regulator)
	assert.Equal(t, "AA-EC-2015-1", run.Key)
}

func TestBatchService_Run_WritesReport(t *testing.T) {
	src := &fakeSource{pages: map[string][]string{"A": {"penalty"}}}
	extractor := NewExtractionService(&fakeAssembler{}, &fakeRasterizer{}, &fakeRecognizer{}, ocrtext.New(), nil, 1)

	t.Run("writes records to output", func(t *testing.T) {
		writer := &fakeReportWriter{}
		svc := NewBatchService(src, extractor, nil, writer, BatchOptions{})

		run, err := svc.Run(context.Background(), domain.BatchRequest{
			Records:  records("A", "B"),
			Criteria: domain.FilterCriteria{Keywords: []string{"penalty"}},
			Output:   "Output.csv",
		}, nil)

		require.NoError(t, err)
		assert.Equal(t, "Output.csv", writer.path)
		assert.Equal(t, run.Records, writer.records)
	})

	t.Run("no output path skips writing", func(t *testing.T) {
		writer := &fakeReportWriter{}
		svc := NewBatchService(src, extractor, nil, writer, BatchOptions{})

		_, err := svc.Run(context.Background(), domain.BatchRequest{Records: records("A")}, nil)

		require.NoError(t, err)
		assert.Empty(t, writer.path)
	})

	t.Run("write failure is returned with the run", func(t *testing.T) {
		writer := &fakeReportWriter{err: errors.New("read-only file system")}
		svc := NewBatchService(src, extractor, nil, writer, BatchOptions{})

		run, err := svc.Run(context.Background(), domain.BatchRequest{Records: records("A"), Output: "x.csv"}, nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "write report")
		assert.NotNil(t, run)
	})
}

func TestBatchService_Run_SavesAssembledDocuments(t *testing.T) {
	src := &fakeSource{pages: map[string][]string{
		"A": {"page one", "page two"},
		"B": {"only page"},
	}}
	docs := memory.NewDocumentStore()
	extractor := NewExtractionService(&fakeAssembler{}, &fakeRasterizer{}, &fakeRecognizer{}, ocrtext.New(), docs, 2)
	svc := NewBatchService(src, extractor, nil, nil, BatchOptions{Concurrency: 2})

	run, err := svc.Run(context.Background(), domain.BatchRequest{
		Records:  records("A", "B"),
		Criteria: domain.FilterCriteria{Start: date(1990, 1, 1)},
		Mode:     domain.RunModeBatch,
	}, nil)

	require.NoError(t, err)
	assert.Empty(t, run.Failures)
	assert.Equal(t, []string{"A", "B"}, docs.RecordIDs())

	pdf, err := docs.LoadAssembled(context.Background(), "A")
	require.NoError(t, err)
	assert.Equal(t, "page one\fpage two", string(pdf))
}
