package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/custodia-labs/regscan/internal/core/domain"
	"github.com/custodia-labs/regscan/internal/core/ports/driving"
)

// mockBatchService records the last request.
type mockBatchService struct {
	req domain.BatchRequest
	run *domain.Run
	err error
}

func (m *mockBatchService) Run(_ context.Context, req domain.BatchRequest, progress driving.ProgressFunc) (*domain.Run, error) {
	m.req = req
	if progress != nil {
		progress(len(req.Records), len(req.Records), "", nil)
	}
	if m.run != nil {
		return m.run, m.err
	}
	return &domain.Run{ID: "run-1", Documents: len(req.Records)}, m.err
}

// mockLookupService serves fixed records.
type mockLookupService struct {
	records []domain.SourceRecord
	err     error

	regulator domain.Regulator
	table     string
	key       string
}

func (m *mockLookupService) Regulators() []domain.Regulator {
	return []domain.Regulator{domain.RegulatorGeneric, domain.RegulatorFDIC, domain.RegulatorOCC, domain.RegulatorFED}
}

func (m *mockLookupService) DefaultTable(domain.Regulator) (string, error) { return "Data.csv", nil }

func (m *mockLookupService) All(_ context.Context, r domain.Regulator, table string) ([]domain.SourceRecord, error) {
	m.regulator, m.table = r, table
	return m.records, m.err
}

func (m *mockLookupService) Resolve(_ context.Context, r domain.Regulator, table, key string) ([]domain.SourceRecord, error) {
	m.regulator, m.table, m.key = r, table, key
	return m.records, m.err
}

// mockRunService serves one stored run.
type mockRunService struct {
	runs       []domain.RunSummary
	run        *domain.Run
	err        error
	exportedID string
	exportPath string
	deletedID  string
}

func (m *mockRunService) List(context.Context) ([]domain.RunSummary, error) { return m.runs, m.err }

func (m *mockRunService) Get(_ context.Context, id string) (*domain.Run, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.run == nil || m.run.ID != id {
		return nil, domain.ErrNotFound
	}
	return m.run, nil
}

func (m *mockRunService) Export(_ context.Context, id, path string) error {
	m.exportedID, m.exportPath = id, path
	return m.err
}

func (m *mockRunService) Delete(_ context.Context, id string) error {
	m.deletedID = id
	if m.err != nil {
		return m.err
	}
	if m.run != nil && m.run.ID != id {
		return domain.ErrNotFound
	}
	return nil
}

// setServices swaps the package services for the test.
func setServices(t *testing.T, s Services) {
	t.Helper()
	old := Services{
		Batch:      batchService,
		LocalBatch: localBatch,
		Lookup:     lookupService,
		Runs:       runService,
		Settings:   settingsService,
		Engines:    engines,
	}
	SetServices(s)
	t.Cleanup(func() { SetServices(old) })
}

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		resetFlags()
	})
	err := rootCmd.Execute()
	return buf.String(), err
}

func resetFlags() {
	extractData, extractStart, extractEnd = "Data.csv", "", ""
	extractKeywords, extractLocal, extractOutput = "", "", "Output.csv"
	lookupTable, lookupStart, lookupEnd = "", defaultLookupStart, ""
	lookupKeywords, lookupOutput = "", "Output.csv"
	runsShowJSON, runsExportPath = false, "Output.csv"
	verbose = false
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
