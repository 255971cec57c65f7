package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/regscan/internal/core/domain"
	"github.com/custodia-labs/regscan/internal/core/ports/driven"
	"github.com/custodia-labs/regscan/internal/core/ports/driving"
)

// Ensure RunService implements the interface.
var _ driving.RunService = (*RunService)(nil)

// RunService manages run history.
type RunService struct {
	store  driven.RunStore
	writer driven.ReportWriter
}

// NewRunService creates a run service.
func NewRunService(store driven.RunStore, writer driven.ReportWriter) *RunService {
	return &RunService{
		store:  store,
		writer: writer,
	}
}

// List returns runs newest first.
func (s *RunService) List(ctx context.Context) ([]domain.RunSummary, error) {
	return s.store.ListRuns(ctx)
}

// Get returns a run with its records and failures.
func (s *RunService) Get(ctx context.Context, id string) (*domain.Run, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: run id is required", domain.ErrInvalidInput)
	}
	return s.store.GetRun(ctx, id)
}

// Export writes a stored run's records to path.
func (s *RunService) Export(ctx context.Context, id, path string) error {
	if path == "" {
		return fmt.Errorf("%w: output path is required", domain.ErrInvalidInput)
	}
	run, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.writer.WriteReport(ctx, path, run.Records); err != nil {
		return fmt.Errorf("export run %s: %w", id, err)
	}
	return nil
}

// Delete removes a run.
func (s *RunService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: run id is required", domain.ErrInvalidInput)
	}
	return s.store.DeleteRun(ctx, id)
}
