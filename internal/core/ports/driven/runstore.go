package driven

import (
	"context"

	"github.com/custodia-labs/regscan/internal/core/domain"
)

// RunStore persists run history.
type RunStore interface {
	// SaveRun stores or replaces a run with its records and failures.
	SaveRun(ctx context.Context, run *domain.Run) error

	// GetRun retrieves a run by ID, including records and failures.
	// Returns domain.ErrNotFound if it does not exist.
	GetRun(ctx context.Context, id string) (*domain.Run, error)

	// ListRuns returns run summaries newest first.
	ListRuns(ctx context.Context) ([]domain.RunSummary, error)

	// DeleteRun removes a run.
	DeleteRun(ctx context.Context, id string) error
}
