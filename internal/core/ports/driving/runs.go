package driving

import (
	"context"

	"github.com/custodia-labs/regscan/internal/core/domain"
)

// RunService manages run history.
type RunService interface {
	// List returns runs newest first.
	List(ctx context.Context) ([]domain.RunSummary, error)

	// Get returns a run with its records and failures.
	Get(ctx context.Context, id string) (*domain.Run, error)

	// Export writes a stored run's records as a report.
	Export(ctx context.Context, id, path string) error

	// Delete removes a run.
	Delete(ctx context.Context, id string) error
}
