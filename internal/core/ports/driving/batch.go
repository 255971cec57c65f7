package driving

import (
	"context"

	"github.com/custodia-labs/regscan/internal/core/domain"
)

// ProgressFunc is called after each document finishes.
// done counts finished documents, failed or not.
type ProgressFunc func(done, total int, recordID string, err error)

// BatchService processes a set of records into report rows.
type BatchService interface {
	// Run processes every record of req. Failing documents are recorded on
	// the returned run and do not stop the batch. The error is non-nil only
	// when the run as a whole could not proceed.
	Run(ctx context.Context, req domain.BatchRequest, progress ProgressFunc) (*domain.Run, error)
}
