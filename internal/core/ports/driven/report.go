package driven

import (
	"context"

	"github.com/custodia-labs/regscan/internal/core/domain"
)

// ReportWriter writes output records, header first, in the given order.
type ReportWriter interface {
	WriteReport(ctx context.Context, path string, records []domain.OutputRecord) error
}
