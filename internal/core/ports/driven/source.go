package driven

import (
	"context"

	"github.com/custodia-labs/regscan/internal/core/domain"
)

// DocumentSource obtains the PDF fragments for one table row.
type DocumentSource interface {
	Fetch(ctx context.Context, record domain.SourceRecord) (domain.SourceDocument, error)
}
