package driving

import (
	"context"

	"github.com/custodia-labs/regscan/internal/core/domain"
)

// ExtractionService runs one document through assembly, rasterization,
// OCR, normalisation and scanning.
type ExtractionService interface {
	// Extract returns the ordered matches found in doc.
	Extract(ctx context.Context, doc domain.SourceDocument, criteria domain.FilterCriteria) (*domain.DocumentResult, error)

	// ExtractPDF is Extract for an already assembled PDF.
	ExtractPDF(ctx context.Context, recordID string, pdf []byte, criteria domain.FilterCriteria) (*domain.DocumentResult, error)
}
