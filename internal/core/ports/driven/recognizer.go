package driven

import (
	"context"

	"github.com/custodia-labs/regscan/internal/core/domain"
)

// TextRecognizer runs OCR over one page image and returns the raw text,
// which may be empty. Implementations must be safe for concurrent use.
type TextRecognizer interface {
	Recognize(ctx context.Context, page domain.PageImage) (string, error)
}
