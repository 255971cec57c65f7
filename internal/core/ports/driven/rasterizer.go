package driven

import (
	"context"

	"github.com/custodia-labs/regscan/internal/core/domain"
)

// PageRasterizer opens a PDF for page rendering.
type PageRasterizer interface {
	// Open parses pdf and returns a handle for rendering its pages.
	// documentID is copied onto every PageImage.
	Open(ctx context.Context, documentID string, pdf []byte) (RasterizedDocument, error)
}

// RasterizedDocument renders pages of an opened PDF on demand so that only
// pages in flight occupy memory. Page may be called concurrently.
type RasterizedDocument interface {
	// PageCount returns the number of pages.
	PageCount() int

	// Page renders page n, 1-based.
	Page(ctx context.Context, n int) (domain.PageImage, error)

	// Close releases native resources. Pages must not be requested after Close.
	Close() error
}
