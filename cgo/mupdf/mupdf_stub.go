//go:build !cgo

package mupdf

import (
	"context"

	"github.com/custodia-labs/regscan/internal/core/domain"
	"github.com/custodia-labs/regscan/internal/core/ports/driven"
)

// Ensure Rasterizer implements the interface.
var _ driven.PageRasterizer = (*Rasterizer)(nil)

// Rasterizer renders pages at a fixed resolution.
// This is a stub for builds without CGO.
type Rasterizer struct {
	dpi int
}

// New creates a rasterizer.
// This is a stub for builds without CGO.
func New(dpi int) *Rasterizer {
	return &Rasterizer{dpi: dpi}
}

// Available reports whether MuPDF is compiled in.
func Available() bool { return false }

// Open always fails without CGO.
func (r *Rasterizer) Open(_ context.Context, documentID string, _ []byte) (driven.RasterizedDocument, error) {
	return nil, &domain.RasterizationError{RecordID: documentID, Err: domain.ErrEngineUnavailable}
}
