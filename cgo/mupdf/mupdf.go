//go:build cgo

package mupdf

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"

	"github.com/gen2brain/go-fitz"
	xdraw "golang.org/x/image/draw"

	"github.com/custodia-labs/regscan/internal/core/domain"
	"github.com/custodia-labs/regscan/internal/core/ports/driven"
)

// Ensure Rasterizer implements the interface.
var _ driven.PageRasterizer = (*Rasterizer)(nil)

// encoder favours speed; pages are encoded once and decoded once.
var encoder = png.Encoder{CompressionLevel: png.BestSpeed}

// Rasterizer renders pages at a fixed resolution.
type Rasterizer struct {
	dpi int
}

// New creates a rasterizer rendering at dpi.
func New(dpi int) *Rasterizer {
	if dpi <= 0 {
		dpi = domain.DefaultRasterDPI
	}
	return &Rasterizer{dpi: dpi}
}

// Available reports whether MuPDF is compiled in.
func Available() bool { return true }

// Open parses pdf. Pages are rendered on demand by the returned handle.
func (r *Rasterizer) Open(ctx context.Context, documentID string, pdf []byte) (driven.RasterizedDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, err := fitz.NewFromMemory(pdf)
	if err != nil {
		return nil, &domain.RasterizationError{RecordID: documentID, Err: err}
	}
	return &document{
		doc:        doc,
		documentID: documentID,
		dpi:        r.dpi,
		pages:      doc.NumPage(),
	}, nil
}

// document wraps an open MuPDF document. go-fitz serialises calls on the
// document internally, so Page is safe to call from several goroutines.
type document struct {
	doc        *fitz.Document
	documentID string
	dpi        int
	pages      int
}

func (d *document) PageCount() int {
	return d.pages
}

func (d *document) Page(ctx context.Context, n int) (domain.PageImage, error) {
	if err := ctx.Err(); err != nil {
		return domain.PageImage{}, err
	}
	if n < 1 || n > d.pages {
		return domain.PageImage{}, &domain.RasterizationError{
			RecordID: d.documentID,
			Page:     n,
			Err:      fmt.Errorf("%w: document has %d pages", domain.ErrInvalidInput, d.pages),
		}
	}

	img, err := d.doc.ImageDPI(n-1, float64(d.dpi))
	if err != nil {
		return domain.PageImage{}, &domain.RasterizationError{RecordID: d.documentID, Page: n, Err: err}
	}

	gray := toGray(img)
	var buf bytes.Buffer
	if err := encoder.Encode(&buf, gray); err != nil {
		return domain.PageImage{}, &domain.RasterizationError{RecordID: d.documentID, Page: n, Err: err}
	}

	bounds := gray.Bounds()
	return domain.PageImage{
		DocumentID: d.documentID,
		Number:     n,
		DPI:        d.dpi,
		Width:      bounds.Dx(),
		Height:     bounds.Dy(),
		Image:      buf.Bytes(),
		Format:     domain.ImageFormatPNG,
	}, nil
}

func (d *document) Close() error {
	return d.doc.Close()
}

// toGray drops colour before encoding. Tesseract binarises internally, and
// a grey PNG of a 500 DPI page is a quarter of the RGBA size.
func toGray(src image.Image) *image.Gray {
	bounds := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	xdraw.Draw(dst, dst.Bounds(), src, bounds.Min, xdraw.Src)
	return dst
}
