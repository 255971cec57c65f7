package domain

import "fmt"

// Origin records how a source document was obtained.
type Origin string

// Known origins.
const (
	// OriginDirect is a single PDF downloaded from its link.
	OriginDirect Origin = "direct"

	// OriginHTMLPage is a set of PDFs scraped from an HTML results page.
	OriginHTMLPage Origin = "html_page"

	// OriginLocal is a PDF read from a local directory.
	OriginLocal Origin = "local"
)

// SourceDocument is the logical document for one enforcement action.
// It may arrive as several PDF fragments which are merged, in order,
// before rasterization.
type SourceDocument struct {
	// RecordID is the regulator-assigned identifier of the action.
	RecordID string

	// Fragments holds the raw PDF byte streams in page order.
	Fragments [][]byte

	// Origin describes how the fragments were obtained.
	Origin Origin

	// Link is the location the document was fetched from. Informational.
	Link string
}

// Validate checks the document has an ID and at least one fragment.
func (d SourceDocument) Validate() error {
	if d.RecordID == "" {
		return fmt.Errorf("%w: record id is required", ErrInvalidInput)
	}
	if len(d.Fragments) == 0 {
		return fmt.Errorf("%w: document %s has no fragments", ErrInvalidInput, d.RecordID)
	}
	for i, f := range d.Fragments {
		if len(f) == 0 {
			return fmt.Errorf("%w: document %s fragment %d is empty", ErrInvalidInput, d.RecordID, i)
		}
	}
	return nil
}

// ImageFormat identifies the encoding of a page raster.
type ImageFormat string

// ImageFormatPNG is the only format produced by the rasterizer.
const ImageFormatPNG ImageFormat = "png"

// PageImage is one rendered page. It is produced by the rasterizer,
// consumed once by the recognizer and then discarded.
type PageImage struct {
	// DocumentID is the RecordID of the owning document.
	DocumentID string

	// Number is the 1-based page number.
	Number int

	// DPI is the render resolution.
	DPI int

	// Width and Height are the pixel dimensions.
	Width  int
	Height int

	// Image is the encoded raster.
	Image []byte

	// Format is the encoding of Image.
	Format ImageFormat
}

// DocumentResult is the output of running one document through
// extraction, before date filtering.
type DocumentResult struct {
	RecordID      string
	PageCount     int
	SentenceCount int
	Matches       []Match
}
