package services

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/regscan/internal/core/domain"
	"github.com/custodia-labs/regscan/internal/core/ports/driven"
	"github.com/custodia-labs/regscan/internal/core/ports/driving"
	"github.com/custodia-labs/regscan/internal/logger"
)

// Ensure ExtractionService implements the interface.
var _ driving.ExtractionService = (*ExtractionService)(nil)

// ExtractionService runs a document through the OCR pipeline.
type ExtractionService struct {
	assembler  driven.DocumentAssembler
	rasterizer driven.PageRasterizer
	recognizer driven.TextRecognizer
	normaliser driven.TextNormaliser
	docStore   driven.DocumentStore
	scanner    *Scanner
	workers    int
}

// NewExtractionService creates an extraction service. workers bounds the
// number of pages recognised at once; values below 1 use the CPU count.
// docStore is optional; when set, every assembled PDF is saved to it.
func NewExtractionService(
	assembler driven.DocumentAssembler,
	rasterizer driven.PageRasterizer,
	recognizer driven.TextRecognizer,
	normaliser driven.TextNormaliser,
	docStore driven.DocumentStore,
	workers int,
) *ExtractionService {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	return &ExtractionService{
		assembler:  assembler,
		rasterizer: rasterizer,
		recognizer: recognizer,
		normaliser: normaliser,
		docStore:   docStore,
		scanner:    NewScanner(),
		workers:    workers,
	}
}

// Extract assembles doc and returns its matches.
func (s *ExtractionService) Extract(
	ctx context.Context,
	doc domain.SourceDocument,
	criteria domain.FilterCriteria,
) (*domain.DocumentResult, error) {
	if err := doc.Validate(); err != nil {
		return nil, &domain.AssemblyError{RecordID: doc.RecordID, Fragment: -1, Err: err}
	}

	pdf, err := s.assembler.Assemble(ctx, doc)
	if err != nil {
		var asmErr *domain.AssemblyError
		if errors.As(err, &asmErr) {
			return nil, err
		}
		return nil, &domain.AssemblyError{RecordID: doc.RecordID, Fragment: -1, Err: err}
	}
	logger.Debug("%s: assembled %d fragment(s) into %d bytes", doc.RecordID, len(doc.Fragments), len(pdf))

	if s.docStore != nil {
		// The artifact is a convenience copy; extraction goes ahead without it.
		if err := s.docStore.SaveAssembled(ctx, doc.RecordID, pdf); err != nil {
			logger.Warn("%s: save assembled document: %v", doc.RecordID, err)
		}
	}

	return s.ExtractPDF(ctx, doc.RecordID, pdf, criteria)
}

// ExtractPDF rasterizes, recognises, normalises and scans an assembled PDF.
func (s *ExtractionService) ExtractPDF(
	ctx context.Context,
	recordID string,
	pdf []byte,
	criteria domain.FilterCriteria,
) (*domain.DocumentResult, error) {
	defer logger.Since(recordID+": extraction", time.Now())

	// 1. Open the document for rendering
	raster, err := s.rasterizer.Open(ctx, recordID, pdf)
	if err != nil {
		return nil, asRasterizationError(recordID, 0, err)
	}
	defer raster.Close()

	pageCount := raster.PageCount()
	logger.Info("%s: %d page(s)", recordID, pageCount)

	// 2. OCR every page, keeping page order
	texts, err := s.recognizePages(ctx, recordID, raster, pageCount)
	if err != nil {
		return nil, err
	}

	// 3. Normalise each page and concatenate sentences in page order
	var sentences []string
	for _, text := range texts {
		sentences = append(sentences, s.normaliser.Normalise(text)...)
	}

	// 4. Scan for dates and keywords
	matches := s.scanner.Scan(sentences, criteria.Keywords)
	logger.Debug("%s: %d sentence(s), %d match(es)", recordID, len(sentences), len(matches))

	return &domain.DocumentResult{
		RecordID:      recordID,
		PageCount:     pageCount,
		SentenceCount: len(sentences),
		Matches:       matches,
	}, nil
}

// recognizePages renders and recognises pages on a bounded pool. Each
// worker writes only its own slot, so the result is in page order
// regardless of completion order. The first failure cancels the rest.
func (s *ExtractionService) recognizePages(
	ctx context.Context,
	recordID string,
	raster driven.RasterizedDocument,
	pageCount int,
) ([]string, error) {
	texts := make([]string, pageCount)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for n := 1; n <= pageCount; n++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			page, err := raster.Page(gctx, n)
			if err != nil {
				return asRasterizationError(recordID, n, err)
			}
			if page.Number != n {
				return &domain.RasterizationError{
					RecordID: recordID,
					Page:     n,
					Err:      fmt.Errorf("rasterizer returned page %d", page.Number),
				}
			}

			text, err := s.recognizer.Recognize(gctx, page)
			if err != nil {
				var recErr *domain.RecognitionError
				if errors.As(err, &recErr) {
					return err
				}
				return &domain.RecognitionError{RecordID: recordID, Page: n, Err: err}
			}
			logger.Debug("%s: page %d: %d characters", recordID, n, len(text))
			texts[n-1] = text
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	// Cancellation before any page failed leaves slots unfilled.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return texts, nil
}

func asRasterizationError(recordID string, page int, err error) error {
	var rastErr *domain.RasterizationError
	if errors.As(err, &rastErr) {
		return err
	}
	return &domain.RasterizationError{RecordID: recordID, Page: page, Err: err}
}
