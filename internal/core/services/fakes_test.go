package services

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"time"

	"github.com/custodia-labs/regscan/internal/core/domain"
	"github.com/custodia-labs/regscan/internal/core/ports/driven"
)

// fakeAssembler concatenates fragments.
type fakeAssembler struct {
	err error
}

func (a *fakeAssembler) Assemble(_ context.Context, doc domain.SourceDocument) ([]byte, error) {
	if a.err != nil {
		return nil, a.err
	}
	return bytes.Join(doc.Fragments, []byte("\f")), nil
}

// fakeRasterizer splits the "PDF" on form feeds; each part is one page
// whose image bytes are the page text.
type fakeRasterizer struct {
	openErr error
	pageErr map[int]error
	// delay makes page n take delay(n) to render.
	delay func(n int) time.Duration
	// renumber returns the wrong page number for page n.
	renumber map[int]int

	mu     sync.Mutex
	closed int
}

func (r *fakeRasterizer) Open(_ context.Context, documentID string, pdf []byte) (driven.RasterizedDocument, error) {
	if r.openErr != nil {
		return nil, r.openErr
	}
	return &fakeRaster{r: r, id: documentID, pages: bytes.Split(pdf, []byte("\f"))}, nil
}

func (r *fakeRasterizer) closedCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

type fakeRaster struct {
	r     *fakeRasterizer
	id    string
	pages [][]byte
}

func (d *fakeRaster) PageCount() int { return len(d.pages) }

func (d *fakeRaster) Page(ctx context.Context, n int) (domain.PageImage, error) {
	if d.r.delay != nil {
		select {
		case <-time.After(d.r.delay(n)):
		case <-ctx.Done():
			return domain.PageImage{}, ctx.Err()
		}
	}
	if err := d.r.pageErr[n]; err != nil {
		return domain.PageImage{}, err
	}
	number := n
	if m, ok := d.r.renumber[n]; ok {
		number = m
	}
	return domain.PageImage{
		DocumentID: d.id,
		Number:     number,
		DPI:        domain.DefaultRasterDPI,
		Image:      d.pages[n-1],
		Format:     domain.ImageFormatPNG,
	}, nil
}

func (d *fakeRaster) Close() error {
	d.r.mu.Lock()
	defer d.r.mu.Unlock()
	d.r.closed++
	return nil
}

// fakeRecognizer returns the page image bytes as text.
type fakeRecognizer struct {
	failPage int
	err      error

	mu    sync.Mutex
	pages []int
}

func (r *fakeRecognizer) Recognize(_ context.Context, page domain.PageImage) (string, error) {
	r.mu.Lock()
	r.pages = append(r.pages, page.Number)
	r.mu.Unlock()
	if r.err != nil && page.Number == r.failPage {
		return "", r.err
	}
	return string(page.Image), nil
}

// fakeDocStore records saved documents.
type fakeDocStore struct {
	err error

	mu    sync.Mutex
	saved map[string][]byte
}

func (s *fakeDocStore) SaveAssembled(_ context.Context, recordID string, pdf []byte) error {
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saved == nil {
		s.saved = make(map[string][]byte)
	}
	s.saved[recordID] = pdf
	return nil
}

func (s *fakeDocStore) LoadAssembled(_ context.Context, recordID string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pdf, ok := s.saved[recordID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return pdf, nil
}

// fakeSource serves documents whose single fragment is the text in pages,
// form-feed separated.
type fakeSource struct {
	pages map[string][]string
	errs  map[string]error
	// block makes Fetch wait for ctx cancellation.
	block map[string]bool
	// delay holds Fetch for the given time.
	delay map[string]time.Duration
}

func (s *fakeSource) Fetch(ctx context.Context, rec domain.SourceRecord) (domain.SourceDocument, error) {
	if s.block[rec.RecordID] {
		<-ctx.Done()
		return domain.SourceDocument{}, ctx.Err()
	}
	if d := s.delay[rec.RecordID]; d > 0 {
		time.Sleep(d)
	}
	if err := s.errs[rec.RecordID]; err != nil {
		return domain.SourceDocument{}, err
	}
	pages, ok := s.pages[rec.RecordID]
	if !ok {
		return domain.SourceDocument{}, domain.ErrNotFound
	}
	frags := make([][]byte, len(pages))
	for i, p := range pages {
		frags[i] = []byte(p)
	}
	return domain.SourceDocument{RecordID: rec.RecordID, Fragments: frags, Origin: domain.OriginDirect}, nil
}

// fakeTableReader returns fixed rows per path.
type fakeTableReader struct {
	rows map[string][]driven.Row
}

func (r *fakeTableReader) ReadTable(_ context.Context, path string) ([]driven.Row, error) {
	rows, ok := r.rows[path]
	if !ok {
		return nil, errors.New("no such file")
	}
	return rows, nil
}

// fakeReportWriter captures written reports.
type fakeReportWriter struct {
	err     error
	path    string
	records []domain.OutputRecord
}

func (w *fakeReportWriter) WriteReport(_ context.Context, path string, records []domain.OutputRecord) error {
	if w.err != nil {
		return w.err
	}
	w.path = path
	w.records = records
	return nil
}

// failingRunStore fails every save.
type failingRunStore struct {
	driven.RunStore
}

func (failingRunStore) SaveRun(context.Context, *domain.Run) error {
	return errors.New("disk full")
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
