package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/regscan/internal/core/domain"
	"github.com/custodia-labs/regscan/internal/normalisers/ocrtext"
)

func newTestExtraction(r *fakeRasterizer, rec *fakeRecognizer, store *fakeDocStore, workers int) *ExtractionService {
	svc := NewExtractionService(&fakeAssembler{}, r, rec, ocrtext.New(), nil, workers)
	// A nil *fakeDocStore must stay a nil interface.
	if store != nil {
		svc.docStore = store
	}
	return svc
}

func doc(id string, fragments ...string) domain.SourceDocument {
	d := domain.SourceDocument{RecordID: id, Origin: domain.OriginDirect}
	for _, f := range fragments {
		d.Fragments = append(d.Fragments, []byte(f))
	}
	return d
}

func TestExtractionService_Extract(t *testing.T) {
	t.Run("single fragment end to end", func(t *testing.T) {
		svc := newTestExtraction(&fakeRasterizer{}, &fakeRecognizer{}, nil, 2)

		result, err := svc.Extract(context.Background(),
			doc("D1", "Fined on March 3, 1995. No relevant content."),
			domain.FilterCriteria{})

		require.NoError(t, err)
		assert.Equal(t, "D1", result.RecordID)
		assert.Equal(t, 1, result.PageCount)
		assert.Equal(t, 2, result.SentenceCount)
		require.Len(t, result.Matches, 1)
		assert.Equal(t, "March 3, 1995", result.Matches[0].Value)
		assert.Equal(t, "Fined on March 3, 1995", result.Matches[0].Sentence)
	})

	t.Run("fragments become pages in order", func(t *testing.T) {
		svc := newTestExtraction(&fakeRasterizer{}, &fakeRecognizer{}, nil, 4)

		result, err := svc.Extract(context.Background(),
			doc("D2", "First penalty", "Second penalty", "Third penalty"),
			domain.FilterCriteria{Keywords: []string{"penalty"}})

		require.NoError(t, err)
		assert.Equal(t, 3, result.PageCount)
		require.Len(t, result.Matches, 3)
		assert.Equal(t, "First penalty", result.Matches[0].Sentence)
		assert.Equal(t, "Second penalty", result.Matches[1].Sentence)
		assert.Equal(t, "Third penalty", result.Matches[2].Sentence)
	})

	t.Run("hyphenated line wraps are repaired", func(t *testing.T) {
		svc := newTestExtraction(&fakeRasterizer{}, &fakeRecognizer{}, nil, 1)

		result, err := svc.Extract(context.Background(),
			doc("D3", "The respon-\ndent agreed\nto pay"),
			domain.FilterCriteria{Keywords: []string{"respondent"}})

		require.NoError(t, err)
		require.Len(t, result.Matches, 1)
		assert.Equal(t, "The respondent agreed to pay", result.Matches[0].Sentence)
	})

	t.Run("empty document is an assembly error", func(t *testing.T) {
		svc := newTestExtraction(&fakeRasterizer{}, &fakeRecognizer{}, nil, 1)

		_, err := svc.Extract(context.Background(), doc("D4"), domain.FilterCriteria{})

		assert.ErrorIs(t, err, domain.ErrAssembly)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("assembler failure is an assembly error", func(t *testing.T) {
		svc := NewExtractionService(&fakeAssembler{err: errors.New("bad xref")},
			&fakeRasterizer{}, &fakeRecognizer{}, ocrtext.New(), nil, 1)

		_, err := svc.Extract(context.Background(), doc("D5", "x"), domain.FilterCriteria{})

		var asmErr *domain.AssemblyError
		require.ErrorAs(t, err, &asmErr)
		assert.Equal(t, "D5", asmErr.RecordID)
		assert.Equal(t, -1, asmErr.Fragment)
	})

	t.Run("typed assembly error passes through", func(t *testing.T) {
		orig := &domain.AssemblyError{RecordID: "D6", Fragment: 1, Err: errors.New("not a PDF")}
		svc := NewExtractionService(&fakeAssembler{err: orig},
			&fakeRasterizer{}, &fakeRecognizer{}, ocrtext.New(), nil, 1)

		_, err := svc.Extract(context.Background(), doc("D6", "a", "b"), domain.FilterCriteria{})

		var asmErr *domain.AssemblyError
		require.ErrorAs(t, err, &asmErr)
		assert.Equal(t, 1, asmErr.Fragment)
	})

	t.Run("saves the assembled document", func(t *testing.T) {
		store := &fakeDocStore{}
		svc := newTestExtraction(&fakeRasterizer{}, &fakeRecognizer{}, store, 1)

		_, err := svc.Extract(context.Background(), doc("D7", "a", "b"), domain.FilterCriteria{})

		require.NoError(t, err)
		saved, err := store.LoadAssembled(context.Background(), "D7")
		require.NoError(t, err)
		assert.Equal(t, "a\fb", string(saved))
	})

	t.Run("save failure does not fail extraction", func(t *testing.T) {
		store := &fakeDocStore{err: errors.New("read-only")}
		svc := newTestExtraction(&fakeRasterizer{}, &fakeRecognizer{}, store, 1)

		result, err := svc.Extract(context.Background(), doc("D8", "May 1, 2001"), domain.FilterCriteria{})

		require.NoError(t, err)
		assert.Len(t, result.Matches, 1)
	})
}

func TestExtractionService_ExtractPDF_PageOrder(t *testing.T) {
	// Early pages finish last.
	r := &fakeRasterizer{delay: func(n int) time.Duration {
		return time.Duration(10-n) * 5 * time.Millisecond
	}}
	svc := newTestExtraction(r, &fakeRecognizer{}, nil, 8)

	pdf := "p1 penalty\fp2 penalty\fp3 penalty\fp4 penalty\fp5 penalty\fp6 penalty"
	result, err := svc.ExtractPDF(context.Background(), "D", []byte(pdf),
		domain.FilterCriteria{Keywords: []string{"penalty"}})

	require.NoError(t, err)
	assert.Equal(t, 6, result.PageCount)
	require.Len(t, result.Matches, 6)
	for i, m := range result.Matches {
		assert.Equal(t, "p"+string(rune('1'+i))+" penalty", m.Sentence)
	}
	assert.Equal(t, 1, r.closedCount())
}

func TestExtractionService_ExtractPDF_Errors(t *testing.T) {
	t.Run("open failure", func(t *testing.T) {
		svc := newTestExtraction(&fakeRasterizer{openErr: errors.New("not a PDF")}, &fakeRecognizer{}, nil, 1)

		_, err := svc.ExtractPDF(context.Background(), "D", []byte("x"), domain.FilterCriteria{})

		var rastErr *domain.RasterizationError
		require.ErrorAs(t, err, &rastErr)
		assert.Equal(t, 0, rastErr.Page)
		assert.Equal(t, "D", rastErr.RecordID)
	})

	t.Run("page render failure aborts the document", func(t *testing.T) {
		r := &fakeRasterizer{pageErr: map[int]error{2: errors.New("bad stream")}}
		svc := newTestExtraction(r, &fakeRecognizer{}, nil, 1)

		_, err := svc.ExtractPDF(context.Background(), "D", []byte("a\fb\fc"), domain.FilterCriteria{})

		var rastErr *domain.RasterizationError
		require.ErrorAs(t, err, &rastErr)
		assert.Equal(t, 2, rastErr.Page)
		assert.Equal(t, 1, r.closedCount())
	})

	t.Run("wrong page number is a rasterization error", func(t *testing.T) {
		r := &fakeRasterizer{renumber: map[int]int{1: 2}}
		svc := newTestExtraction(r, &fakeRecognizer{}, nil, 1)

		_, err := svc.ExtractPDF(context.Background(), "D", []byte("a\fb"), domain.FilterCriteria{})

		assert.ErrorIs(t, err, domain.ErrRasterization)
	})

	t.Run("recognizer failure is a recognition error", func(t *testing.T) {
		rec := &fakeRecognizer{failPage: 2, err: errors.New("tesseract crashed")}
		svc := newTestExtraction(&fakeRasterizer{}, rec, nil, 1)

		_, err := svc.ExtractPDF(context.Background(), "D", []byte("a\fb"), domain.FilterCriteria{})

		var recErr *domain.RecognitionError
		require.ErrorAs(t, err, &recErr)
		assert.Equal(t, 2, recErr.Page)
		assert.Equal(t, "D", recErr.RecordID)
	})

	t.Run("cancelled context", func(t *testing.T) {
		svc := newTestExtraction(&fakeRasterizer{}, &fakeRecognizer{}, nil, 1)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := svc.ExtractPDF(ctx, "D", []byte("a\fb"), domain.FilterCriteria{})

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestNewExtractionService_DefaultWorkers(t *testing.T) {
	svc := NewExtractionService(&fakeAssembler{}, &fakeRasterizer{}, &fakeRecognizer{}, ocrtext.New(), nil, 0)

	assert.GreaterOrEqual(t, svc.workers, 1)
}
