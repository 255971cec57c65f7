// Package assembler merges PDF fragments into one document using pdfcpu.
package assembler

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/custodia-labs/regscan/internal/core/domain"
	"github.com/custodia-labs/regscan/internal/core/ports/driven"
)

// Ensure Assembler implements the interface.
var _ driven.DocumentAssembler = (*Assembler)(nil)

var disableConfigDir sync.Once

// Assembler validates fragments and concatenates their pages in order.
type Assembler struct{}

// New creates an assembler. pdfcpu's on-disk configuration directory is
// disabled so the adapter never writes outside the caller's paths.
func New() *Assembler {
	disableConfigDir.Do(api.DisableConfigDir)
	return &Assembler{}
}

// Assemble returns the single fragment unchanged, or the fragments merged
// in order without divider pages.
func (a *Assembler) Assemble(ctx context.Context, doc domain.SourceDocument) ([]byte, error) {
	if len(doc.Fragments) == 0 {
		return nil, &domain.AssemblyError{RecordID: doc.RecordID, Fragment: -1, Err: domain.ErrInvalidInput}
	}

	for i, fragment := range doc.Fragments {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := api.Validate(bytes.NewReader(fragment), newConfiguration()); err != nil {
			return nil, &domain.AssemblyError{RecordID: doc.RecordID, Fragment: i, Err: err}
		}
	}

	if len(doc.Fragments) == 1 {
		return doc.Fragments[0], nil
	}

	readers := make([]io.ReadSeeker, len(doc.Fragments))
	for i, fragment := range doc.Fragments {
		readers[i] = bytes.NewReader(fragment)
	}

	var out bytes.Buffer
	if err := api.MergeRaw(readers, &out, false, newConfiguration()); err != nil {
		return nil, &domain.AssemblyError{
			RecordID: doc.RecordID,
			Fragment: -1,
			Err:      fmt.Errorf("merge %d fragments: %w", len(doc.Fragments), err),
		}
	}
	return out.Bytes(), nil
}

// PageCount returns the number of pages in pdf.
func PageCount(pdf []byte) (int, error) {
	return api.PageCount(bytes.NewReader(pdf), newConfiguration())
}

// newConfiguration returns a fresh configuration per call; pdfcpu records
// the current command on it, so it must not be shared between goroutines.
func newConfiguration() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}
