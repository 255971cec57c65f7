//go:build !cgo

package tesseract

import (
	"context"

	"github.com/custodia-labs/regscan/internal/core/domain"
	"github.com/custodia-labs/regscan/internal/core/ports/driven"
)

// Ensure Recognizer implements the interface.
var _ driven.TextRecognizer = (*Recognizer)(nil)

// Recognizer runs Tesseract over page images.
// This is a stub for builds without CGO.
type Recognizer struct {
	language string
}

// New creates a recognizer.
// This is a stub for builds without CGO.
func New(language string) *Recognizer {
	return &Recognizer{language: language}
}

// Available reports whether Tesseract is compiled in.
func Available() bool { return false }

// Version returns an empty string without CGO.
func Version() string { return "" }

// Recognize always fails without CGO.
func (r *Recognizer) Recognize(_ context.Context, page domain.PageImage) (string, error) {
	return "", &domain.RecognitionError{RecordID: page.DocumentID, Page: page.Number, Err: domain.ErrEngineUnavailable}
}
