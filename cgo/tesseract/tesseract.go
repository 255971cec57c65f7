//go:build cgo

package tesseract

import (
	"context"
	"fmt"
	"strconv"

	"github.com/otiai10/gosseract/v2"

	"github.com/custodia-labs/regscan/internal/core/domain"
	"github.com/custodia-labs/regscan/internal/core/ports/driven"
)

// Ensure Recognizer implements the interface.
var _ driven.TextRecognizer = (*Recognizer)(nil)

// Recognizer runs Tesseract over page images. A gosseract client is not
// safe for concurrent use, so every call gets its own.
type Recognizer struct {
	language      string
	clientFactory func() *gosseract.Client
}

// New creates a recognizer for a Tesseract language code such as "eng".
func New(language string) *Recognizer {
	if language == "" {
		language = domain.DefaultOCRLanguage
	}
	return &Recognizer{language: language, clientFactory: gosseract.NewClient}
}

// Available reports whether Tesseract is compiled in.
func Available() bool { return true }

// Version returns the linked Tesseract version.
func Version() string {
	c := gosseract.NewClient()
	defer c.Close()
	return c.Version()
}

// Recognize returns the raw text of page. The page DPI is passed to
// Tesseract so it does not have to guess the resolution.
func (r *Recognizer) Recognize(ctx context.Context, page domain.PageImage) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	c := r.clientFactory()
	defer c.Close()

	if err := c.SetLanguage(r.language); err != nil {
		return "", r.fail(page, fmt.Errorf("set language %s: %w", r.language, err))
	}
	if page.DPI > 0 {
		if err := c.SetVariable(gosseract.SettableVariable("user_defined_dpi"), strconv.Itoa(page.DPI)); err != nil {
			return "", r.fail(page, fmt.Errorf("set dpi: %w", err))
		}
	}
	if err := c.SetImageFromBytes(page.Image); err != nil {
		return "", r.fail(page, fmt.Errorf("set image: %w", err))
	}

	text, err := c.Text()
	if err != nil {
		return "", r.fail(page, err)
	}
	return text, nil
}

func (r *Recognizer) fail(page domain.PageImage, err error) error {
	return &domain.RecognitionError{RecordID: page.DocumentID, Page: page.Number, Err: err}
}
