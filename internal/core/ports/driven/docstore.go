package driven

import "context"

// DocumentStore persists assembled documents as <recordID>.pdf.
type DocumentStore interface {
	// SaveAssembled writes the merged PDF for a record, replacing any previous copy.
	SaveAssembled(ctx context.Context, recordID string, pdf []byte) error

	// LoadAssembled reads a previously saved PDF.
	// Returns domain.ErrNotFound if none exists.
	LoadAssembled(ctx context.Context, recordID string) ([]byte, error)
}
