// Package files stores assembled documents on the local filesystem as
// <RecordID>.pdf, the layout the local document source reads back.
package files

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/regscan/internal/core/domain"
	"github.com/custodia-labs/regscan/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore writes merged PDFs into a directory.
type DocumentStore struct {
	dir string
}

// NewDocumentStore creates the directory if needed.
func NewDocumentStore(dir string) (*DocumentStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: documents directory is required", domain.ErrInvalidInput)
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create documents directory: %w", err)
	}
	return &DocumentStore{dir: dir}, nil
}

// Dir returns the storage directory.
func (s *DocumentStore) Dir() string {
	return s.dir
}

// SaveAssembled writes <recordID>.pdf atomically.
func (s *DocumentStore) SaveAssembled(ctx context.Context, recordID string, pdf []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.pathFor(recordID)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, ".doc-*.pdf")
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // no-op after rename

	if _, err := tmp.Write(pdf); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return os.Rename(tmp.Name(), path)
}

// LoadAssembled reads <recordID>.pdf.
func (s *DocumentStore) LoadAssembled(ctx context.Context, recordID string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := s.pathFor(recordID)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

func (s *DocumentStore) pathFor(recordID string) (string, error) {
	name, err := FileName(recordID)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.dir, name), nil
}

// FileName returns the file name for a record. Path separators in the ID
// are replaced so a record can never address a file outside the directory.
func FileName(recordID string) (string, error) {
	id := strings.TrimSpace(recordID)
	if id == "" || id == "." || id == ".." {
		return "", fmt.Errorf("%w: record id %q cannot name a file", domain.ErrInvalidInput, recordID)
	}
	id = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', 0:
			return '_'
		}
		return r
	}, id)
	return id + ".pdf", nil
}
