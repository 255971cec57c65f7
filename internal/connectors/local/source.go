package local

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/custodia-labs/regscan/internal/adapters/driven/storage/files"
	"github.com/custodia-labs/regscan/internal/core/domain"
	"github.com/custodia-labs/regscan/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.DocumentSource = (*Source)(nil)

// Source reads documents from a directory.
type Source struct {
	dir string
}

// NewSource creates a source rooted at dir.
func NewSource(dir string) *Source {
	return &Source{dir: dir}
}

// Dir returns the directory documents are read from.
func (s *Source) Dir() string {
	return s.dir
}

// Fetch reads <dir>/<RecordID>.pdf. The record link is ignored.
func (s *Source) Fetch(ctx context.Context, record domain.SourceRecord) (domain.SourceDocument, error) {
	if err := ctx.Err(); err != nil {
		return domain.SourceDocument{}, err
	}
	name, err := files.FileName(record.RecordID)
	if err != nil {
		return domain.SourceDocument{}, err
	}

	path := filepath.Join(s.dir, name)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.SourceDocument{}, fmt.Errorf("%w: %s", domain.ErrNotFound, path)
	}
	if err != nil {
		return domain.SourceDocument{}, fmt.Errorf("read %s: %w", path, err)
	}

	return domain.SourceDocument{
		RecordID:  record.RecordID,
		Fragments: [][]byte{data},
		Origin:    domain.OriginLocal,
		Link:      path,
	}, nil
}
