// Package table reads regulator input tables (CSV and XLSX) into rows
// keyed by column header.
package table

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/regscan/internal/core/domain"
	"github.com/custodia-labs/regscan/internal/core/ports/driven"
)

// Ensure Reader implements the interface.
var _ driven.TableReader = (*Reader)(nil)

// Reader picks a format by file extension.
type Reader struct{}

// NewReader creates a table reader.
func NewReader() *Reader {
	return &Reader{}
}

// ReadTable reads a .csv or .xlsx file.
func (r *Reader) ReadTable(ctx context.Context, path string) ([]driven.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return readCSVFile(path)
	case ".xlsx", ".xlsm":
		return readXLSXFile(path)
	default:
		return nil, fmt.Errorf("%w: table %s (want .csv or .xlsx)", domain.ErrUnsupportedType, path)
	}
}

// toRows keys each record by the trimmed header. Short records are padded
// with empty cells and fully blank records are skipped.
func toRows(header []string, records [][]string) []driven.Row {
	keys := make([]string, len(header))
	for i, h := range header {
		keys[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	rows := make([]driven.Row, 0, len(records))
	for _, rec := range records {
		if isBlank(rec) {
			continue
		}
		row := make(driven.Row, len(keys))
		for i, key := range keys {
			if key == "" {
				continue
			}
			if i < len(rec) {
				row[key] = strings.TrimSpace(rec[i])
			} else {
				row[key] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func isBlank(rec []string) bool {
	for _, cell := range rec {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
