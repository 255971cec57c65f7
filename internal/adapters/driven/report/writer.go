// Package report writes output records as CSV.
package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/custodia-labs/regscan/internal/core/domain"
	"github.com/custodia-labs/regscan/internal/core/ports/driven"
)

// Ensure CSVWriter implements the interface.
var _ driven.ReportWriter = (*CSVWriter)(nil)

// CSVWriter writes the four-column report.
type CSVWriter struct{}

// NewCSVWriter creates a CSV report writer.
func NewCSVWriter() *CSVWriter {
	return &CSVWriter{}
}

// WriteReport writes records to path, replacing any existing file.
// The file is written to a temporary name first so a failed run never
// leaves a truncated report behind.
func (w *CSVWriter) WriteReport(ctx context.Context, path string, records []domain.OutputRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".report-*.csv")
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // no-op after rename

	if err := Write(tmp, records); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close report: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("move report into place: %w", err)
	}
	return nil
}

// Write writes the header and records to w.
func Write(w io.Writer, records []domain.OutputRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(domain.ReportHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, r := range records {
		if err := cw.Write(r.Row()); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush report: %w", err)
	}
	return nil
}
