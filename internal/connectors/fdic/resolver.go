// Package fdic resolves the FDIC enforcement decisions table. A row may
// list several comma-separated docket numbers.
package fdic

import (
	"strings"

	"github.com/custodia-labs/regscan/internal/connectors/columns"
	"github.com/custodia-labs/regscan/internal/core/domain"
	"github.com/custodia-labs/regscan/internal/core/ports/driven"
)

// Column headers (after trimming).
const (
	ColumnDocket      = "Docket Number"
	ColumnLink        = "File URL"
	ColumnInstitution = "Bank Name"
	ColumnUniqueID    = "Unique ID"
)

// DefaultTable is the conventional file name.
const DefaultTable = "FDIC.csv"

// Verify interface compliance.
var _ driven.RecordResolver = (*Resolver)(nil)

// Resolver maps FDIC rows to records keyed by docket number.
type Resolver struct{}

// New creates an FDIC resolver.
func New() *Resolver {
	return &Resolver{}
}

// Regulator returns domain.RegulatorFDIC.
func (r *Resolver) Regulator() domain.Regulator { return domain.RegulatorFDIC }

// DefaultTable returns "FDIC.csv".
func (r *Resolver) DefaultTable() string { return DefaultTable }

// All returns a record for every row.
func (r *Resolver) All(rows []driven.Row) ([]domain.SourceRecord, error) {
	if err := columns.Require(rows, ColumnDocket, ColumnLink, ColumnInstitution); err != nil {
		return nil, err
	}
	records := make([]domain.SourceRecord, 0, len(rows))
	for i, row := range rows {
		records = append(records, record(row, i))
	}
	return records, nil
}

// Lookup returns the rows listing key among their docket numbers.
func (r *Resolver) Lookup(rows []driven.Row, key string) ([]domain.SourceRecord, error) {
	if err := columns.Require(rows, ColumnDocket, ColumnLink, ColumnInstitution); err != nil {
		return nil, err
	}
	key = strings.TrimSpace(key)
	var matched []domain.SourceRecord
	for i, row := range rows {
		if hasDocket(row[ColumnDocket], key) {
			matched = append(matched, record(row, i))
		}
	}
	if len(matched) == 0 {
		return nil, columns.NotFound(r.Regulator(), key)
	}
	return matched, nil
}

// Dockets splits a docket cell into trimmed, non-empty numbers.
func Dockets(cell string) []string {
	var out []string
	for _, d := range strings.Split(cell, ",") {
		if d = strings.TrimSpace(d); d != "" {
			out = append(out, d)
		}
	}
	return out
}

func hasDocket(cell, key string) bool {
	for _, d := range Dockets(cell) {
		if d == key {
			return true
		}
	}
	return false
}

func record(row driven.Row, index int) domain.SourceRecord {
	return domain.SourceRecord{
		RecordID:    columns.RecordID(row, ColumnUniqueID, index),
		Institution: row[ColumnInstitution],
		Link:        row[ColumnLink],
		Regulator:   domain.RegulatorFDIC,
	}
}
