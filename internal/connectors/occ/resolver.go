// Package occ resolves the OCC enforcement actions spreadsheet.
package occ

import (
	"strings"

	"github.com/custodia-labs/regscan/internal/connectors/columns"
	"github.com/custodia-labs/regscan/internal/core/domain"
	"github.com/custodia-labs/regscan/internal/core/ports/driven"
)

// Column headers.
const (
	ColumnOrder       = "Order Number"
	ColumnLink        = "Link to Enforcement Action"
	ColumnInstitution = "Institution Name"
	ColumnRecordID    = "Record ID"
)

// DefaultTable is the conventional file name.
const DefaultTable = "OCC.xlsx"

// Verify interface compliance.
var _ driven.RecordResolver = (*Resolver)(nil)

// Resolver maps OCC rows to records keyed by order number.
type Resolver struct{}

// New creates an OCC resolver.
func New() *Resolver {
	return &Resolver{}
}

// Regulator returns domain.RegulatorOCC.
func (r *Resolver) Regulator() domain.Regulator { return domain.RegulatorOCC }

// DefaultTable returns "OCC.xlsx".
func (r *Resolver) DefaultTable() string { return DefaultTable }

// All returns a record for every row.
func (r *Resolver) All(rows []driven.Row) ([]domain.SourceRecord, error) {
	if err := columns.Require(rows, ColumnOrder, ColumnLink, ColumnInstitution, ColumnRecordID); err != nil {
		return nil, err
	}
	records := make([]domain.SourceRecord, 0, len(rows))
	for i, row := range rows {
		records = append(records, record(row, i))
	}
	return records, nil
}

// Lookup returns the rows whose order number equals key.
func (r *Resolver) Lookup(rows []driven.Row, key string) ([]domain.SourceRecord, error) {
	if err := columns.Require(rows, ColumnOrder, ColumnLink, ColumnInstitution, ColumnRecordID); err != nil {
		return nil, err
	}
	key = strings.TrimSpace(key)
	var matched []domain.SourceRecord
	for i, row := range rows {
		if row[ColumnOrder] == key {
			matched = append(matched, record(row, i))
		}
	}
	if len(matched) == 0 {
		return nil, columns.NotFound(r.Regulator(), key)
	}
	return matched, nil
}

func record(row driven.Row, index int) domain.SourceRecord {
	return domain.SourceRecord{
		RecordID:    columns.RecordID(row, ColumnRecordID, index),
		Institution: row[ColumnInstitution],
		Link:        row[ColumnLink],
		Regulator:   domain.RegulatorOCC,
	}
}
