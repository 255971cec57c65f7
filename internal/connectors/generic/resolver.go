// Package generic resolves the combined Data.csv table that lists actions
// from any regulator.
package generic

import (
	"strings"

	"github.com/custodia-labs/regscan/internal/connectors/columns"
	"github.com/custodia-labs/regscan/internal/core/domain"
	"github.com/custodia-labs/regscan/internal/core/ports/driven"
)

// Column headers.
const (
	ColumnRecordID    = "Record ID"
	ColumnInstitution = "Institution Name"
	ColumnLink        = "Link to File"
)

// DefaultTable is the conventional file name.
const DefaultTable = "Data.csv"

// Verify interface compliance.
var _ driven.RecordResolver = (*Resolver)(nil)

// Resolver maps Data.csv rows to records keyed by Record ID.
type Resolver struct{}

// New creates a generic resolver.
func New() *Resolver {
	return &Resolver{}
}

// Regulator returns domain.RegulatorGeneric.
func (r *Resolver) Regulator() domain.Regulator { return domain.RegulatorGeneric }

// DefaultTable returns "Data.csv".
func (r *Resolver) DefaultTable() string { return DefaultTable }

// All returns a record for every row.
func (r *Resolver) All(rows []driven.Row) ([]domain.SourceRecord, error) {
	if err := columns.Require(rows, ColumnRecordID, ColumnInstitution, ColumnLink); err != nil {
		return nil, err
	}
	records := make([]domain.SourceRecord, 0, len(rows))
	for i, row := range rows {
		records = append(records, r.record(row, i))
	}
	return records, nil
}

// Lookup returns the rows whose Record ID equals key.
func (r *Resolver) Lookup(rows []driven.Row, key string) ([]domain.SourceRecord, error) {
	all, err := r.All(rows)
	if err != nil {
		return nil, err
	}
	key = strings.TrimSpace(key)
	var matched []domain.SourceRecord
	for _, rec := range all {
		if rec.RecordID == key {
			matched = append(matched, rec)
		}
	}
	if len(matched) == 0 {
		return nil, columns.NotFound(r.Regulator(), key)
	}
	return matched, nil
}

func (r *Resolver) record(row driven.Row, index int) domain.SourceRecord {
	return domain.SourceRecord{
		RecordID:    columns.RecordID(row, ColumnRecordID, index),
		Institution: row[ColumnInstitution],
		Link:        row[ColumnLink],
		Regulator:   domain.RegulatorGeneric,
	}
}
