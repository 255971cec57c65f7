// Package fed resolves the Federal Reserve enforcement actions table. The
// URL column holds paths relative to the Board's website.
package fed

import (
	"strings"

	"github.com/custodia-labs/regscan/internal/connectors/columns"
	"github.com/custodia-labs/regscan/internal/core/domain"
	"github.com/custodia-labs/regscan/internal/core/ports/driven"
)

// Column headers.
const (
	ColumnURL         = "URL"
	ColumnInstitution = "Banking Organization"
	ColumnUniqueID    = "Unique ID"
)

// DefaultTable is the conventional file name.
const DefaultTable = "FED.csv"

// Verify interface compliance.
var _ driven.RecordResolver = (*Resolver)(nil)

// Resolver maps FED rows to records keyed by URL.
type Resolver struct {
	baseURL string
}

// New creates a FED resolver. An empty baseURL uses the Board's website.
func New(baseURL string) *Resolver {
	if baseURL == "" {
		baseURL = domain.DefaultFEDBaseURL
	}
	return &Resolver{baseURL: strings.TrimSuffix(baseURL, "/") + "/"}
}

// Regulator returns domain.RegulatorFED.
func (r *Resolver) Regulator() domain.Regulator { return domain.RegulatorFED }

// DefaultTable returns "FED.csv".
func (r *Resolver) DefaultTable() string { return DefaultTable }

// BaseURL returns the prefix applied to relative URLs.
func (r *Resolver) BaseURL() string { return r.baseURL }

// All returns a record for every row.
func (r *Resolver) All(rows []driven.Row) ([]domain.SourceRecord, error) {
	if err := columns.Require(rows, ColumnURL, ColumnInstitution); err != nil {
		return nil, err
	}
	records := make([]domain.SourceRecord, 0, len(rows))
	for i, row := range rows {
		records = append(records, r.record(row, i))
	}
	return records, nil
}

// Lookup returns the rows whose URL equals key. A key carrying the base
// URL prefix matches too.
func (r *Resolver) Lookup(rows []driven.Row, key string) ([]domain.SourceRecord, error) {
	if err := columns.Require(rows, ColumnURL, ColumnInstitution); err != nil {
		return nil, err
	}
	key = strings.TrimSpace(key)
	rel := strings.TrimPrefix(strings.TrimPrefix(key, r.baseURL), "/")
	var matched []domain.SourceRecord
	for i, row := range rows {
		u := row[ColumnURL]
		if u == key || strings.TrimPrefix(u, "/") == rel {
			matched = append(matched, r.record(row, i))
		}
	}
	if len(matched) == 0 {
		return nil, columns.NotFound(r.Regulator(), key)
	}
	return matched, nil
}

// Link returns the absolute link for a URL cell.
func (r *Resolver) Link(u string) string {
	lower := strings.ToLower(u)
	if strings.HasPrefix(lower, "https://") || strings.HasPrefix(lower, "http://") {
		return u
	}
	return r.baseURL + strings.TrimPrefix(u, "/")
}

func (r *Resolver) record(row driven.Row, index int) domain.SourceRecord {
	return domain.SourceRecord{
		RecordID:    columns.RecordID(row, ColumnUniqueID, index),
		Institution: row[ColumnInstitution],
		Link:        r.Link(row[ColumnURL]),
		Regulator:   domain.RegulatorFED,
	}
}
