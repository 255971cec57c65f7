package driven

import (
	"context"

	"github.com/custodia-labs/regscan/internal/core/domain"
)

// Row is one table row keyed by trimmed column header.
type Row map[string]string

// TableReader reads the first sheet of an input table.
type TableReader interface {
	// ReadTable returns every data row in file order.
	ReadTable(ctx context.Context, path string) ([]Row, error)
}

// RecordResolver maps a regulator table to source records.
type RecordResolver interface {
	// Regulator returns the regulator this resolver handles.
	Regulator() domain.Regulator

	// DefaultTable is the file name used when none is given.
	DefaultTable() string

	// All returns a record for every row.
	All(rows []Row) ([]domain.SourceRecord, error)

	// Lookup returns the records whose key column matches key.
	// Returns domain.ErrNotFound if none match.
	Lookup(rows []Row, key string) ([]domain.SourceRecord, error)
}

// ResolverRegistry looks up the resolver for a regulator.
type ResolverRegistry interface {
	// Get returns the resolver for r, or domain.ErrUnsupportedType.
	Get(r domain.Regulator) (RecordResolver, error)

	// Regulators lists registered regulators in registration order.
	Regulators() []domain.Regulator
}
