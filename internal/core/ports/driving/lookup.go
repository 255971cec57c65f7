package driving

import (
	"context"

	"github.com/custodia-labs/regscan/internal/core/domain"
)

// LookupService resolves regulator tables into source records.
type LookupService interface {
	// Regulators lists the supported regulators.
	Regulators() []domain.Regulator

	// DefaultTable returns the table file name for a regulator.
	DefaultTable(regulator domain.Regulator) (string, error)

	// All returns every record of the table.
	All(ctx context.Context, regulator domain.Regulator, tablePath string) ([]domain.SourceRecord, error)

	// Resolve returns the records matching key.
	// Returns domain.ErrNotFound if the key is not in the table.
	Resolve(ctx context.Context, regulator domain.Regulator, tablePath, key string) ([]domain.SourceRecord, error)
}
