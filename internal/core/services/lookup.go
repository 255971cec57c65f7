package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/regscan/internal/core/domain"
	"github.com/custodia-labs/regscan/internal/core/ports/driven"
	"github.com/custodia-labs/regscan/internal/core/ports/driving"
	"github.com/custodia-labs/regscan/internal/logger"
)

// Ensure LookupService implements the interface.
var _ driving.LookupService = (*LookupService)(nil)

// LookupService resolves regulator tables into source records.
type LookupService struct {
	reader   driven.TableReader
	registry driven.ResolverRegistry
}

// NewLookupService creates a lookup service.
func NewLookupService(reader driven.TableReader, registry driven.ResolverRegistry) *LookupService {
	return &LookupService{
		reader:   reader,
		registry: registry,
	}
}

// Regulators lists the supported regulators.
func (s *LookupService) Regulators() []domain.Regulator {
	return s.registry.Regulators()
}

// DefaultTable returns the conventional table file name for a regulator.
func (s *LookupService) DefaultTable(regulator domain.Regulator) (string, error) {
	resolver, err := s.registry.Get(regulator)
	if err != nil {
		return "", err
	}
	return resolver.DefaultTable(), nil
}

// All returns every record of the table.
func (s *LookupService) All(ctx context.Context, regulator domain.Regulator, tablePath string) ([]domain.SourceRecord, error) {
	resolver, rows, err := s.load(ctx, regulator, tablePath)
	if err != nil {
		return nil, err
	}
	records, err := resolver.All(rows)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", tablePath, err)
	}
	logger.Debug("table %s: %d records", tablePath, len(records))
	return records, nil
}

// Resolve returns the records whose key column matches key.
func (s *LookupService) Resolve(ctx context.Context, regulator domain.Regulator, tablePath, key string) ([]domain.SourceRecord, error) {
	if key == "" {
		return nil, fmt.Errorf("%w: %s is required", domain.ErrInvalidInput, regulator.KeyName())
	}
	resolver, rows, err := s.load(ctx, regulator, tablePath)
	if err != nil {
		return nil, err
	}
	records, err := resolver.Lookup(rows, key)
	if err != nil {
		return nil, err
	}
	logger.Debug("table %s: %d records for %s %q", tablePath, len(records), regulator.KeyName(), key)
	return records, nil
}

func (s *LookupService) load(ctx context.Context, regulator domain.Regulator, tablePath string) (driven.RecordResolver, []driven.Row, error) {
	resolver, err := s.registry.Get(regulator)
	if err != nil {
		return nil, nil, err
	}
	if tablePath == "" {
		tablePath = resolver.DefaultTable()
	}
	rows, err := s.reader.ReadTable(ctx, tablePath)
	if err != nil {
		return nil, nil, fmt.Errorf("read table %s: %w", tablePath, err)
	}
	return resolver, rows, nil
}
