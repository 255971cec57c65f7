package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/custodia-labs/regscan/internal/core/domain"
	"github.com/custodia-labs/regscan/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of driven.DocumentStore.
type DocumentStore struct {
	mu        sync.RWMutex
	documents map[string][]byte
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents: make(map[string][]byte),
	}
}

// SaveAssembled stores a copy of pdf, replacing any previous one.
func (s *DocumentStore) SaveAssembled(_ context.Context, recordID string, pdf []byte) error {
	if recordID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[recordID] = slices.Clone(pdf)
	return nil
}

// LoadAssembled returns a copy of the stored PDF.
func (s *DocumentStore) LoadAssembled(_ context.Context, recordID string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pdf, ok := s.documents[recordID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return slices.Clone(pdf), nil
}

// RecordIDs returns the IDs of all stored documents, sorted.
func (s *DocumentStore) RecordIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.documents))
	for id := range s.documents {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
