package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/custodia-labs/kcc-assistant/internal/core/domain"
	"github.com/custodia-labs/kcc-assistant/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of driven.DocumentStore.
type DocumentStore struct {
	mu      sync.RWMutex
	docs    []domain.NormalizedDocument
	byID    map[string]int
	written bool
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		byID: make(map[string]int),
	}
}

// Replace overwrites the collection.
func (s *DocumentStore) Replace(_ context.Context, docs []domain.NormalizedDocument) error {
	copied := slices.Clone(docs)
	byID := make(map[string]int, len(copied))
	for i, d := range copied {
		byID[d.ID] = i
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = copied
	s.byID = byID
	s.written = true
	return nil
}

// List returns every document in insertion order.
func (s *DocumentStore) List(_ context.Context) ([]domain.NormalizedDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.written {
		return nil, domain.ErrNotFound
	}
	return slices.Clone(s.docs), nil
}

// Get retrieves a document by ID.
func (s *DocumentStore) Get(_ context.Context, id string) (*domain.NormalizedDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	doc := s.docs[i]
	return &doc, nil
}

// Count returns the number of documents.
func (s *DocumentStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.written {
		return 0, domain.ErrNotFound
	}
	return len(s.docs), nil
}
