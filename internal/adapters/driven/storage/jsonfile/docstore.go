// Package jsonfile stores the normalised documents as a single JSON array,
// the processed_docs.json format other KCC tooling reads.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/custodia-labs/kcc-assistant/internal/core/domain"
	"github.com/custodia-labs/kcc-assistant/internal/core/ports/driven"
)

// FileName is the document file written inside the data directory.
const FileName = "processed_docs.json"

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore persists documents to a JSON file.
// Writes go to a temporary file that is renamed over the target.
type DocumentStore struct {
	mu   sync.RWMutex
	path string
}

// NewDocumentStore creates a store writing to dataDir/processed_docs.json.
func NewDocumentStore(dataDir string) (*DocumentStore, error) {
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &DocumentStore{path: filepath.Join(dataDir, FileName)}, nil
}

// Path returns the JSON file path.
func (s *DocumentStore) Path() string {
	return s.path
}

// Replace writes the whole collection.
func (s *DocumentStore) Replace(_ context.Context, docs []domain.NormalizedDocument) error {
	if docs == nil {
		docs = []domain.NormalizedDocument{}
	}
	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding documents: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing %s: %w", s.path, err)
	}
	return nil
}

// List returns every document in file order.
func (s *DocumentStore) List(_ context.Context) ([]domain.NormalizedDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read()
}

// Get retrieves a document by ID.
func (s *DocumentStore) Get(ctx context.Context, id string) (*domain.NormalizedDocument, error) {
	docs, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range docs {
		if docs[i].ID == id {
			return &docs[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

// Count returns the number of documents.
func (s *DocumentStore) Count(ctx context.Context) (int, error) {
	docs, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	return len(docs), nil
}

func (s *DocumentStore) read() ([]domain.NormalizedDocument, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}

	var docs []domain.NormalizedDocument
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %w", domain.ErrData, s.path, err)
	}
	return docs, nil
}
