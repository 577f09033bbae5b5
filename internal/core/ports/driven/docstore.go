package driven

import (
	"context"

	"github.com/custodia-labs/kcc-assistant/internal/core/domain"
)

// DocumentStore persists the normalised document collection.
// The collection is written whole and read whole; order is preserved.
type DocumentStore interface {
	// Replace overwrites the entire collection atomically.
	Replace(ctx context.Context, docs []domain.NormalizedDocument) error

	// List returns every document in insertion order.
	// Returns domain.ErrNotFound when the collection was never written.
	List(ctx context.Context) ([]domain.NormalizedDocument, error)

	// Get retrieves a document by ID.
	Get(ctx context.Context, id string) (*domain.NormalizedDocument, error)

	// Count returns the number of documents, or domain.ErrNotFound when
	// the collection was never written.
	Count(ctx context.Context) (int, error)
}
