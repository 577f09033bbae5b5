package driven

import (
	"context"

	"github.com/custodia-labs/kcc-assistant/internal/core/domain"
)

// VectorIndex provides nearest-neighbour search over a loaded index build.
// A VectorIndex is read-only and safe for concurrent searches.
type VectorIndex interface {
	// Search finds the k nearest neighbours to the query vector.
	// Hits are ordered by ascending distance.
	Search(ctx context.Context, query []float32, k int) ([]VectorHit, error)

	// Meta describes the build this index was loaded from.
	Meta() domain.IndexMeta

	// Len returns the number of indexed vectors.
	Len() int

	// Close releases resources.
	Close() error
}

// VectorHit represents a nearest-neighbour search result.
type VectorHit struct {
	// DocumentID is the matched document.
	DocumentID string

	// Distance is the Euclidean distance from the query (lower is closer).
	Distance float64
}

// IndexEntry is one document vector written to an index build.
type IndexEntry struct {
	DocumentID string
	Embedding  []float32
}

// IndexStore persists vector index builds.
// Replace must swap the artifact atomically so that a concurrent Load
// observes either the previous build or the new one, never a partial write.
type IndexStore interface {
	// Replace writes a new build and atomically swaps it in.
	Replace(ctx context.Context, meta domain.IndexMeta, entries []IndexEntry) error

	// Load opens the current build for searching.
	// Returns domain.ErrIndexNotFound when no build exists.
	Load(ctx context.Context) (VectorIndex, error)

	// Meta reads the current build's metadata without loading vectors.
	// Returns domain.ErrIndexNotFound when no build exists.
	Meta(ctx context.Context) (*domain.IndexMeta, error)

	// Path returns the artifact location.
	Path() string
}
