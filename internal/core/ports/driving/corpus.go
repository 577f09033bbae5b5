package driving

import (
	"context"

	"github.com/custodia-labs/kcc-assistant/internal/core/domain"
)

// DocumentNormalizer turns raw corpus rows into the persisted document collection.
type DocumentNormalizer interface {
	// Normalize converts records into documents without side effects.
	Normalize(records []domain.RawRecord) []domain.NormalizedDocument

	// RebuildDocuments reads the corpus, normalises it and replaces the
	// persisted collection. Safe to call repeatedly.
	RebuildDocuments(ctx context.Context) (*domain.NormalizeReport, error)
}

// IndexBuilder builds the persisted vector index from the document collection.
type IndexBuilder interface {
	// RebuildIndex embeds every document and atomically replaces the index.
	// Returns domain.ErrRebuildInProgress if another rebuild is running.
	RebuildIndex(ctx context.Context) (*domain.IndexMeta, error)
}

// Reloader is notified after a new index build is in place.
type Reloader interface {
	// Reload drops any loaded index so the next query loads the new build.
	Reload(ctx context.Context) error
}
