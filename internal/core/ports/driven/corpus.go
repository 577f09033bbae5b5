package driven

import (
	"context"

	"github.com/custodia-labs/kcc-assistant/internal/core/domain"
)

// CorpusReader reads advisory records from the raw corpus.
type CorpusReader interface {
	// Read returns every row with its original ordinal.
	// Returns domain.ErrData when the source is missing or lacks a required column.
	Read(ctx context.Context) ([]domain.RawRecord, error)

	// Source describes where records are read from.
	Source() string
}
