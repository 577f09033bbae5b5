package driving

import (
	"context"

	"github.com/custodia-labs/kcc-assistant/internal/core/domain"
	"github.com/custodia-labs/kcc-assistant/internal/core/ports/driven"
)

// RetrievalEngine finds local passages for a query and decides whether
// they are close enough to answer from.
type RetrievalEngine interface {
	Retrieve(ctx context.Context, query string, opts domain.RetrievalOptions) (*domain.RetrievalOutcome, error)
}

// AnswerSynthesizer phrases an answer from accepted local context.
type AnswerSynthesizer interface {
	// Synthesize returns the trimmed generated answer.
	// Failures wrap domain.ErrGeneration.
	Synthesize(ctx context.Context, query, contextText string) (string, error)
}

// FallbackSearcher queries web providers in priority order.
type FallbackSearcher interface {
	// Search never returns an error; total failure is an Unavailable outcome.
	Search(ctx context.Context, query string, providers []driven.SearchProvider) *domain.FallbackOutcome
}

// QueryRouter is the entry point front-ends use to answer questions.
type QueryRouter interface {
	// Answer runs the local-first policy and returns a structured result.
	// Errors are reserved for invalid input and missing preconditions
	// (no index, mismatched embedding model, embedding service down).
	Answer(ctx context.Context, query string, opts domain.AskOptions) (*domain.RouterResult, error)

	// RebuildDocuments regenerates the normalised document collection.
	RebuildDocuments(ctx context.Context) (*domain.NormalizeReport, error)

	// RebuildIndex regenerates the vector index.
	RebuildIndex(ctx context.Context) (*domain.IndexMeta, error)
}

// StatusService reports readiness of documents, index and providers.
type StatusService interface {
	Status(ctx context.Context) (*domain.Status, error)
}
