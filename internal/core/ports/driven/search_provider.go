package driven

import (
	"context"

	"github.com/custodia-labs/kcc-assistant/internal/core/domain"
)

// SearchProvider is a single web search engine used by the fallback path.
// Implementations map their provider-specific schema onto SearchResultItem
// and report a featured result separately as DirectAnswer.
type SearchProvider interface {
	// Name identifies the provider in results and logs.
	Name() string

	// Search runs the query and returns up to limit organic results.
	// Any network, status or decode failure is returned as an error.
	Search(ctx context.Context, query string, limit int) (*domain.ProviderResponse, error)
}

// SearchCache stores successful fallback outcomes between identical queries.
// A cache failure must never fail the query; callers log and continue.
type SearchCache interface {
	// Get returns a cached outcome and true on a hit.
	Get(ctx context.Context, key string) (*domain.FallbackOutcome, bool, error)

	// Set stores an outcome under key.
	Set(ctx context.Context, key string, outcome *domain.FallbackOutcome) error
}
