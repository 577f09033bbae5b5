package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/kcc-assistant/internal/core/domain"
	"github.com/custodia-labs/kcc-assistant/internal/core/ports/driven"
	"github.com/custodia-labs/kcc-assistant/internal/core/ports/driving"
	"github.com/custodia-labs/kcc-assistant/internal/logger"
)

// Ensure RouterService implements the interface.
var _ driving.QueryRouter = (*RouterService)(nil)

// RouterService answers queries local-first and falls back to web search
// only when local retrieval is rejected.
type RouterService struct {
	retrieval   driving.RetrievalEngine
	synthesizer driving.AnswerSynthesizer
	fallback    driving.FallbackSearcher
	normalizer  driving.DocumentNormalizer
	indexer     driving.IndexBuilder

	providers []driven.SearchProvider
	defaults  domain.RetrievalSettings
}

// NewRouterService creates a new query router.
func NewRouterService(
	retrieval driving.RetrievalEngine,
	synthesizer driving.AnswerSynthesizer,
	fallback driving.FallbackSearcher,
	providers []driven.SearchProvider,
	defaults domain.RetrievalSettings,
) *RouterService {
	if defaults.TopK <= 0 {
		defaults.TopK = domain.DefaultTopK
	}
	if defaults.Threshold == 0 {
		defaults.Threshold = domain.DefaultThreshold
	}
	return &RouterService{
		retrieval:   retrieval,
		synthesizer: synthesizer,
		fallback:    fallback,
		providers:   providers,
		defaults:    defaults,
	}
}

// SetMaintenance wires the rebuild operations exposed through the router.
func (s *RouterService) SetMaintenance(normalizer driving.DocumentNormalizer, indexer driving.IndexBuilder) {
	s.normalizer = normalizer
	s.indexer = indexer
}

// Providers returns the configured fallback chain in priority order.
func (s *RouterService) Providers() []driven.SearchProvider {
	return s.providers
}

// Answer runs retrieval, then either synthesis or fallback.
func (s *RouterService) Answer(
	ctx context.Context, query string, opts domain.AskOptions,
) (*domain.RouterResult, error) {
	logger.Section("Answer Query")
	defer logger.Timed("answer")()

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query is empty", domain.ErrInvalidInput)
	}

	threshold := opts.Threshold
	if threshold == 0 {
		threshold = s.defaults.Threshold
	}
	if err := domain.ValidateThreshold(threshold); err != nil {
		return nil, err
	}

	topK := opts.TopK
	if topK <= 0 {
		topK = s.defaults.TopK
	}

	providers, err := s.selectProviders(opts.Providers)
	if err != nil {
		return nil, err
	}

	logger.Debug("Query: %q, threshold %.2f, top-k %d", query, threshold, topK)

	outcome, err := s.retrieval.Retrieve(ctx, query, domain.RetrievalOptions{TopK: topK, Threshold: threshold})
	switch {
	case errors.Is(err, domain.ErrEmbeddingUnavailable):
		// Without query vectors local retrieval cannot run; web search still can.
		logger.Warn("Local retrieval unavailable, trying web search: %v", err)
		outcome = domain.Rejected(0, nil)
	case err != nil:
		return nil, withGuidance(err)
	}

	result := &domain.RouterResult{
		Query:            query,
		BestDistance:     outcome.BestDistance,
		Quality:          outcome.Quality(),
		LocalUnavailable: err != nil,
	}

	if outcome.Accepted {
		result.ContextText = outcome.ContextText

		answer, err := s.synthesizer.Synthesize(ctx, query, outcome.ContextText)
		if err != nil {
			logger.Warn("Generation failed, returning context only: %v", err)
			result.Kind = domain.KindLocalRetrievalFailed
			result.Err = err
			return result, nil
		}

		result.Kind = domain.KindLocalAnswer
		result.AnswerText = answer
		return result, nil
	}

	if !result.LocalUnavailable {
		logger.Info("No local context within threshold %.2f (best %.4f), trying web search",
			threshold, outcome.BestDistance)
	}

	fallback := s.fallback.Search(ctx, query, providers)
	if fallback.Unavailable {
		result.Kind = domain.KindFallbackUnavailable
		result.Reason = fallback.Reason
		result.Err = fmt.Errorf("%w: %s", domain.ErrAllProvidersFailed, fallback.Reason)
		return result, nil
	}

	result.Kind = domain.KindFallbackAnswer
	result.Provider = fallback.Provider
	result.Items = fallback.Items
	return result, nil
}

// selectProviders filters the configured chain to the named providers, in the requested order.
func (s *RouterService) selectProviders(names []string) ([]driven.SearchProvider, error) {
	if names == nil {
		return s.providers, nil
	}

	byName := make(map[string]driven.SearchProvider, len(s.providers))
	for _, p := range s.providers {
		byName[p.Name()] = p
	}

	selected := make([]driven.SearchProvider, 0, len(names))
	for _, name := range names {
		p, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("%w: search provider %q is not configured", domain.ErrInvalidInput, name)
		}
		selected = append(selected, p)
	}
	return selected, nil
}

// withGuidance attaches the operator action that fixes a precondition failure.
func withGuidance(err error) error {
	switch {
	case errors.Is(err, domain.ErrIndexNotFound):
		return fmt.Errorf("%w: run 'kcc corpus normalize' and 'kcc index rebuild' first", err)
	case errors.Is(err, domain.ErrIndexStale):
		return fmt.Errorf("%w: run 'kcc index rebuild'", err)
	default:
		return err
	}
}

// RebuildDocuments regenerates the normalised document collection.
func (s *RouterService) RebuildDocuments(ctx context.Context) (*domain.NormalizeReport, error) {
	if s.normalizer == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.normalizer.RebuildDocuments(ctx)
}

// RebuildIndex regenerates the vector index.
func (s *RouterService) RebuildIndex(ctx context.Context) (*domain.IndexMeta, error) {
	if s.indexer == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.indexer.RebuildIndex(ctx)
}
