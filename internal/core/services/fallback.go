package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/kcc-assistant/internal/core/domain"
	"github.com/custodia-labs/kcc-assistant/internal/core/ports/driven"
	"github.com/custodia-labs/kcc-assistant/internal/core/ports/driving"
	"github.com/custodia-labs/kcc-assistant/internal/logger"
)

// Ensure FallbackService implements the interface.
var _ driving.FallbackSearcher = (*FallbackService)(nil)

// Fallback search defaults.
const (
	// DefaultProviderTimeout bounds every provider call.
	DefaultProviderTimeout = 10 * time.Second

	// providerResultLimit is how many organic results are requested per call.
	providerResultLimit = 5

	// queryQualifier narrows generic web search to farming advice.
	queryQualifier = "agricultural advice %s farming tips"
)

// FallbackService tries web search providers strictly in priority order.
type FallbackService struct {
	cache   driven.SearchCache
	timeout time.Duration
}

// NewFallbackService creates a new fallback orchestrator.
// cache may be nil.
func NewFallbackService(cache driven.SearchCache) *FallbackService {
	return &FallbackService{
		cache:   cache,
		timeout: DefaultProviderTimeout,
	}
}

// SetTimeout overrides the per-provider timeout.
func (s *FallbackService) SetTimeout(d time.Duration) {
	if d > 0 {
		s.timeout = d
	}
}

// EnrichQuery adds the farming qualifier sent to every provider.
func EnrichQuery(query string) string {
	return fmt.Sprintf(queryQualifier, strings.TrimSpace(query))
}

// Search returns the first provider's usable results, or Unavailable.
func (s *FallbackService) Search(
	ctx context.Context, query string, providers []driven.SearchProvider,
) *domain.FallbackOutcome {
	logger.Section("Fallback Search")
	defer logger.Timed("fallback search")()

	enriched := EnrichQuery(query)
	logger.Debug("Enriched query: %q", enriched)

	names := make([]string, 0, len(providers))
	for _, p := range providers {
		names = append(names, p.Name())
	}

	if len(providers) == 0 {
		logger.Warn("No web search providers configured")
		return unavailable(names)
	}

	key := cacheKey(enriched, names)
	if outcome := s.cached(ctx, key); outcome != nil {
		return outcome
	}

	for _, p := range providers {
		items, err := s.try(ctx, p, enriched)
		if err != nil {
			logger.Warn("Provider %s failed: %v", p.Name(), err)
			continue
		}
		if len(items) == 0 {
			logger.Warn("Provider %s returned no usable results", p.Name())
			continue
		}

		logger.Info("Provider %s returned %d results", p.Name(), len(items))
		outcome := &domain.FallbackOutcome{Provider: p.Name(), Items: items}
		s.store(ctx, key, outcome)
		return outcome
	}

	return unavailable(names)
}

// try calls one provider under the per-provider timeout and normalises its response.
func (s *FallbackService) try(ctx context.Context, p driven.SearchProvider, query string) ([]domain.SearchResultItem, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := p.Search(callCtx, query, providerResultLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrProvider, p.Name(), err)
	}
	return NormalizeResults(resp), nil
}

// NormalizeResults puts the direct answer first, drops items without a
// snippet and caps the list at domain.MaxFallbackResults.
func NormalizeResults(resp *domain.ProviderResponse) []domain.SearchResultItem {
	if resp == nil {
		return nil
	}

	candidates := make([]domain.SearchResultItem, 0, len(resp.Items)+1)
	if resp.DirectAnswer != nil {
		candidates = append(candidates, *resp.DirectAnswer)
	}
	candidates = append(candidates, resp.Items...)

	items := make([]domain.SearchResultItem, 0, domain.MaxFallbackResults)
	for _, item := range candidates {
		if strings.TrimSpace(item.Snippet) == "" {
			continue
		}
		items = append(items, item)
		if len(items) == domain.MaxFallbackResults {
			break
		}
	}
	return items
}

func unavailable(tried []string) *domain.FallbackOutcome {
	methods := "no search providers are configured"
	if len(tried) > 0 {
		methods = "all configured search methods failed (" + strings.Join(tried, ", ") + ")"
	}
	return &domain.FallbackOutcome{
		Unavailable: true,
		Reason: "Live search currently unavailable: " + methods + ". " +
			"Please check your internet connection or API key configuration. " +
			"You can try rephrasing your query or ask about topics covered in the local KCC dataset.",
	}
}

func cacheKey(query string, providers []string) string {
	return strings.ToLower(query) + "|" + strings.Join(providers, ",")
}

func (s *FallbackService) cached(ctx context.Context, key string) *domain.FallbackOutcome {
	if s.cache == nil {
		return nil
	}
	outcome, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		logger.Warn("Search cache read failed: %v", err)
		return nil
	}
	if !ok {
		return nil
	}
	logger.Debug("Search cache hit for %q", key)
	return outcome
}

func (s *FallbackService) store(ctx context.Context, key string, outcome *domain.FallbackOutcome) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, outcome); err != nil {
		logger.Warn("Search cache write failed: %v", err)
	}
}
