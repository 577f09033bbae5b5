package websearch

import (
	"context"
	"fmt"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"

	"github.com/custodia-labs/kcc-assistant/internal/core/domain"
	"github.com/custodia-labs/kcc-assistant/internal/core/ports/driven"
)

// Ensure Google implements the interface.
var _ driven.SearchProvider = (*Google)(nil)

// googleMaxResults is the Custom Search API's per-request cap.
const googleMaxResults = 10

// GoogleConfig holds configuration for the Programmable Search provider.
type GoogleConfig struct {
	// APIKey and CX (the search engine ID) are required.
	APIKey string
	CX     string

	// Endpoint overrides the API base URL.
	Endpoint string

	// RateLimit overrides DefaultRateLimit.
	RateLimit RateLimitConfig
}

// Google searches through the Custom Search JSON API.
type Google struct {
	svc     *customsearch.Service
	cx      string
	limiter *RateLimiter
}

// NewGoogle creates a Google Programmable Search provider.
func NewGoogle(ctx context.Context, cfg GoogleConfig) (*Google, error) {
	if cfg.APIKey == "" || cfg.CX == "" {
		return nil, fmt.Errorf("%w: google needs an API key and a cx", domain.ErrProviderNotConfigured)
	}

	opts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}

	svc, err := customsearch.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create custom search service: %w", err)
	}

	return &Google{
		svc:     svc,
		cx:      cfg.CX,
		limiter: NewRateLimiter(cfg.RateLimit),
	}, nil
}

// Name returns "google".
func (g *Google) Name() string {
	return domain.ProviderGoogle.String()
}

// Search runs the query against the configured search engine.
func (g *Google) Search(ctx context.Context, query string, limit int) (*domain.ProviderResponse, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	if limit < 1 || limit > googleMaxResults {
		limit = googleMaxResults
	}

	res, err := g.svc.Cse.List().
		Cx(g.cx).
		Q(query).
		Num(int64(limit)).
		Context(ctx).
		Do()
	if err != nil {
		if IsRateLimited(err) {
			g.limiter.RecordRateLimitError(0)
		}
		return nil, wrapGoogleError(err)
	}

	out := &domain.ProviderResponse{
		Items: make([]domain.SearchResultItem, 0, len(res.Items)),
	}
	for _, item := range res.Items {
		out.Items = append(out.Items, domain.SearchResultItem{
			Title:     item.Title,
			Snippet:   item.Snippet,
			SourceURL: item.Link,
		})
	}
	return out, nil
}
