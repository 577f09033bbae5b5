package websearch

import (
	"context"

	"github.com/custodia-labs/kcc-assistant/internal/core/domain"
	"github.com/custodia-labs/kcc-assistant/internal/core/ports/driven"
	"github.com/custodia-labs/kcc-assistant/internal/logger"
)

// NewProviders builds the fallback chain in the configured priority order.
// Providers without credentials are left out. A provider that fails to
// initialise is logged and skipped so the rest of the chain still works.
func NewProviders(ctx context.Context, settings domain.WebSearchSettings) []driven.SearchProvider {
	providers := make([]driven.SearchProvider, 0, len(settings.Providers))

	for _, name := range settings.ConfiguredProviders() {
		switch name {
		case domain.ProviderSerpAPI:
			p, err := NewSerpAPI(SerpAPIConfig{APIKey: settings.SerpAPIKey})
			if err != nil {
				logger.Warn("Skipping serpapi: %v", err)
				continue
			}
			providers = append(providers, p)
		case domain.ProviderGoogle:
			p, err := NewGoogle(ctx, GoogleConfig{APIKey: settings.GoogleAPIKey, CX: settings.GoogleCX})
			if err != nil {
				logger.Warn("Skipping google: %v", err)
				continue
			}
			providers = append(providers, p)
		case domain.ProviderDuckDuckGo:
			providers = append(providers, NewDuckDuckGo(DuckDuckGoConfig{}))
		}
	}

	logger.Debug("Web search providers: %d configured", len(providers))
	return providers
}
