package websearch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/kcc-assistant/internal/core/domain"
)

func providerNames(t *testing.T, settings domain.WebSearchSettings) []string {
	t.Helper()
	var names []string
	for _, p := range NewProviders(context.Background(), settings) {
		names = append(names, p.Name())
	}
	return names
}

func TestNewProviders_OnlyKeyless(t *testing.T) {
	settings := domain.WebSearchSettings{Providers: domain.DefaultProviderOrder()}

	assert.Equal(t, []string{"duckduckgo"}, providerNames(t, settings))
}

func TestNewProviders_PriorityOrder(t *testing.T) {
	settings := domain.WebSearchSettings{
		Providers: []domain.SearchProviderName{
			domain.ProviderDuckDuckGo, domain.ProviderGoogle, domain.ProviderSerpAPI,
		},
		SerpAPIKey:   "s",
		GoogleAPIKey: "g",
		GoogleCX:     "cx",
	}

	assert.Equal(t, []string{"duckduckgo", "google", "serpapi"}, providerNames(t, settings))
}

func TestNewProviders_None(t *testing.T) {
	assert.Empty(t, providerNames(t, domain.WebSearchSettings{}))
}
