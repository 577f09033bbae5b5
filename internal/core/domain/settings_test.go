package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAIProvider_IsValid(t *testing.T) {
	assert.True(t, AIProviderOllama.IsValid())
	assert.True(t, AIProviderOpenAI.IsValid())
	assert.False(t, AIProvider("anthropic").IsValid())
	assert.False(t, AIProvider("").IsValid())
}

func TestEmbeddingSettings_IsConfigured(t *testing.T) {
	tests := []struct {
		name     string
		settings EmbeddingSettings
		expected bool
	}{
		{
			name:     "ollama needs no key",
			settings: EmbeddingSettings{Provider: AIProviderOllama},
			expected: true,
		},
		{
			name:     "openai without key",
			settings: EmbeddingSettings{Provider: AIProviderOpenAI},
			expected: false,
		},
		{
			name:     "openai with key",
			settings: EmbeddingSettings{Provider: AIProviderOpenAI, APIKey: "sk-test"},
			expected: true,
		},
		{
			name:     "unknown provider",
			settings: EmbeddingSettings{Provider: "unknown"},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.settings.IsConfigured())
		})
	}
}

func TestValidateThreshold(t *testing.T) {
	require.NoError(t, ValidateThreshold(0.5))
	require.NoError(t, ValidateThreshold(1.0))
	require.NoError(t, ValidateThreshold(2.0))

	err := ValidateThreshold(0.49)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = ValidateThreshold(2.01)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRetrievalSettings_Validate(t *testing.T) {
	assert.NoError(t, RetrievalSettings{Threshold: 1.0, TopK: 3}.Validate())
	assert.ErrorIs(t, RetrievalSettings{Threshold: 1.0, TopK: 0}.Validate(), ErrInvalidInput)
	assert.ErrorIs(t, RetrievalSettings{Threshold: 5, TopK: 3}.Validate(), ErrInvalidInput)
}

func TestWebSearchSettings_ConfiguredProviders(t *testing.T) {
	settings := WebSearchSettings{Providers: DefaultProviderOrder()}

	// Only the keyless provider is usable without credentials
	assert.Equal(t, []SearchProviderName{ProviderDuckDuckGo}, settings.ConfiguredProviders())

	settings.SerpAPIKey = "serp-key"
	assert.Equal(t,
		[]SearchProviderName{ProviderSerpAPI, ProviderDuckDuckGo},
		settings.ConfiguredProviders())

	// Google needs both the key and the engine id
	settings.GoogleAPIKey = "g-key"
	assert.False(t, settings.IsProviderConfigured(ProviderGoogle))
	settings.GoogleCX = "cx"
	assert.Equal(t, DefaultProviderOrder(), settings.ConfiguredProviders())
}

func TestDefaultAppSettings(t *testing.T) {
	settings := DefaultAppSettings()

	assert.Equal(t, AIProviderOllama, settings.Embedding.Provider)
	assert.Equal(t, "gemma:2b", settings.LLM.Model)
	assert.InDelta(t, 1.0, settings.Retrieval.Threshold, 1e-9)
	assert.Equal(t, 3, settings.Retrieval.TopK)
	assert.False(t, settings.Retrieval.FilterPassages)
	assert.Equal(t, StorageSQLite, settings.Storage.Backend)
	require.NoError(t, settings.Retrieval.Validate())
}

func TestSearchProviderName_IsValid(t *testing.T) {
	for _, name := range DefaultProviderOrder() {
		assert.True(t, name.IsValid(), name.String())
	}
	assert.False(t, SearchProviderName("bing").IsValid())
}
