package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kcc-assistant/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/kcc-assistant/internal/core/domain"
)

// mockAIValidator implements driven.AIConfigValidator.
type mockAIValidator struct {
	embedErr  error
	llmErr    error
	lastEmbed *domain.EmbeddingSettings
	lastLLM   *domain.LLMSettings
}

func (m *mockAIValidator) ValidateEmbedding(cfg *domain.EmbeddingSettings) error {
	m.lastEmbed = cfg
	return m.embedErr
}

func (m *mockAIValidator) ValidateLLM(cfg *domain.LLMSettings) error {
	m.lastLLM = cfg
	return m.llmErr
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppSettings(), *settings)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore(map[string]any{
		"embedding.provider":        "openai",
		"embedding.model":           "text-embedding-3-large",
		"embedding.batch_size":      int64(16),
		"llm.model":                 "llama3",
		"retrieval.threshold":       1.4,
		"retrieval.top_k":           int64(5),
		"retrieval.filter_passages": true,
		"websearch.providers":       []any{"duckduckgo", "bogus", "serpapi"},
		"websearch.serpapi_key":     "serp-key",
		"storage.backend":           "json",
		"corpus.path":               "/data/kcc.csv",
	})
	service := NewSettingsService(store, nil)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.AIProviderOpenAI, settings.Embedding.Provider)
	assert.Equal(t, "text-embedding-3-large", settings.Embedding.Model)
	assert.Equal(t, 16, settings.Embedding.BatchSize)
	assert.Equal(t, "llama3", settings.LLM.Model)
	assert.InDelta(t, 1.4, settings.Retrieval.Threshold, 1e-9)
	assert.Equal(t, 5, settings.Retrieval.TopK)
	assert.True(t, settings.Retrieval.FilterPassages)
	assert.Equal(t, []domain.SearchProviderName{domain.ProviderDuckDuckGo, domain.ProviderSerpAPI},
		settings.WebSearch.Providers)
	assert.Equal(t, "serp-key", settings.WebSearch.SerpAPIKey)
	assert.Equal(t, domain.StorageJSON, settings.Storage.Backend)
	assert.Equal(t, "/data/kcc.csv", settings.Storage.CorpusPath)
}

func TestSettingsService_Get_IntegerThreshold(t *testing.T) {
	store := memory.NewConfigStore(map[string]any{"retrieval.threshold": int64(2)})

	settings, err := NewSettingsService(store, nil).Get()

	require.NoError(t, err)
	assert.InDelta(t, 2.0, settings.Retrieval.Threshold, 1e-9)
}

func TestSettingsService_Get_InvalidValuesReturnDefaults(t *testing.T) {
	store := memory.NewConfigStore(map[string]any{
		"embedding.provider":  "anthropic",
		"storage.backend":     "postgres",
		"websearch.providers": []string{"bing"},
		"retrieval.threshold": "high",
	})

	settings, err := NewSettingsService(store, nil).Get()

	require.NoError(t, err)
	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.Embedding.Provider, settings.Embedding.Provider)
	assert.Equal(t, defaults.Storage.Backend, settings.Storage.Backend)
	assert.Equal(t, defaults.WebSearch.Providers, settings.WebSearch.Providers)
	assert.InDelta(t, defaults.Retrieval.Threshold, settings.Retrieval.Threshold, 1e-9)
}

func TestSettingsService_SaveRoundTrip(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)

	settings := domain.DefaultAppSettings()
	settings.Retrieval.Threshold = 0.8
	settings.Embedding.BatchSize = 8
	settings.WebSearch.GoogleAPIKey = "g-key"
	settings.WebSearch.GoogleCX = "cx-1"
	require.NoError(t, service.Save(&settings))

	got, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, settings, *got)
}

func TestSettingsService_Save_EmptySecretsKeepExisting(t *testing.T) {
	store := memory.NewConfigStore(map[string]any{"websearch.serpapi_key": "kept"})
	service := NewSettingsService(store, nil)

	settings := domain.DefaultAppSettings()
	require.NoError(t, service.Save(&settings))

	assert.Equal(t, "kept", store.GetString("websearch.serpapi_key"))
}

func TestSettingsService_Save_RejectsInvalidRetrieval(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)

	settings := domain.DefaultAppSettings()
	settings.Retrieval.Threshold = 3

	assert.ErrorIs(t, service.Save(&settings), domain.ErrInvalidInput)
}

func TestSettingsService_SetThreshold(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)

	require.NoError(t, service.SetThreshold(1.5))
	assert.ErrorIs(t, service.SetThreshold(0.1), domain.ErrInvalidInput)

	settings, err := service.Get()
	require.NoError(t, err)
	assert.InDelta(t, 1.5, settings.Retrieval.Threshold, 1e-9)
}

func TestSettingsService_SetTopK(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)

	require.NoError(t, service.SetTopK(5))
	assert.ErrorIs(t, service.SetTopK(0), domain.ErrInvalidInput)

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, 5, settings.Retrieval.TopK)
}

func TestSettingsService_SetEmbeddingProvider(t *testing.T) {
	t.Run("ollama gets a local base url", func(t *testing.T) {
		service := NewSettingsService(memory.NewConfigStore(), nil)

		require.NoError(t, service.SetEmbeddingProvider(domain.AIProviderOllama, "nomic-embed-text", ""))

		settings, err := service.Get()
		require.NoError(t, err)
		assert.Equal(t, "nomic-embed-text", settings.Embedding.Model)
		assert.Equal(t, "http://localhost:11434", settings.Embedding.BaseURL)
	})

	t.Run("openai default model clears base url", func(t *testing.T) {
		store := memory.NewConfigStore(map[string]any{"embedding.base_url": "http://localhost:11434"})
		service := NewSettingsService(store, nil)

		require.NoError(t, service.SetEmbeddingProvider(domain.AIProviderOpenAI, "", "sk-test"))

		settings, err := service.Get()
		require.NoError(t, err)
		assert.Equal(t, "text-embedding-3-small", settings.Embedding.Model)
		assert.Empty(t, settings.Embedding.BaseURL)
		assert.Equal(t, "sk-test", settings.Embedding.APIKey)
	})

	t.Run("openai requires key", func(t *testing.T) {
		service := NewSettingsService(memory.NewConfigStore(), nil)
		assert.ErrorIs(t, service.SetEmbeddingProvider(domain.AIProviderOpenAI, "", ""), domain.ErrInvalidInput)
	})

	t.Run("invalid provider", func(t *testing.T) {
		service := NewSettingsService(memory.NewConfigStore(), nil)
		assert.ErrorIs(t, service.SetEmbeddingProvider("cohere", "", ""), domain.ErrInvalidInput)
	})
}

func TestSettingsService_SetLLMModel(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)

	require.NoError(t, service.SetLLMModel("llama3"))
	assert.ErrorIs(t, service.SetLLMModel(""), domain.ErrInvalidInput)

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, "llama3", settings.LLM.Model)
	assert.Equal(t, "http://localhost:11434", settings.LLM.BaseURL)
}

func TestSettingsService_SetProviderKey(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)

	require.NoError(t, service.SetProviderKey(domain.ProviderSerpAPI, "serp"))
	require.NoError(t, service.SetProviderKey(domain.ProviderGoogle, "AIza:abc:123"))

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, "serp", settings.WebSearch.SerpAPIKey)
	assert.Equal(t, "AIza:abc", settings.WebSearch.GoogleAPIKey)
	assert.Equal(t, "123", settings.WebSearch.GoogleCX)
	assert.Equal(t, []domain.SearchProviderName{
		domain.ProviderSerpAPI, domain.ProviderGoogle, domain.ProviderDuckDuckGo,
	}, settings.WebSearch.ConfiguredProviders())

	assert.ErrorIs(t, service.SetProviderKey(domain.ProviderGoogle, "no-cx"), domain.ErrInvalidInput)
	assert.ErrorIs(t, service.SetProviderKey(domain.ProviderDuckDuckGo, "x"), domain.ErrInvalidInput)
	assert.ErrorIs(t, service.SetProviderKey(domain.ProviderSerpAPI, ""), domain.ErrInvalidInput)
}

func TestSettingsService_SetProviderOrder(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)

	order := []domain.SearchProviderName{domain.ProviderDuckDuckGo, domain.ProviderSerpAPI}
	require.NoError(t, service.SetProviderOrder(order))

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, order, settings.WebSearch.Providers)

	assert.ErrorIs(t, service.SetProviderOrder([]domain.SearchProviderName{"bing"}), domain.ErrInvalidInput)
	assert.ErrorIs(t, service.SetProviderOrder([]domain.SearchProviderName{
		domain.ProviderGoogle, domain.ProviderGoogle,
	}), domain.ErrInvalidInput)
}

func TestSettingsService_Validate(t *testing.T) {
	assert.NoError(t, NewSettingsService(memory.NewConfigStore(), nil).Validate())

	store := memory.NewConfigStore(map[string]any{"embedding.provider": "openai"})
	assert.ErrorIs(t, NewSettingsService(store, nil).Validate(), domain.ErrInvalidInput)
}

func TestSettingsService_ValidateConfigs(t *testing.T) {
	assert.NoError(t, NewSettingsService(memory.NewConfigStore(), nil).ValidateEmbeddingConfig())
	assert.NoError(t, NewSettingsService(memory.NewConfigStore(), nil).ValidateLLMConfig())

	validator := &mockAIValidator{llmErr: errBoom}
	service := NewSettingsService(memory.NewConfigStore(), validator)

	require.NoError(t, service.ValidateEmbeddingConfig())
	require.NotNil(t, validator.lastEmbed)
	assert.Equal(t, "all-minilm", validator.lastEmbed.Model)

	assert.ErrorIs(t, service.ValidateLLMConfig(), errBoom)
	require.NotNil(t, validator.lastLLM)
	assert.Equal(t, "gemma:2b", validator.lastLLM.Model)
}

func TestSettingsService_GetDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)
	assert.Equal(t, domain.DefaultAppSettings(), service.GetDefaults())
}
