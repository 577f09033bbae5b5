package services

import (
	"fmt"
	"slices"
	"strings"

	"github.com/custodia-labs/kcc-assistant/internal/core/domain"
	"github.com/custodia-labs/kcc-assistant/internal/core/ports/driven"
	"github.com/custodia-labs/kcc-assistant/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyEmbedProvider     = "embedding.provider"
	keyEmbedModel        = "embedding.model"
	keyEmbedBaseURL      = "embedding.base_url"
	keyEmbedAPIKey       = "embedding.api_key"
	keyEmbedBatchSize    = "embedding.batch_size"
	keyLLMModel          = "llm.model"
	keyLLMBaseURL        = "llm.base_url"
	keyLLMMaxConcurrent  = "llm.max_concurrent"
	keyThreshold         = "retrieval.threshold"
	keyTopK              = "retrieval.top_k"
	keyFilterPassages    = "retrieval.filter_passages"
	keySearchProviders   = "websearch.providers"
	keySerpAPIKey        = "websearch.serpapi_key"
	keyGoogleAPIKey      = "websearch.google_api_key"
	keyGoogleCX          = "websearch.google_cx"
	keyCacheTTL          = "websearch.cache_ttl_seconds"
	keyRedisAddr         = "websearch.redis_addr"
	keyStorageBackend    = "storage.backend"
	keyStorageDataDir    = "storage.data_dir"
	keyCorpusPath        = "corpus.path"
	defaultOllamaBaseURL = "http://localhost:11434"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Embedding: domain.EmbeddingSettings{
			Provider:  s.getProvider(keyEmbedProvider, defaults.Embedding.Provider),
			Model:     s.getString(keyEmbedModel, defaults.Embedding.Model),
			BaseURL:   s.configStore.GetString(keyEmbedBaseURL), // empty means the provider default
			APIKey:    s.configStore.GetString(keyEmbedAPIKey),
			BatchSize: s.getInt(keyEmbedBatchSize, defaults.Embedding.BatchSize),
		},
		LLM: domain.LLMSettings{
			Model:         s.getString(keyLLMModel, defaults.LLM.Model),
			BaseURL:       s.configStore.GetString(keyLLMBaseURL),
			MaxConcurrent: s.getInt(keyLLMMaxConcurrent, defaults.LLM.MaxConcurrent),
		},
		Retrieval: domain.RetrievalSettings{
			Threshold:      s.getFloat(keyThreshold, defaults.Retrieval.Threshold),
			TopK:           s.getInt(keyTopK, defaults.Retrieval.TopK),
			FilterPassages: s.getBool(keyFilterPassages, defaults.Retrieval.FilterPassages),
		},
		WebSearch: domain.WebSearchSettings{
			Providers:       s.getProviderOrder(defaults.WebSearch.Providers),
			SerpAPIKey:      s.configStore.GetString(keySerpAPIKey),
			GoogleAPIKey:    s.configStore.GetString(keyGoogleAPIKey),
			GoogleCX:        s.configStore.GetString(keyGoogleCX),
			CacheTTLSeconds: s.getInt(keyCacheTTL, defaults.WebSearch.CacheTTLSeconds),
			RedisAddr:       s.configStore.GetString(keyRedisAddr),
		},
		Storage: domain.StorageSettings{
			Backend:    s.getBackend(defaults.Storage.Backend),
			DataDir:    s.getString(keyStorageDataDir, defaults.Storage.DataDir),
			CorpusPath: s.getString(keyCorpusPath, defaults.Storage.CorpusPath),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := settings.Retrieval.Validate(); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{keyEmbedProvider, settings.Embedding.Provider.String()},
		{keyEmbedModel, settings.Embedding.Model},
		{keyEmbedBaseURL, settings.Embedding.BaseURL},
		{keyEmbedBatchSize, settings.Embedding.BatchSize},
		{keyLLMModel, settings.LLM.Model},
		{keyLLMBaseURL, settings.LLM.BaseURL},
		{keyLLMMaxConcurrent, settings.LLM.MaxConcurrent},
		{keyThreshold, settings.Retrieval.Threshold},
		{keyTopK, settings.Retrieval.TopK},
		{keyFilterPassages, settings.Retrieval.FilterPassages},
		{keySearchProviders, providerNames(settings.WebSearch.Providers)},
		{keyGoogleCX, settings.WebSearch.GoogleCX},
		{keyCacheTTL, settings.WebSearch.CacheTTLSeconds},
		{keyRedisAddr, settings.WebSearch.RedisAddr},
		{keyStorageBackend, string(settings.Storage.Backend)},
		{keyStorageDataDir, settings.Storage.DataDir},
		{keyCorpusPath, settings.Storage.CorpusPath},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	// Secrets are only written when set so an empty form never clears them.
	secrets := map[string]string{
		keyEmbedAPIKey:  settings.Embedding.APIKey,
		keySerpAPIKey:   settings.WebSearch.SerpAPIKey,
		keyGoogleAPIKey: settings.WebSearch.GoogleAPIKey,
	}
	for key, value := range secrets {
		if value == "" {
			continue
		}
		if err := s.configStore.Set(key, value); err != nil {
			return fmt.Errorf("save %s: %w", key, err)
		}
	}

	return nil
}

// SetThreshold updates the default similarity threshold.
func (s *SettingsService) SetThreshold(threshold float64) error {
	if err := domain.ValidateThreshold(threshold); err != nil {
		return err
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Retrieval.Threshold = threshold
	return s.Save(settings)
}

// SetTopK updates the number of passages retrieved per query.
func (s *SettingsService) SetTopK(topK int) error {
	if topK < 1 {
		return fmt.Errorf("%w: top_k must be at least 1", domain.ErrInvalidInput)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Retrieval.TopK = topK
	return s.Save(settings)
}

// SetEmbeddingProvider configures the embedding provider.
func (s *SettingsService) SetEmbeddingProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("%w: invalid embedding provider: %s", domain.ErrInvalidInput, provider)
	}
	if !slices.Contains(domain.AllEmbeddingProviders(), provider) {
		return fmt.Errorf("%w: provider %s does not support embeddings", domain.ErrInvalidInput, provider)
	}
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("%w: API key required for %s", domain.ErrInvalidInput, provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Embedding.Provider = provider
	if model != "" {
		settings.Embedding.Model = model
	} else if defaultModel, ok := domain.DefaultEmbeddingModels()[provider]; ok {
		settings.Embedding.Model = defaultModel
	}

	if provider == domain.AIProviderOllama {
		if settings.Embedding.BaseURL == "" {
			settings.Embedding.BaseURL = defaultOllamaBaseURL
		}
	} else {
		settings.Embedding.BaseURL = ""
	}
	settings.Embedding.APIKey = apiKey

	return s.Save(settings)
}

// SetLLMModel configures the generation model.
func (s *SettingsService) SetLLMModel(model string) error {
	if model == "" {
		return fmt.Errorf("%w: model is required", domain.ErrInvalidInput)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.LLM.Model = model
	if settings.LLM.BaseURL == "" {
		settings.LLM.BaseURL = defaultOllamaBaseURL
	}
	return s.Save(settings)
}

// SetProviderKey stores a web search provider credential.
// For google the key has the form "<api-key>:<cx>".
func (s *SettingsService) SetProviderKey(provider domain.SearchProviderName, key string) error {
	if key == "" {
		return fmt.Errorf("%w: key is required", domain.ErrInvalidInput)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	switch provider {
	case domain.ProviderSerpAPI:
		settings.WebSearch.SerpAPIKey = key
	case domain.ProviderGoogle:
		apiKey, cx, ok := cutCredential(key)
		if !ok {
			return fmt.Errorf("%w: google credential must be <api-key>:<cx>", domain.ErrInvalidInput)
		}
		settings.WebSearch.GoogleAPIKey = apiKey
		settings.WebSearch.GoogleCX = cx
	default:
		return fmt.Errorf("%w: provider %s takes no key", domain.ErrInvalidInput, provider)
	}

	return s.Save(settings)
}

// SetProviderOrder sets the web search provider priority order.
func (s *SettingsService) SetProviderOrder(order []domain.SearchProviderName) error {
	seen := make(map[domain.SearchProviderName]bool, len(order))
	for _, name := range order {
		if !name.IsValid() {
			return fmt.Errorf("%w: unknown search provider: %s", domain.ErrInvalidInput, name)
		}
		if seen[name] {
			return fmt.Errorf("%w: duplicate search provider: %s", domain.ErrInvalidInput, name)
		}
		seen[name] = true
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.WebSearch.Providers = order
	return s.Save(settings)
}

// Validate checks that current settings are usable.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if !settings.Embedding.IsConfigured() {
		return fmt.Errorf("%w: embedding provider %q is not configured",
			domain.ErrInvalidInput, settings.Embedding.Provider)
	}
	if settings.LLM.Model == "" {
		return fmt.Errorf("%w: llm model is not set", domain.ErrInvalidInput)
	}
	if !settings.Storage.Backend.IsValid() {
		return fmt.Errorf("%w: invalid storage backend: %s", domain.ErrInvalidInput, settings.Storage.Backend)
	}
	return settings.Retrieval.Validate()
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ValidateEmbeddingConfig validates the current embedding configuration by pinging the provider.
func (s *SettingsService) ValidateEmbeddingConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateEmbedding(&settings.Embedding)
}

// ValidateLLMConfig validates the current generator configuration by pinging Ollama.
func (s *SettingsService) ValidateLLMConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateLLM(&settings.LLM)
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

// getFloat accepts both float and integer TOML values, so "threshold = 1" reads as 1.0.
func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val, exists := s.configStore.Get(key)
	if !exists {
		return defaultVal
	}
	switch v := val.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int64:
		return float64(v)
	case int:
		return float64(v)
	default:
		return defaultVal
	}
}

func (s *SettingsService) getProvider(key string, defaultVal domain.AIProvider) domain.AIProvider {
	provider := domain.AIProvider(s.configStore.GetString(key))
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}

func (s *SettingsService) getBackend(defaultVal domain.StorageBackend) domain.StorageBackend {
	backend := domain.StorageBackend(s.configStore.GetString(keyStorageBackend))
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}

// getProviderOrder drops unknown names; an empty result falls back to the default order.
func (s *SettingsService) getProviderOrder(defaultVal []domain.SearchProviderName) []domain.SearchProviderName {
	names := s.configStore.GetStringSlice(keySearchProviders)
	if len(names) == 0 {
		return defaultVal
	}
	order := make([]domain.SearchProviderName, 0, len(names))
	for _, n := range names {
		name := domain.SearchProviderName(n)
		if name.IsValid() {
			order = append(order, name)
		}
	}
	if len(order) == 0 {
		return defaultVal
	}
	return order
}

func providerNames(order []domain.SearchProviderName) []string {
	names := make([]string, len(order))
	for i, n := range order {
		names[i] = n.String()
	}
	return names
}

// cutCredential splits "<api-key>:<cx>" at the last colon.
func cutCredential(s string) (apiKey, cx string, ok bool) {
	i := strings.LastIndex(s, ":")
	if i < 0 {
		return "", "", false
	}
	apiKey, cx = s[:i], s[i+1:]
	return apiKey, cx, apiKey != "" && cx != ""
}
