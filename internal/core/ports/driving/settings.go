package driving

import "github.com/custodia-labs/kcc-assistant/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetThreshold updates the default similarity threshold.
	SetThreshold(threshold float64) error

	// SetTopK updates the number of passages retrieved per query.
	SetTopK(topK int) error

	// SetEmbeddingProvider configures the embedding provider.
	SetEmbeddingProvider(provider domain.AIProvider, model, apiKey string) error

	// SetLLMModel configures the generation model.
	SetLLMModel(model string) error

	// SetProviderKey stores a web search provider credential.
	SetProviderKey(provider domain.SearchProviderName, key string) error

	// SetProviderOrder sets the web search provider priority order.
	SetProviderOrder(order []domain.SearchProviderName) error

	// Validate checks that current settings are usable.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// ValidateEmbeddingConfig validates the current embedding configuration by pinging the provider.
	ValidateEmbeddingConfig() error

	// ValidateLLMConfig validates the current generator configuration by pinging Ollama.
	ValidateLLMConfig() error
}
