package driven

import "github.com/custodia-labs/kcc-assistant/internal/core/domain"

// AIConfigValidator validates AI provider configurations.
// Implementations verify that configurations are valid by testing connectivity
// to the underlying AI services.
type AIConfigValidator interface {
	// ValidateEmbedding validates an embedding configuration by pinging the provider.
	ValidateEmbedding(config *domain.EmbeddingSettings) error

	// ValidateLLM validates a generator configuration by pinging Ollama.
	ValidateLLM(config *domain.LLMSettings) error
}
