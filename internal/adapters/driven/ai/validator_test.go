package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/kcc-assistant/internal/core/domain"
)

func TestConfigValidator_SkipsUnconfigured(t *testing.T) {
	v := NewConfigValidator()

	assert.NoError(t, v.ValidateEmbedding(nil))
	assert.NoError(t, v.ValidateEmbedding(&domain.EmbeddingSettings{}))
	assert.NoError(t, v.ValidateLLM(nil))
	assert.NoError(t, v.ValidateLLM(&domain.LLMSettings{}))
}

func TestConfigValidator_PingsProvider(t *testing.T) {
	server := ollamaServer(t)
	v := NewConfigValidator()

	assert.NoError(t, v.ValidateEmbedding(&domain.EmbeddingSettings{
		Provider: domain.AIProviderOllama, Model: "all-minilm", BaseURL: server.URL,
	}))
	assert.NoError(t, v.ValidateLLM(&domain.LLMSettings{Model: "gemma:2b", BaseURL: server.URL}))
}

func TestConfigValidator_ReportsUnreachable(t *testing.T) {
	v := NewConfigValidator()

	assert.Error(t, v.ValidateEmbedding(&domain.EmbeddingSettings{
		Provider: domain.AIProviderOllama, Model: "all-minilm", BaseURL: downURL(t),
	}))
	assert.Error(t, v.ValidateLLM(&domain.LLMSettings{Model: "gemma:2b", BaseURL: downURL(t)}))
}
