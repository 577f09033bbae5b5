// Package ai provides factory functions for creating AI service adapters.
package ai

import (
	"context"
	"fmt"
	"time"

	ollamaembed "github.com/custodia-labs/kcc-assistant/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/custodia-labs/kcc-assistant/internal/adapters/driven/embedding/openai"
	ollamallm "github.com/custodia-labs/kcc-assistant/internal/adapters/driven/llm/ollama"
	"github.com/custodia-labs/kcc-assistant/internal/core/domain"
	"github.com/custodia-labs/kcc-assistant/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// InitResult contains the result of AI service initialisation.
type InitResult struct {
	EmbeddingService driven.EmbeddingService
	Generator        driven.TextGenerator
	Warnings         []string // Non-fatal issues; the missing service stays nil.
}

// Close releases all resources held by InitResult.
func (r *InitResult) Close() {
	if r.EmbeddingService != nil {
		_ = r.EmbeddingService.Close()
	}
	if r.Generator != nil {
		_ = r.Generator.Close()
	}
}

// Initialise creates and pings both AI services. A service that cannot be
// reached is left nil with a warning, so web fallback still works when
// Ollama is down.
func Initialise(settings domain.AppSettings) *InitResult {
	result := &InitResult{}

	embedder, err := CreateAndValidateEmbeddingService(&settings.Embedding)
	if err != nil {
		result.Warnings = append(result.Warnings, err.Error())
	} else {
		result.EmbeddingService = embedder
	}

	generator, err := CreateAndValidateGenerator(&settings.LLM)
	if err != nil {
		result.Warnings = append(result.Warnings, err.Error())
	} else {
		result.Generator = generator
	}

	return result
}

// CreateAndValidateEmbeddingService creates an embedding service and validates connectivity.
// Returns the service if successful, or an error with guidance.
func CreateAndValidateEmbeddingService(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, fmt.Errorf("%w: not configured. Run 'kcc settings embedding' to fix",
			domain.ErrEmbeddingUnavailable)
	}

	svc, err := CreateEmbeddingService(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. Run 'kcc settings embedding' to fix",
			domain.ErrEmbeddingUnavailable, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		_ = svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w). Start Ollama or run 'kcc settings embedding' to fix",
			domain.ErrEmbeddingUnavailable, err)
	}

	return svc, nil
}

// CreateAndValidateGenerator creates the Ollama generator and validates connectivity.
func CreateAndValidateGenerator(settings *domain.LLMSettings) (driven.TextGenerator, error) {
	if settings == nil || settings.Model == "" {
		return nil, fmt.Errorf("%w: no model configured. Run 'kcc settings llm' to fix",
			domain.ErrLLMUnavailable)
	}

	gen := CreateGenerator(settings)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := gen.Ping(ctx); err != nil {
		_ = gen.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w). Start it with 'ollama serve' and pull %s",
			domain.ErrLLMUnavailable, err, settings.Model)
	}

	return gen, nil
}

// ValidateEmbeddingConfig validates an embedding configuration by creating a service and pinging it.
func ValidateEmbeddingConfig(settings *domain.EmbeddingSettings) error {
	if settings == nil || !settings.IsConfigured() {
		return nil
	}

	svc, err := CreateEmbeddingService(settings)
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return svc.Ping(ctx)
}

// ValidateLLMConfig validates a generator configuration by pinging Ollama.
func ValidateLLMConfig(settings *domain.LLMSettings) error {
	if settings == nil || settings.Model == "" {
		return nil
	}

	gen := CreateGenerator(settings)
	defer gen.Close()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return gen.Ping(ctx)
}

// CreateEmbeddingService creates the appropriate embedding service based on settings.
func CreateEmbeddingService(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, fmt.Errorf("%w: embedding provider not configured", domain.ErrInvalidInput)
	}

	switch settings.Provider {
	case domain.AIProviderOllama:
		return createOllamaEmbedding(settings), nil

	case domain.AIProviderOpenAI:
		return createOpenAIEmbedding(settings)

	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", settings.Provider)
	}
}

// CreateGenerator creates the Ollama text generator.
func CreateGenerator(settings *domain.LLMSettings) driven.TextGenerator {
	return ollamallm.NewGenerator(ollamallm.Config{
		BaseURL:       settings.BaseURL,
		Model:         settings.Model,
		MaxConcurrent: settings.MaxConcurrent,
	})
}

func createOllamaEmbedding(settings *domain.EmbeddingSettings) driven.EmbeddingService {
	dimensions := domain.EmbeddingDimensions()[settings.Model]
	if dimensions == 0 {
		dimensions = ollamaembed.DefaultDimensions
	}

	return ollamaembed.NewEmbeddingService(ollamaembed.Config{
		BaseURL:    settings.BaseURL,
		Model:      settings.Model,
		Dimensions: dimensions,
	})
}

func createOpenAIEmbedding(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	return openaiembed.NewEmbeddingService(openaiembed.Config{
		APIKey:  settings.APIKey,
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
	})
}
