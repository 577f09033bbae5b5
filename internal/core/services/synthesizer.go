package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/kcc-assistant/internal/core/domain"
	"github.com/custodia-labs/kcc-assistant/internal/core/ports/driven"
	"github.com/custodia-labs/kcc-assistant/internal/core/ports/driving"
	"github.com/custodia-labs/kcc-assistant/internal/logger"
)

// Ensure SynthesizerService implements the interfaces.
var _ driving.AnswerSynthesizer = (*SynthesizerService)(nil)

// DefaultAnswerPrompt is used when no prompt store is configured.
const DefaultAnswerPrompt = driven.DefaultAnswerPrompt

// SynthesizerService phrases answers from accepted local context.
type SynthesizerService struct {
	generator   driven.TextGenerator
	promptStore driven.PromptStore
}

// NewSynthesizerService creates a new answer synthesiser.
// generator may be nil; every call then fails with domain.ErrGeneration.
func NewSynthesizerService(generator driven.TextGenerator) *SynthesizerService {
	return &SynthesizerService{generator: generator}
}

// SetPromptStore sets the store for the user-editable answer prompt.
func (s *SynthesizerService) SetPromptStore(store driven.PromptStore) {
	s.promptStore = store
}

// Synthesize builds the answer prompt and returns the trimmed generation.
func (s *SynthesizerService) Synthesize(ctx context.Context, query, contextText string) (string, error) {
	logger.Section("Answer Generation")
	defer logger.Timed("generation")()

	if s.generator == nil {
		return "", fmt.Errorf("%w: %w", domain.ErrGeneration, domain.ErrLLMUnavailable)
	}

	prompt := fmt.Sprintf(s.template(), contextText, query)
	logger.Debug("Prompt length: %d chars, model %s", len(prompt), s.generator.ModelName())

	out, err := s.generator.Generate(ctx, prompt, driven.GenerateOptions{})
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrGeneration, err)
	}

	answer := strings.TrimSpace(out)
	if answer == "" {
		return "", fmt.Errorf("%w: model %s returned an empty answer", domain.ErrGeneration, s.generator.ModelName())
	}
	return answer, nil
}

// template returns the configured answer prompt, falling back to the default
// when the store is absent, fails, or holds a template with the wrong arity.
func (s *SynthesizerService) template() string {
	if s.promptStore == nil {
		return DefaultAnswerPrompt
	}
	tmpl, err := s.promptStore.Load(driven.PromptAnswer)
	if err != nil {
		logger.Warn("Failed to load answer prompt, using default: %v", err)
		return DefaultAnswerPrompt
	}
	if strings.Count(tmpl, "%s") != 2 {
		logger.Warn("Answer prompt must contain exactly two %%s placeholders, using default")
		return DefaultAnswerPrompt
	}
	return tmpl
}
