package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kcc-assistant/internal/core/domain"
)

func TestSynthesizerService_Synthesize(t *testing.T) {
	gen := &mockGenerator{output: "  Spray neem oil.\n"}
	svc := NewSynthesizerService(gen)

	answer, err := svc.Synthesize(context.Background(), "How to control aphids?", "Query: aphids\nAnswer: neem")

	require.NoError(t, err)
	assert.Equal(t, "Spray neem oil.", answer)
	require.Len(t, gen.prompts, 1)
	assert.Equal(t,
		"Answer the user's question using the following agricultural advice:\n\n"+
			"Query: aphids\nAnswer: neem\n\nQuestion: How to control aphids?",
		gen.prompts[0])
}

func TestSynthesizerService_GeneratorError(t *testing.T) {
	svc := NewSynthesizerService(&mockGenerator{err: errBoom})

	_, err := svc.Synthesize(context.Background(), "q", "ctx")

	assert.ErrorIs(t, err, domain.ErrGeneration)
	assert.ErrorIs(t, err, errBoom)
}

func TestSynthesizerService_EmptyOutput(t *testing.T) {
	svc := NewSynthesizerService(&mockGenerator{output: " \n\t"})

	_, err := svc.Synthesize(context.Background(), "q", "ctx")

	assert.ErrorIs(t, err, domain.ErrGeneration)
}

func TestSynthesizerService_NilGenerator(t *testing.T) {
	svc := NewSynthesizerService(nil)

	_, err := svc.Synthesize(context.Background(), "q", "ctx")

	assert.ErrorIs(t, err, domain.ErrGeneration)
	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
}

func TestSynthesizerService_PromptStore(t *testing.T) {
	tests := []struct {
		name   string
		store  *mockPromptStore
		prefix string
	}{
		{
			name:   "custom template",
			store:  &mockPromptStore{prompt: "Context: %s\nQ: %s"},
			prefix: "Context: ctx\nQ: q",
		},
		{
			name:   "load error falls back",
			store:  &mockPromptStore{err: errBoom},
			prefix: "Answer the user's question",
		},
		{
			name:   "wrong placeholder count falls back",
			store:  &mockPromptStore{prompt: "only %s"},
			prefix: "Answer the user's question",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &mockGenerator{output: "ok"}
			svc := NewSynthesizerService(gen)
			svc.SetPromptStore(tt.store)

			_, err := svc.Synthesize(context.Background(), "q", "ctx")

			require.NoError(t, err)
			require.Len(t, gen.prompts, 1)
			assert.Contains(t, gen.prompts[0], tt.prefix)
		})
	}
}
