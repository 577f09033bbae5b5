package sidebar

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/kcc-assistant/internal/core/domain"
)

func TestSidebar_Loading(t *testing.T) {
	assert.Contains(t, New(nil).View(), "loading...")
}

func TestSidebar_Error(t *testing.T) {
	b := New(nil)
	b.SetStatus(nil, errors.New("boom"))

	assert.Contains(t, b.View(), "status unavailable")
}

func TestSidebar_Ready(t *testing.T) {
	b := New(nil)
	b.SetStatus(&domain.Status{
		DocumentsReady: true,
		DocumentCount:  120,
		IndexReady:     true,
		Index:          &domain.IndexMeta{DocumentCount: 120, EmbeddingModel: "all-minilm"},
		EmbeddingModel: "all-minilm",
		ModelMatches:   true,
		Providers:      []string{"serpapi", "duckduckgo"},
	}, nil)

	view := b.View()

	assert.Contains(t, view, "120 documents")
	assert.Contains(t, view, "120 vectors")
	assert.Contains(t, view, "all-minilm")
	assert.Contains(t, view, "serpapi > duckduckgo")
}

func TestSidebar_NotBuilt(t *testing.T) {
	b := New(nil)
	b.SetStatus(&domain.Status{}, nil)

	view := b.View()

	assert.Contains(t, view, "documents not built")
	assert.Contains(t, view, "index not built")
	assert.Contains(t, view, "none configured")
}

func TestSidebar_ModelMismatch(t *testing.T) {
	b := New(nil)
	b.SetStatus(&domain.Status{
		IndexReady: true,
		Index:      &domain.IndexMeta{EmbeddingModel: "nomic-embed-text"},
	}, nil)

	assert.Contains(t, b.View(), "index model mismatch")
}
