package services

import (
	"context"
	"errors"
	"math"
	"sort"
	"sync"

	"github.com/custodia-labs/kcc-assistant/internal/core/domain"
	"github.com/custodia-labs/kcc-assistant/internal/core/ports/driven"
)

var errBoom = errors.New("boom")

// mockCorpus implements driven.CorpusReader.
type mockCorpus struct {
	records []domain.RawRecord
	err     error
}

func (m *mockCorpus) Read(_ context.Context) ([]domain.RawRecord, error) { return m.records, m.err }
func (m *mockCorpus) Source() string                                     { return "mock.csv" }

// mockEmbedder implements driven.EmbeddingService with fixed vectors per text.
// Unknown texts embed to fallback.
type mockEmbedder struct {
	mu       sync.Mutex
	model    string
	vectors  map[string][]float32
	fallback []float32
	err      error
	batches  [][]string
}

func newMockEmbedder(model string) *mockEmbedder {
	return &mockEmbedder{
		model:    model,
		vectors:  make(map[string][]float32),
		fallback: []float32{0, 0},
	}
}

func (m *mockEmbedder) vectorFor(text string) []float32 {
	if v, ok := m.vectors[text]; ok {
		return v
	}
	return m.fallback
}

func (m *mockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.vectorFor(text), nil
}

func (m *mockEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	m.mu.Lock()
	m.batches = append(m.batches, texts)
	m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = m.vectorFor(t)
	}
	return out, nil
}

func (m *mockEmbedder) Dimensions() int            { return len(m.fallback) }
func (m *mockEmbedder) ModelName() string          { return m.model }
func (m *mockEmbedder) Ping(_ context.Context) error { return m.err }
func (m *mockEmbedder) Close() error               { return nil }

// mockIndex implements driven.VectorIndex with exact L2 distance.
type mockIndex struct {
	meta    domain.IndexMeta
	entries []driven.IndexEntry
	closed  bool
}

func (m *mockIndex) Search(_ context.Context, query []float32, k int) ([]driven.VectorHit, error) {
	hits := make([]driven.VectorHit, 0, len(m.entries))
	for _, e := range m.entries {
		var sum float64
		for i := range query {
			d := float64(query[i] - e.Embedding[i])
			sum += d * d
		}
		hits = append(hits, driven.VectorHit{DocumentID: e.DocumentID, Distance: math.Sqrt(sum)})
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

func (m *mockIndex) Meta() domain.IndexMeta { return m.meta }
func (m *mockIndex) Len() int               { return len(m.entries) }
func (m *mockIndex) Close() error           { m.closed = true; return nil }

// mockIndexStore implements driven.IndexStore in memory.
type mockIndexStore struct {
	mu         sync.Mutex
	current    *mockIndex
	loads      int
	replaceErr error
}

func (m *mockIndexStore) Replace(_ context.Context, meta domain.IndexMeta, entries []driven.IndexEntry) error {
	if m.replaceErr != nil {
		return m.replaceErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = &mockIndex{meta: meta, entries: entries}
	return nil
}

func (m *mockIndexStore) Load(_ context.Context) (driven.VectorIndex, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return nil, domain.ErrIndexNotFound
	}
	m.loads++
	return m.current, nil
}

func (m *mockIndexStore) Meta(_ context.Context) (*domain.IndexMeta, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return nil, domain.ErrIndexNotFound
	}
	meta := m.current.meta
	return &meta, nil
}

func (m *mockIndexStore) Path() string { return "mock.kcc" }

// mockGenerator implements driven.TextGenerator.
type mockGenerator struct {
	output  string
	err     error
	prompts []string
}

func (m *mockGenerator) Generate(_ context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	m.prompts = append(m.prompts, prompt)
	return m.output, m.err
}

func (m *mockGenerator) ModelName() string          { return "gemma:2b" }
func (m *mockGenerator) Ping(_ context.Context) error { return m.err }
func (m *mockGenerator) Close() error               { return nil }

// mockProvider implements driven.SearchProvider.
type mockProvider struct {
	name  string
	resp  *domain.ProviderResponse
	err   error
	calls int
	block bool
}

func (m *mockProvider) Name() string { return m.name }

func (m *mockProvider) Search(ctx context.Context, _ string, _ int) (*domain.ProviderResponse, error) {
	m.calls++
	if m.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return m.resp, m.err
}

func itemsResponse(titles ...string) *domain.ProviderResponse {
	resp := &domain.ProviderResponse{}
	for _, title := range titles {
		resp.Items = append(resp.Items, domain.SearchResultItem{
			Title:     title,
			Snippet:   title + " snippet",
			SourceURL: "https://example.org/" + title,
		})
	}
	return resp
}

// mockCache implements driven.SearchCache.
type mockCache struct {
	entries map[string]*domain.FallbackOutcome
	getErr  error
	sets    int
}

func newMockCache() *mockCache {
	return &mockCache{entries: make(map[string]*domain.FallbackOutcome)}
}

func (m *mockCache) Get(_ context.Context, key string) (*domain.FallbackOutcome, bool, error) {
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	o, ok := m.entries[key]
	return o, ok, nil
}

func (m *mockCache) Set(_ context.Context, key string, outcome *domain.FallbackOutcome) error {
	m.sets++
	m.entries[key] = outcome
	return nil
}

// mockPromptStore implements driven.PromptStore.
type mockPromptStore struct {
	prompt string
	err    error
}

func (m *mockPromptStore) Load(_ string) (string, error) { return m.prompt, m.err }
func (m *mockPromptStore) Reload()                       {}

// mockReloader implements driving.Reloader.
type mockReloader struct {
	calls int
	err   error
}

func (m *mockReloader) Reload(_ context.Context) error {
	m.calls++
	return m.err
}
