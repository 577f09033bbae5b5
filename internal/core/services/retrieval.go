package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/custodia-labs/kcc-assistant/internal/core/domain"
	"github.com/custodia-labs/kcc-assistant/internal/core/ports/driven"
	"github.com/custodia-labs/kcc-assistant/internal/core/ports/driving"
	"github.com/custodia-labs/kcc-assistant/internal/logger"
)

// Ensure RetrievalService implements the interfaces.
var (
	_ driving.RetrievalEngine = (*RetrievalService)(nil)
	_ driving.Reloader        = (*RetrievalService)(nil)
)

// passageSeparator joins passages into the context handed to the generator.
const passageSeparator = "\n\n"

// KnowledgeBase is a loaded index build together with the document
// contents it refers to. It is immutable once loaded and shared by all
// concurrent queries.
type KnowledgeBase struct {
	index    driven.VectorIndex
	contents map[string]string
}

// Meta describes the loaded build.
func (kb *KnowledgeBase) Meta() domain.IndexMeta {
	return kb.index.Meta()
}

// LoadKnowledgeBase opens the current index build and its documents.
func LoadKnowledgeBase(
	ctx context.Context,
	indexStore driven.IndexStore,
	docStore driven.DocumentStore,
) (*KnowledgeBase, error) {
	index, err := indexStore.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrIndexNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load index: %w", err)
	}

	docs, err := docStore.List(ctx)
	if err != nil {
		index.Close()
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: index exists but documents are missing, run 'kcc corpus normalize'", domain.ErrData)
		}
		return nil, fmt.Errorf("load documents: %w", err)
	}

	meta := index.Meta()
	if meta.DocumentsDigest != "" && meta.DocumentsDigest != domain.DocumentsDigest(docs) {
		index.Close()
		return nil, fmt.Errorf("%w: documents were normalised again after index %s was built",
			domain.ErrIndexStale, meta.BuildID)
	}

	contents := make(map[string]string, len(docs))
	for _, d := range docs {
		contents[d.ID] = d.Content
	}

	return &KnowledgeBase{index: index, contents: contents}, nil
}

// RetrievalService finds local passages and applies the threshold policy.
type RetrievalService struct {
	indexStore driven.IndexStore
	docStore   driven.DocumentStore
	embedder   driven.EmbeddingService

	// filterPassages joins only passages within the threshold.
	filterPassages bool

	kb     atomic.Pointer[KnowledgeBase]
	loadMu sync.Mutex
}

// NewRetrievalService creates a new retrieval engine.
func NewRetrievalService(
	indexStore driven.IndexStore,
	docStore driven.DocumentStore,
	embedder driven.EmbeddingService,
) *RetrievalService {
	return &RetrievalService{
		indexStore: indexStore,
		docStore:   docStore,
		embedder:   embedder,
	}
}

// SetFilterPassages switches between joining every top-k passage (false)
// and only those within the threshold (true).
func (s *RetrievalService) SetFilterPassages(filter bool) {
	s.filterPassages = filter
}

// Reload drops the loaded knowledge base; the next query loads the current build.
func (s *RetrievalService) Reload(_ context.Context) error {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	// In-flight queries keep their reference to the old build until they finish.
	s.kb.Store(nil)
	logger.Debug("Knowledge base released for reload")
	return nil
}

// knowledgeBase returns the loaded knowledge base, loading it on first use.
func (s *RetrievalService) knowledgeBase(ctx context.Context) (*KnowledgeBase, error) {
	if kb := s.kb.Load(); kb != nil {
		return kb, nil
	}

	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	if kb := s.kb.Load(); kb != nil {
		return kb, nil
	}

	kb, err := LoadKnowledgeBase(ctx, s.indexStore, s.docStore)
	if err != nil {
		return nil, err
	}
	logger.Debug("Loaded index %s (%d vectors, model %s)",
		kb.Meta().BuildID, kb.index.Len(), kb.Meta().EmbeddingModel)

	s.kb.Store(kb)
	return kb, nil
}

// Retrieve embeds the query, fetches the nearest passages and gates them
// on the single best distance.
func (s *RetrievalService) Retrieve(
	ctx context.Context, query string, opts domain.RetrievalOptions,
) (*domain.RetrievalOutcome, error) {
	logger.Section("Local Retrieval")
	defer logger.Timed("retrieval")()

	if s.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}
	if s.indexStore == nil || s.docStore == nil {
		return nil, domain.ErrIndexNotFound
	}

	topK := opts.TopK
	if topK <= 0 {
		topK = domain.DefaultTopK
	}

	kb, err := s.knowledgeBase(ctx)
	if err != nil {
		return nil, err
	}

	meta := kb.Meta()
	if meta.EmbeddingModel != s.embedder.ModelName() {
		return nil, fmt.Errorf("%w: index built with %q, configured model is %q; rebuild the index",
			domain.ErrIndexModelMismatch, meta.EmbeddingModel, s.embedder.ModelName())
	}

	vec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: embed query: %w", domain.ErrEmbeddingUnavailable, err)
	}

	hits, err := kb.index.Search(ctx, vec, topK)
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}
	logger.Debug("Index returned %d candidates (k=%d)", len(hits), topK)

	if len(hits) == 0 {
		return domain.Rejected(0, nil), nil
	}

	passages := make([]domain.ScoredPassage, 0, len(hits))
	for _, hit := range hits {
		content, ok := kb.contents[hit.DocumentID]
		if !ok {
			logger.Warn("Index refers to unknown document %s", hit.DocumentID)
			continue
		}
		passages = append(passages, domain.ScoredPassage{
			DocumentID: hit.DocumentID,
			Content:    content,
			Distance:   hit.Distance,
		})
	}

	best := hits[0].Distance
	logger.Debug("Best distance %.4f, threshold %.2f", best, opts.Threshold)

	if best > opts.Threshold || len(passages) == 0 {
		logger.Info("Rejected: best distance %.4f above threshold %.2f", best, opts.Threshold)
		return domain.Rejected(best, passages), nil
	}

	parts := make([]string, 0, len(passages))
	for _, p := range passages {
		if s.filterPassages && p.Distance > opts.Threshold {
			continue
		}
		parts = append(parts, p.Content)
	}

	logger.Info("Accepted %d passages (best distance %.4f)", len(parts), best)
	return &domain.RetrievalOutcome{
		Accepted:     true,
		ContextText:  strings.Join(parts, passageSeparator),
		BestDistance: best,
		Passages:     passages,
	}, nil
}
