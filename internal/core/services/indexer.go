package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/custodia-labs/kcc-assistant/internal/core/domain"
	"github.com/custodia-labs/kcc-assistant/internal/core/ports/driven"
	"github.com/custodia-labs/kcc-assistant/internal/core/ports/driving"
	"github.com/custodia-labs/kcc-assistant/internal/logger"
)

// Ensure IndexService implements the interface.
var _ driving.IndexBuilder = (*IndexService)(nil)

// DefaultEmbedBatchSize is the number of documents embedded per request.
const DefaultEmbedBatchSize = domain.DefaultEmbedBatchSize

// IndexService builds the vector index from the normalised documents.
type IndexService struct {
	docStore   driven.DocumentStore
	indexStore driven.IndexStore
	embedder   driven.EmbeddingService
	batchSize  int

	// building guards against concurrent rebuilds.
	building  sync.Mutex
	reloaders []driving.Reloader
	newID     func() string
	now       func() time.Time
}

// NewIndexService creates a new index builder.
// newID generates build identifiers; nil falls back to a timestamp.
func NewIndexService(
	docStore driven.DocumentStore,
	indexStore driven.IndexStore,
	embedder driven.EmbeddingService,
	newID func() string,
) *IndexService {
	s := &IndexService{
		docStore:   docStore,
		indexStore: indexStore,
		embedder:   embedder,
		batchSize:  DefaultEmbedBatchSize,
		newID:      newID,
		now:        time.Now,
	}
	if s.newID == nil {
		s.newID = func() string { return s.now().UTC().Format("20060102T150405.000000000") }
	}
	return s
}

// SetBatchSize overrides the embedding batch size. Non-positive values keep the default.
func (s *IndexService) SetBatchSize(n int) {
	if n > 0 {
		s.batchSize = n
	}
}

// OnRebuild registers a reloader notified after each successful rebuild.
func (s *IndexService) OnRebuild(r driving.Reloader) {
	s.reloaders = append(s.reloaders, r)
}

// RebuildIndex embeds every document and atomically replaces the index.
func (s *IndexService) RebuildIndex(ctx context.Context) (*domain.IndexMeta, error) {
	if !s.building.TryLock() {
		return nil, domain.ErrRebuildInProgress
	}
	defer s.building.Unlock()

	logger.Section("Rebuild Index")
	defer logger.Timed("index rebuild")()

	if s.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}
	if s.docStore == nil || s.indexStore == nil {
		return nil, domain.ErrNotImplemented
	}

	docs, err := s.docStore.List(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: no normalised documents, run 'kcc corpus normalize' first", domain.ErrData)
		}
		return nil, fmt.Errorf("list documents: %w", err)
	}
	logger.Debug("Embedding %d documents with %s (batch size %d)",
		len(docs), s.embedder.ModelName(), s.batchSize)

	entries := make([]driven.IndexEntry, 0, len(docs))
	for start := 0; start < len(docs); start += s.batchSize {
		end := min(start+s.batchSize, len(docs))

		texts := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			texts = append(texts, docs[i].Content)
		}

		vectors, err := s.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("%w: embed documents %d-%d: %w",
				domain.ErrEmbeddingUnavailable, start, end-1, err)
		}
		if len(vectors) != len(texts) {
			return nil, fmt.Errorf("embed documents %d-%d: got %d vectors for %d texts",
				start, end-1, len(vectors), len(texts))
		}

		for i, vec := range vectors {
			entries = append(entries, driven.IndexEntry{
				DocumentID: docs[start+i].ID,
				Embedding:  vec,
			})
		}
		logger.Debug("Embedded %d/%d", end, len(docs))
	}

	dims := s.embedder.Dimensions()
	if len(entries) > 0 {
		dims = len(entries[0].Embedding)
	}

	meta := domain.IndexMeta{
		BuildID:         s.newID(),
		EmbeddingModel:  s.embedder.ModelName(),
		Dimensions:      dims,
		DocumentCount:   len(entries),
		DocumentsDigest: domain.DocumentsDigest(docs),
		BuiltAt:         s.now().UTC(),
	}

	if err := s.indexStore.Replace(ctx, meta, entries); err != nil {
		return nil, fmt.Errorf("write index: %w", err)
	}
	logger.Info("Index %s written to %s (%d vectors, %d dims)",
		meta.BuildID, s.indexStore.Path(), meta.DocumentCount, meta.Dimensions)

	for _, r := range s.reloaders {
		if err := r.Reload(ctx); err != nil {
			logger.Warn("Reload after rebuild failed: %v", err)
		}
	}

	return &meta, nil
}
