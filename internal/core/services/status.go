package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/kcc-assistant/internal/core/domain"
	"github.com/custodia-labs/kcc-assistant/internal/core/ports/driven"
	"github.com/custodia-labs/kcc-assistant/internal/core/ports/driving"
)

// Ensure StatusService implements the interface.
var _ driving.StatusService = (*StatusService)(nil)

// StatusService reports the readiness shown in the status sidebar and `kcc status`.
type StatusService struct {
	docStore   driven.DocumentStore
	indexStore driven.IndexStore
	embedder   driven.EmbeddingService
	providers  []driven.SearchProvider
}

// NewStatusService creates a new status service. Any dependency may be nil.
func NewStatusService(
	docStore driven.DocumentStore,
	indexStore driven.IndexStore,
	embedder driven.EmbeddingService,
	providers []driven.SearchProvider,
) *StatusService {
	return &StatusService{
		docStore:   docStore,
		indexStore: indexStore,
		embedder:   embedder,
		providers:  providers,
	}
}

// Status collects readiness without loading the index vectors.
func (s *StatusService) Status(ctx context.Context) (*domain.Status, error) {
	status := &domain.Status{
		Providers: make([]string, 0, len(s.providers)),
	}
	for _, p := range s.providers {
		status.Providers = append(status.Providers, p.Name())
	}

	if s.docStore != nil {
		count, err := s.docStore.Count(ctx)
		switch {
		case err == nil:
			status.DocumentsReady = true
			status.DocumentCount = count
		case !errors.Is(err, domain.ErrNotFound):
			return nil, fmt.Errorf("count documents: %w", err)
		}
	}

	if s.embedder != nil {
		status.EmbeddingModel = s.embedder.ModelName()
	}

	if s.indexStore != nil {
		meta, err := s.indexStore.Meta(ctx)
		switch {
		case err == nil:
			status.IndexReady = true
			status.Index = meta
			status.ModelMatches = status.EmbeddingModel == "" || meta.EmbeddingModel == status.EmbeddingModel
		case !errors.Is(err, domain.ErrIndexNotFound):
			return nil, fmt.Errorf("read index metadata: %w", err)
		}
	}

	return status, nil
}
