package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/kcc-assistant/internal/core/domain"
	"github.com/custodia-labs/kcc-assistant/internal/core/ports/driven"
	"github.com/custodia-labs/kcc-assistant/internal/core/ports/driving"
	"github.com/custodia-labs/kcc-assistant/internal/logger"
)

// Ensure NormalizerService implements the interface.
var _ driving.DocumentNormalizer = (*NormalizerService)(nil)

// NormalizerService converts corpus rows into the persisted document collection.
type NormalizerService struct {
	corpus   driven.CorpusReader
	docStore driven.DocumentStore
}

// NewNormalizerService creates a new normaliser service.
func NewNormalizerService(corpus driven.CorpusReader, docStore driven.DocumentStore) *NormalizerService {
	return &NormalizerService{
		corpus:   corpus,
		docStore: docStore,
	}
}

// Normalize converts records into documents. Records with an empty query or
// answer are dropped; IDs keep the original row ordinal.
func (s *NormalizerService) Normalize(records []domain.RawRecord) []domain.NormalizedDocument {
	docs := make([]domain.NormalizedDocument, 0, len(records))
	for i := range records {
		doc, ok := normalizeRecord(&records[i])
		if !ok {
			continue
		}
		docs = append(docs, doc)
	}
	return docs
}

func normalizeRecord(r *domain.RawRecord) (domain.NormalizedDocument, bool) {
	query := strings.TrimSpace(r.QueryText)
	answer := strings.TrimSpace(r.Answer)
	if query == "" || answer == "" {
		return domain.NormalizedDocument{}, false
	}

	content := fmt.Sprintf("Query: %s\nAnswer: %s\nMeta: State=%s, District=%s, Crop=%s",
		query, answer,
		strings.TrimSpace(r.State),
		strings.TrimSpace(r.District),
		strings.TrimSpace(r.Crop))

	return domain.NormalizedDocument{
		ID:      strconv.Itoa(r.Row),
		Content: content,
	}, true
}

// RebuildDocuments reads the corpus and replaces the persisted collection.
func (s *NormalizerService) RebuildDocuments(ctx context.Context) (*domain.NormalizeReport, error) {
	logger.Section("Normalise Corpus")
	defer logger.Timed("normalise")()

	if s.corpus == nil || s.docStore == nil {
		return nil, domain.ErrNotImplemented
	}

	logger.Debug("Reading corpus from %s", s.corpus.Source())
	records, err := s.corpus.Read(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrData) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: read corpus: %w", domain.ErrData, err)
	}

	docs := s.Normalize(records)
	report := &domain.NormalizeReport{
		RowsRead:         len(records),
		DocumentsWritten: len(docs),
		RowsDropped:      len(records) - len(docs),
	}
	logger.Debug("Rows read: %d, dropped: %d", report.RowsRead, report.RowsDropped)

	if err := s.docStore.Replace(ctx, docs); err != nil {
		return nil, fmt.Errorf("persist documents: %w", err)
	}

	logger.Info("Persisted %d documents", report.DocumentsWritten)
	return report, nil
}
