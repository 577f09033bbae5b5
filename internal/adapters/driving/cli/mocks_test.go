package cli

import (
	"context"
	"time"

	"github.com/custodia-labs/kcc-assistant/internal/core/domain"
)

type mockRouter struct {
	result     *domain.RouterResult
	err        error
	lastQuery  string
	lastOpts   domain.AskOptions
	report     *domain.NormalizeReport
	meta       *domain.IndexMeta
	rebuildErr error
	docCalls   int
	indexCalls int
}

func (m *mockRouter) Answer(_ context.Context, query string, opts domain.AskOptions) (*domain.RouterResult, error) {
	m.lastQuery = query
	m.lastOpts = opts
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	return &domain.RouterResult{
		Kind:         domain.KindLocalAnswer,
		Query:        query,
		BestDistance: 0.42,
		Quality:      domain.QualityHigh,
		AnswerText:   "Spray imidacloprid 17.8 SL at 0.3 ml per litre.",
		ContextText:  "Apply imidacloprid for aphid control.",
	}, nil
}

func (m *mockRouter) RebuildDocuments(context.Context) (*domain.NormalizeReport, error) {
	m.docCalls++
	if m.rebuildErr != nil {
		return nil, m.rebuildErr
	}
	if m.report != nil {
		return m.report, nil
	}
	return &domain.NormalizeReport{RowsRead: 10, DocumentsWritten: 8, RowsDropped: 2}, nil
}

func (m *mockRouter) RebuildIndex(context.Context) (*domain.IndexMeta, error) {
	m.indexCalls++
	if m.rebuildErr != nil {
		return nil, m.rebuildErr
	}
	if m.meta != nil {
		return m.meta, nil
	}
	return &domain.IndexMeta{
		BuildID:        "build-1",
		EmbeddingModel: "all-minilm",
		Dimensions:     384,
		DocumentCount:  8,
		BuiltAt:        time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}, nil
}

type mockStatus struct {
	status *domain.Status
	err    error
}

func (m *mockStatus) Status(context.Context) (*domain.Status, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.status != nil {
		return m.status, nil
	}
	return &domain.Status{
		DocumentsReady: true,
		DocumentCount:  8,
		EmbeddingModel: "all-minilm",
		Providers:      []string{"duckduckgo"},
	}, nil
}

type mockSettings struct {
	settings      domain.AppSettings
	validateErr   error
	embeddingErr  error
	threshold     float64
	topK          int
	embedProvider domain.AIProvider
	embedModel    string
	llmModel      string
	keyProvider   domain.SearchProviderName
	key           string
	order         []domain.SearchProviderName
}

func newMockSettings() *mockSettings {
	return &mockSettings{settings: domain.DefaultAppSettings()}
}

func (m *mockSettings) Get() (*domain.AppSettings, error) {
	s := m.settings
	return &s, nil
}

func (m *mockSettings) Save(s *domain.AppSettings) error {
	m.settings = *s
	return nil
}

func (m *mockSettings) SetThreshold(threshold float64) error {
	if err := domain.ValidateThreshold(threshold); err != nil {
		return err
	}
	m.threshold = threshold
	return nil
}

func (m *mockSettings) SetTopK(topK int) error {
	m.topK = topK
	return nil
}

func (m *mockSettings) SetEmbeddingProvider(provider domain.AIProvider, model, _ string) error {
	m.embedProvider = provider
	m.embedModel = model
	return nil
}

func (m *mockSettings) SetLLMModel(model string) error {
	m.llmModel = model
	return nil
}

func (m *mockSettings) SetProviderKey(provider domain.SearchProviderName, key string) error {
	m.keyProvider = provider
	m.key = key
	return nil
}

func (m *mockSettings) SetProviderOrder(order []domain.SearchProviderName) error {
	for _, p := range order {
		if !p.IsValid() {
			return domain.ErrInvalidInput
		}
	}
	m.order = order
	return nil
}

func (m *mockSettings) Validate() error                 { return m.validateErr }
func (m *mockSettings) GetDefaults() domain.AppSettings { return domain.DefaultAppSettings() }
func (m *mockSettings) ValidateEmbeddingConfig() error  { return m.embeddingErr }
func (m *mockSettings) ValidateLLMConfig() error        { return nil }
