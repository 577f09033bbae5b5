package httpapi

import (
	"context"

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
}

func (m *mockRouter) Answer(_ context.Context, query string, opts domain.AskOptions) (*domain.RouterResult, error) {
	m.lastQuery = query
	m.lastOpts = opts
	return m.result, m.err
}

func (m *mockRouter) RebuildDocuments(context.Context) (*domain.NormalizeReport, error) {
	return m.report, m.rebuildErr
}

func (m *mockRouter) RebuildIndex(context.Context) (*domain.IndexMeta, error) {
	return m.meta, m.rebuildErr
}

type mockStatus struct {
	status *domain.Status
	err    error
}

func (m *mockStatus) Status(context.Context) (*domain.Status, error) {
	return m.status, m.err
}
