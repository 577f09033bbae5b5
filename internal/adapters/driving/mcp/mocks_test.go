package mcp

import (
	"context"

	"github.com/custodia-labs/kcc-assistant/internal/core/domain"
)

type mockRouter struct {
	result       *domain.RouterResult
	err          error
	lastOpts     domain.AskOptions
	report       *domain.NormalizeReport
	meta         *domain.IndexMeta
	rebuildErr   error
	docRebuilds  int
	indexRebuild int
}

func (m *mockRouter) Answer(_ context.Context, _ string, opts domain.AskOptions) (*domain.RouterResult, error) {
	m.lastOpts = opts
	return m.result, m.err
}

func (m *mockRouter) RebuildDocuments(context.Context) (*domain.NormalizeReport, error) {
	m.docRebuilds++
	return m.report, m.rebuildErr
}

func (m *mockRouter) RebuildIndex(context.Context) (*domain.IndexMeta, error) {
	m.indexRebuild++
	return m.meta, m.rebuildErr
}

type mockStatus struct {
	status *domain.Status
	err    error
}

func (m *mockStatus) Status(context.Context) (*domain.Status, error) {
	return m.status, m.err
}
