package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kcc-assistant/internal/core/domain"
)

func do(t *testing.T, router *mockRouter, status *mockStatus, method, path, body string) (*httptest.ResponseRecorder, APIResponse) {
	t.Helper()
	var engine http.Handler = NewRouter(router, nil)
	if status != nil {
		engine = NewRouter(router, status)
	}

	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	var resp APIResponse
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

func TestAsk_LocalAnswer(t *testing.T) {
	router := &mockRouter{result: &domain.RouterResult{
		Kind:         domain.KindLocalAnswer,
		Query:        "aphids",
		BestDistance: 0.4,
		Quality:      domain.QualityHigh,
		AnswerText:   "Spray neem.",
	}}

	rec, resp := do(t, router, nil, http.MethodPost, "/api/v1/ask",
		`{"question": "aphids", "threshold": 1.2, "top_k": 5, "providers": ["duckduckgo"]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, CodeOK, resp.Code)
	data := resp.Data.(map[string]any)
	assert.Equal(t, "local_answer", data["kind"])
	assert.Equal(t, "Spray neem.", data["answer"])
	assert.Equal(t, "aphids", router.lastQuery)
	assert.Equal(t, domain.AskOptions{Threshold: 1.2, TopK: 5, Providers: []string{"duckduckgo"}}, router.lastOpts)
}

func TestAsk_MissingQuestion(t *testing.T) {
	rec, resp := do(t, &mockRouter{}, nil, http.MethodPost, "/api/v1/ask", `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, CodeBadRequest, resp.Code)
}

func TestAsk_ErrorClassification(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantCode   int
	}{
		{fmt.Errorf("%w: threshold", domain.ErrInvalidInput), http.StatusBadRequest, CodeBadRequest},
		{domain.ErrIndexNotFound, http.StatusConflict, CodeNotReady},
		{domain.ErrIndexModelMismatch, http.StatusConflict, CodeNotReady},
		{domain.ErrIndexStale, http.StatusConflict, CodeNotReady},
		{domain.ErrEmbeddingUnavailable, http.StatusServiceUnavailable, CodeUnavailable},
		{fmt.Errorf("unexpected"), http.StatusInternalServerError, CodeInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec, resp := do(t, &mockRouter{err: tt.err}, nil, http.MethodPost, "/api/v1/ask", `{"question": "q"}`)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode, resp.Code)
			assert.Contains(t, resp.Message, tt.err.Error())
		})
	}
}

func TestStatus(t *testing.T) {
	status := &mockStatus{status: &domain.Status{
		DocumentsReady: true, DocumentCount: 7, Providers: []string{"duckduckgo"},
	}}

	rec, resp := do(t, &mockRouter{}, status, http.MethodGet, "/api/v1/status", "")

	require.Equal(t, http.StatusOK, rec.Code)
	data := resp.Data.(map[string]any)
	assert.Equal(t, true, data["documents_ready"])
	assert.Equal(t, float64(7), data["document_count"])
}

func TestStatus_NotConfigured(t *testing.T) {
	rec, _ := do(t, &mockRouter{}, nil, http.MethodGet, "/api/v1/status", "")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestSamples(t *testing.T) {
	rec, resp := do(t, &mockRouter{}, nil, http.MethodGet, "/api/v1/samples", "")

	require.Equal(t, http.StatusOK, rec.Code)
	questions := resp.Data.(map[string]any)["questions"].([]any)
	assert.Len(t, questions, len(domain.SampleQueries()))
}

func TestRebuildEndpoints(t *testing.T) {
	router := &mockRouter{
		report: &domain.NormalizeReport{RowsRead: 10, DocumentsWritten: 9, RowsDropped: 1},
		meta:   &domain.IndexMeta{BuildID: "b1", EmbeddingModel: "all-minilm", Dimensions: 384, DocumentCount: 9},
	}

	rec, resp := do(t, router, nil, http.MethodPost, "/api/v1/corpus/normalize", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(9), resp.Data.(map[string]any)["documents_written"])

	rec, resp = do(t, router, nil, http.MethodPost, "/api/v1/index/rebuild", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "b1", resp.Data.(map[string]any)["build_id"])
}

func TestRebuildIndex_Busy(t *testing.T) {
	rec, resp := do(t, &mockRouter{rebuildErr: domain.ErrRebuildInProgress}, nil,
		http.MethodPost, "/api/v1/index/rebuild", "")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, CodeBusy, resp.Code)
}

func TestHealth(t *testing.T) {
	rec, _ := do(t, &mockRouter{}, nil, http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, addr, NewRouter(&mockRouter{}, nil)) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
