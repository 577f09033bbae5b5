package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/kcc-assistant/internal/adapters/driving/presenter"
	"github.com/custodia-labs/kcc-assistant/internal/core/domain"
	"github.com/custodia-labs/kcc-assistant/internal/core/ports/driving"
)

// Handler serves the assistant's HTTP endpoints.
type Handler struct {
	router driving.QueryRouter
	status driving.StatusService
}

// AskRequest is the body of POST /api/v1/ask.
type AskRequest struct {
	Question  string   `json:"question" binding:"required"`
	Threshold float64  `json:"threshold"`
	TopK      int      `json:"top_k" binding:"gte=0"`
	Providers []string `json:"providers"`
}

// NewHandler creates a handler. status may be nil.
func NewHandler(router driving.QueryRouter, status driving.StatusService) *Handler {
	return &Handler{router: router, status: status}
}

// Ask answers a question.
func (h *Handler) Ask(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, CodeBadRequest, "invalid request payload: "+err.Error())
		return
	}

	result, err := h.router.Answer(c.Request.Context(), req.Question, domain.AskOptions{
		Threshold: req.Threshold,
		TopK:      req.TopK,
		Providers: req.Providers,
	})
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, presenter.NewResultView(result))
}

// Status reports readiness.
func (h *Handler) Status(c *gin.Context) {
	if h.status == nil {
		fail(c, http.StatusServiceUnavailable, CodeUnavailable, "status service not configured")
		return
	}
	st, err := h.status.Status(c.Request.Context())
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, presenter.NewStatusView(st))
}

// Samples lists example questions.
func (h *Handler) Samples(c *gin.Context) {
	ok(c, gin.H{"questions": domain.SampleQueries()})
}

// RebuildDocuments re-normalises the corpus.
func (h *Handler) RebuildDocuments(c *gin.Context) {
	report, err := h.router.RebuildDocuments(c.Request.Context())
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, gin.H{
		"rows_read":         report.RowsRead,
		"documents_written": report.DocumentsWritten,
		"rows_dropped":      report.RowsDropped,
	})
}

// RebuildIndex rebuilds the vector index.
func (h *Handler) RebuildIndex(c *gin.Context) {
	meta, err := h.router.RebuildIndex(c.Request.Context())
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, gin.H{
		"build_id":        meta.BuildID,
		"embedding_model": meta.EmbeddingModel,
		"dimensions":      meta.Dimensions,
		"document_count":  meta.DocumentCount,
		"built_at":        meta.BuiltAt,
	})
}

// Health reports that the server is alive.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
