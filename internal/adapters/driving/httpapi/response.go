package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/kcc-assistant/internal/core/domain"
)

// Envelope codes. The hundreds digit follows the HTTP status.
const (
	CodeOK             = 0
	CodeBadRequest     = 40000
	CodeNotReady       = 40900
	CodeBusy           = 40901
	CodeUnavailable    = 50300
	CodeInternalServer = 50000
)

// APIResponse is the envelope every endpoint returns.
type APIResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, APIResponse{Code: CodeOK, Message: "ok", Data: data})
}

func fail(c *gin.Context, httpStatus, code int, message string) {
	c.AbortWithStatusJSON(httpStatus, APIResponse{Code: code, Message: message})
}

// failErr classifies a service error into a status and envelope code.
func failErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		fail(c, http.StatusBadRequest, CodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrIndexNotFound),
		errors.Is(err, domain.ErrIndexModelMismatch),
		errors.Is(err, domain.ErrIndexStale),
		errors.Is(err, domain.ErrData):
		fail(c, http.StatusConflict, CodeNotReady, err.Error())
	case errors.Is(err, domain.ErrRebuildInProgress):
		fail(c, http.StatusConflict, CodeBusy, err.Error())
	case errors.Is(err, domain.ErrEmbeddingUnavailable),
		errors.Is(err, domain.ErrNotImplemented):
		fail(c, http.StatusServiceUnavailable, CodeUnavailable, err.Error())
	default:
		fail(c, http.StatusInternalServerError, CodeInternalServer, err.Error())
	}
}
