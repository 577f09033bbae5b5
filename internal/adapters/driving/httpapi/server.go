// Package httpapi exposes the assistant over a small JSON HTTP API.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/kcc-assistant/internal/core/ports/driving"
	"github.com/custodia-labs/kcc-assistant/internal/logger"
)

// shutdownTimeout bounds graceful shutdown.
const shutdownTimeout = 10 * time.Second

// NewRouter builds the gin engine. Request logs go to the logger output.
func NewRouter(router driving.QueryRouter, status driving.StatusService) *gin.Engine {
	if !logger.IsVerbose() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	h := NewHandler(router, status)
	engine.GET("/healthz", h.Health)

	v1 := engine.Group("/api/v1")
	v1.POST("/ask", h.Ask)
	v1.GET("/status", h.Status)
	v1.GET("/samples", h.Samples)
	v1.POST("/corpus/normalize", h.RebuildDocuments)
	v1.POST("/index/rebuild", h.RebuildIndex)

	return engine
}

// Serve runs the API on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
