package rest

import (
	"context"
	"net/http"
	"sync"
	"time"

	"smartCanteen/domain"
	"smartCanteen/pkg/logger"

	"github.com/labstack/echo/v4"
)

type PipelineService interface {
	Run(ctx context.Context) (domain.PipelineResult, error)
}

// PipelineAdminHandler exposes the tier recompute to admins. Runs are
// serialized here since the pipeline itself is not safe to run concurrently.
type PipelineAdminHandler struct {
	pipelineService PipelineService
	timeout         time.Duration

	mu      sync.Mutex
	running bool
}

func NewPipelineAdminHandler(pipelineService PipelineService) *PipelineAdminHandler {
	return &PipelineAdminHandler{
		pipelineService: pipelineService,
		timeout:         5 * time.Minute,
	}
}

// POST /api/v1/admin/pipeline/run
func (h *PipelineAdminHandler) RunPipeline(c echo.Context) error {
	h.mu.Lock()
	if h.running {
		h.mu.Unlock()
		return c.JSON(http.StatusConflict, ResponseError{Message: "pipeline run already in progress"})
	}
	h.running = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		h.running = false
		h.mu.Unlock()
	}()

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	result, err := h.pipelineService.Run(ctx)
	if err != nil {
		logger.Error("Pipeline run failed", err)
		return c.JSON(http.StatusInternalServerError, result)
	}

	return c.JSON(http.StatusOK, result)
}
