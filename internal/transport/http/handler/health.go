package handler

import (
	"context"
	"net/http"

	"github.com/ErlanBelekov/todo-app/internal/health"
	"github.com/gin-gonic/gin"
)

type healthChecker interface {
	Liveness(ctx context.Context) health.HealthResult
	Readiness(ctx context.Context) health.HealthResult
}

type HealthHandler struct {
	checker healthChecker
}

func NewHealthHandler(checker healthChecker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

// GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, h.checker.Liveness(c.Request.Context()))
}

// GET /readyz — 503 when any dependency is down.
func (h *HealthHandler) Readiness(c *gin.Context) {
	res := h.checker.Readiness(c.Request.Context())
	status := http.StatusOK
	if res.Status != health.StatusUp {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, res)
}
