package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/content-intel-backend/internal/services"
)

type HealthHandler struct {
	health services.HealthService
}

func NewHealthHandler(health services.HealthService) *HealthHandler {
	return &HealthHandler{health: health}
}

// GET /api/health
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	report := h.health.Check(c.Request.Context())
	status := http.StatusOK
	if !report.Healthy() {
		status = http.StatusInternalServerError
	}
	c.JSON(status, report)
}
