package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/content-intel-backend/internal/http/response"
	"github.com/yungbote/content-intel-backend/internal/modules/contentquery"
	"github.com/yungbote/content-intel-backend/internal/platform/logger"
	"github.com/yungbote/content-intel-backend/internal/services"
)

type CoverageHandler struct {
	log      *logger.Logger
	coverage services.CoverageService
}

func NewCoverageHandler(log *logger.Logger, coverage services.CoverageService) *CoverageHandler {
	return &CoverageHandler{log: log.With("handler", "CoverageHandler"), coverage: coverage}
}

// GET /api/coverage
func (h *CoverageHandler) Coverage(c *gin.Context) {
	m, err := h.coverage.Coverage(c.Request.Context(), contentquery.ParseCoverageFilter(c.Request.URL.Query()))
	if err != nil {
		response.RespondFailure(c, h.log, "Failed to fetch coverage data", err)
		return
	}
	response.RespondOK(c, m)
}

// GET /api/nurture-coverage
func (h *CoverageHandler) Nurture(c *gin.Context) {
	m, err := h.coverage.Nurture(c.Request.Context(), c.Query("language"))
	if err != nil {
		response.RespondFailure(c, h.log, "Failed to fetch nurture coverage data", err)
		return
	}
	response.RespondOK(c, m)
}
