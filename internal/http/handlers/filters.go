package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/content-intel-backend/internal/http/response"
	"github.com/yungbote/content-intel-backend/internal/platform/logger"
	"github.com/yungbote/content-intel-backend/internal/services"
)

type FilterHandler struct {
	log     *logger.Logger
	filters services.FilterService
}

func NewFilterHandler(log *logger.Logger, filters services.FilterService) *FilterHandler {
	return &FilterHandler{log: log.With("handler", "FilterHandler"), filters: filters}
}

// GET /api/filters
func (h *FilterHandler) Options(c *gin.Context) {
	opts, err := h.filters.Options(c.Request.Context())
	if err != nil {
		response.RespondFailure(c, h.log, "Failed to fetch filter options", err)
		return
	}
	response.RespondOK(c, opts)
}
