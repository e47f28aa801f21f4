package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/content-intel-backend/internal/http/response"
	"github.com/yungbote/content-intel-backend/internal/modules/classification"
	"github.com/yungbote/content-intel-backend/internal/modules/contentquery"
	"github.com/yungbote/content-intel-backend/internal/platform/logger"
	"github.com/yungbote/content-intel-backend/internal/services"
)

type ClassificationHandler struct {
	log            *logger.Logger
	classification services.ClassificationService
}

func NewClassificationHandler(log *logger.Logger, svc services.ClassificationService) *ClassificationHandler {
	return &ClassificationHandler{log: log.With("handler", "ClassificationHandler"), classification: svc}
}

// GET /api/classification
func (h *ClassificationHandler) List(c *gin.Context) {
	page, err := h.classification.List(c.Request.Context(), contentquery.ParseClassificationFilter(c.Request.URL.Query()))
	if err != nil {
		response.RespondFailure(c, h.log, "Failed to fetch classification data", err)
		return
	}
	response.RespondOK(c, page)
}

// GET /api/classification/stats
func (h *ClassificationHandler) Stats(c *gin.Context) {
	isPDG := contentquery.BoolParam(c.Request.URL.Query(), "is_pdg")
	stats, err := h.classification.Stats(c.Request.Context(), isPDG)
	if err != nil {
		response.RespondFailure(c, h.log, "Failed to fetch classification stats", err)
		return
	}
	response.RespondOK(c, stats)
}

// PATCH /api/classification/update
func (h *ClassificationHandler) Update(c *gin.Context) {
	var req classification.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	res, err := h.classification.Update(c.Request.Context(), req)
	if err != nil {
		response.RespondFailure(c, h.log, "Failed to update classification data", err)
		return
	}
	response.RespondOK(c, res)
}
