package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/content-intel-backend/internal/http/response"
	"github.com/yungbote/content-intel-backend/internal/modules/contentquery"
	"github.com/yungbote/content-intel-backend/internal/platform/logger"
	"github.com/yungbote/content-intel-backend/internal/services"
)

type ContentHandler struct {
	log     *logger.Logger
	content services.ContentService
}

func NewContentHandler(log *logger.Logger, content services.ContentService) *ContentHandler {
	return &ContentHandler{log: log.With("handler", "ContentHandler"), content: content}
}

// GET /api/content
//
// ?action= selects one of the statistics views; without it the filtered list
// is returned.
func (h *ContentHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	var (
		payload any
		err     error
	)
	switch c.Query("action") {
	case "stats":
		payload, err = h.content.Stats(ctx)
	case "seo-stats":
		payload, err = h.content.SEOStats(ctx)
	case "scoring-stats":
		payload, err = h.content.ScoringStats(ctx)
	case "language-distribution":
		payload, err = h.content.LanguageDistribution(ctx)
	default:
		payload, err = h.content.List(ctx, contentquery.ParseContentFilter(c.Request.URL.Query()))
	}
	if err != nil {
		response.RespondFailure(c, h.log, "Failed to fetch content", err)
		return
	}
	response.RespondOK(c, payload)
}

// GET /api/content/:id
func (h *ContentHandler) Get(c *gin.Context) {
	item, err := h.content.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.RespondFailure(c, h.log, "Failed to fetch content", err)
		return
	}
	response.RespondOK(c, item)
}
