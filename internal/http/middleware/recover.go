package middleware

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/content-intel-backend/internal/http/response"
	"github.com/yungbote/content-intel-backend/internal/platform/ctxutil"
	"github.com/yungbote/content-intel-backend/internal/platform/logger"
)

// Recover turns a handler panic into a 500 carrying the JSON error envelope.
func Recover(log *logger.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		if log != nil {
			fields := append([]interface{}{"panic", recovered, "path", c.Request.URL.Path}, ctxutil.LogFields(c.Request.Context())...)
			log.Error("handler panic", fields...)
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.ErrorEnvelope{
			Error:   "Internal server error",
			Message: "Internal server error",
		})
	})
}
