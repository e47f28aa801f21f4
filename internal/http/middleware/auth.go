package middleware

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/content-intel-backend/internal/http/response"
	"github.com/yungbote/content-intel-backend/internal/modules/session"
	"github.com/yungbote/content-intel-backend/internal/platform/logger"
	"github.com/yungbote/content-intel-backend/internal/services"
)

type AuthMiddleware struct {
	log         *logger.Logger
	authService services.AuthService
}

func NewAuthMiddleware(log *logger.Logger, authService services.AuthService) *AuthMiddleware {
	middlewareLogger := log.With("Middleware", "AuthMiddleware")
	return &AuthMiddleware{log: middlewareLogger, authService: authService}
}

// RequireSession guards every path outside the public allow-list. API paths
// fail with 401; page paths are redirected to the login page.
func (am *AuthMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if session.IsPublicPath(path) {
			c.Next()
			return
		}

		if value, err := c.Cookie(session.CookieName); err == nil && value != "" && am.authService.Verify(value) {
			c.Next()
			return
		}

		am.log.Debug("session rejected", "path", path)
		if session.IsAPIPath(path) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorEnvelope{Error: "Unauthorized"})
			return
		}
		c.Redirect(http.StatusFound, "/login?from="+url.QueryEscape(path))
		c.Abort()
	}
}
