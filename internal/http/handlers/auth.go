package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/content-intel-backend/internal/http/response"
	"github.com/yungbote/content-intel-backend/internal/modules/session"
	"github.com/yungbote/content-intel-backend/internal/platform/logger"
	"github.com/yungbote/content-intel-backend/internal/services"
)

type AuthHandler struct {
	log         *logger.Logger
	authService services.AuthService
}

func NewAuthHandler(log *logger.Logger, authService services.AuthService) *AuthHandler {
	return &AuthHandler{log: log.With("handler", "AuthHandler"), authService: authService}
}

// POST /api/auth/login
func (ah *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", errors.New("Username and password are required"))
		return
	}
	value, err := ah.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		response.RespondFailure(c, ah.log, "An error occurred during login", err)
		return
	}
	ah.setCookie(c, value, int(ah.authService.SessionTTL().Seconds()))
	response.RespondOK(c, gin.H{"success": true})
}

// POST /api/auth/logout
func (ah *AuthHandler) Logout(c *gin.Context) {
	ah.setCookie(c, "", -1)
	response.RespondOK(c, gin.H{"success": true})
}

func (ah *AuthHandler) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, value, maxAge, "/", "", ah.authService.CookieSecure(), true)
}
