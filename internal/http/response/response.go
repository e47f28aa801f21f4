package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/content-intel-backend/internal/platform/apierr"
	"github.com/yungbote/content-intel-backend/internal/platform/ctxutil"
	"github.com/yungbote/content-intel-backend/internal/platform/logger"
)

// ErrorEnvelope is the body of every failed request.
type ErrorEnvelope struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{Error: msg, Code: code})
}

// RespondFailure maps err onto the envelope. Client errors carry their own
// message. Anything else is logged and reported as summary with a generic
// message.
func RespondFailure(c *gin.Context, log *logger.Logger, summary string, err error) {
	ae := apierr.As(err)
	if ae.Status < http.StatusInternalServerError {
		RespondError(c, ae.Status, ae.Code, ae.Err)
		return
	}
	if log != nil {
		fields := append([]interface{}{"error", err, "path", c.Request.URL.Path}, ctxutil.LogFields(c.Request.Context())...)
		log.Error(summary, fields...)
	}
	c.JSON(ae.Status, ErrorEnvelope{
		Error:   summary,
		Message: "Internal server error",
		Code:    ae.Code,
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
