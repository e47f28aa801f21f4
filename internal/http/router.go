package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/content-intel-backend/internal/http/handlers"
	httpMW "github.com/yungbote/content-intel-backend/internal/http/middleware"
	"github.com/yungbote/content-intel-backend/internal/observability"
	"github.com/yungbote/content-intel-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	ServiceName    string
	CORSOrigins    []string
	Metrics        *observability.Metrics
	AuthMiddleware *httpMW.AuthMiddleware

	AuthHandler           *httpH.AuthHandler
	ContentHandler        *httpH.ContentHandler
	FilterHandler         *httpH.FilterHandler
	CoverageHandler       *httpH.CoverageHandler
	ClassificationHandler *httpH.ClassificationHandler
	HealthHandler         *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(httpMW.Recover(cfg.Log))
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))
	if cfg.AuthMiddleware != nil {
		r.Use(cfg.AuthMiddleware.RequireSession())
	}

	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := r.Group("/api")
	{
		// Health (public)
		if cfg.HealthHandler != nil {
			api.GET("/health", cfg.HealthHandler.HealthCheck)
		}

		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/auth/login", cfg.AuthHandler.Login)
			api.POST("/auth/logout", cfg.AuthHandler.Logout)
		}

		// Library
		if cfg.ContentHandler != nil {
			api.GET("/content", cfg.ContentHandler.List)
			api.GET("/content/:id", cfg.ContentHandler.Get)
		}
		if cfg.FilterHandler != nil {
			api.GET("/filters", cfg.FilterHandler.Options)
		}

		// Discover
		if cfg.CoverageHandler != nil {
			api.GET("/coverage", cfg.CoverageHandler.Coverage)
			api.GET("/nurture-coverage", cfg.CoverageHandler.Nurture)
		}

		// Classification
		if cfg.ClassificationHandler != nil {
			api.GET("/classification", cfg.ClassificationHandler.List)
			api.GET("/classification/stats", cfg.ClassificationHandler.Stats)
			api.PATCH("/classification/update", cfg.ClassificationHandler.Update)
		}
	}

	return r
}
