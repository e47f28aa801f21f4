package app

import (
	"github.com/gin-gonic/gin"

	server "github.com/yungbote/content-intel-backend/internal/http"
	httpH "github.com/yungbote/content-intel-backend/internal/http/handlers"
	httpMW "github.com/yungbote/content-intel-backend/internal/http/middleware"
	"github.com/yungbote/content-intel-backend/internal/observability"
	"github.com/yungbote/content-intel-backend/internal/platform/logger"
	"github.com/yungbote/content-intel-backend/internal/services"
)

type Handlers struct {
	Auth           *httpH.AuthHandler
	Content        *httpH.ContentHandler
	Filters        *httpH.FilterHandler
	Coverage       *httpH.CoverageHandler
	Classification *httpH.ClassificationHandler
	Health         *httpH.HealthHandler
}

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

func wireHandlers(log *logger.Logger, svc Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:           httpH.NewAuthHandler(log, svc.Auth),
		Content:        httpH.NewContentHandler(log, svc.Content),
		Filters:        httpH.NewFilterHandler(log, svc.Filters),
		Coverage:       httpH.NewCoverageHandler(log, svc.Coverage),
		Classification: httpH.NewClassificationHandler(log, svc.Classification),
		Health:         httpH.NewHealthHandler(svc.Health),
	}
}

func wireMiddleware(log *logger.Logger, auth services.AuthService) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{Auth: httpMW.NewAuthMiddleware(log, auth)}
}

func wireRouter(log *logger.Logger, cfg Config, metrics *observability.Metrics, h Handlers, mw Middleware) *gin.Engine {
	serviceName := ""
	if cfg.Otel.Enabled {
		serviceName = cfg.Otel.ServiceName
	}
	return server.NewRouter(server.RouterConfig{
		Log:                   log,
		ServiceName:           serviceName,
		CORSOrigins:           cfg.CORSOrigins,
		Metrics:               metrics,
		AuthMiddleware:        mw.Auth,
		AuthHandler:           h.Auth,
		ContentHandler:        h.Content,
		FilterHandler:         h.Filters,
		CoverageHandler:       h.Coverage,
		ClassificationHandler: h.Classification,
		HealthHandler:         h.Health,
	})
}
