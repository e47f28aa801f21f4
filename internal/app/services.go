package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/content-intel-backend/internal/observability"
	"github.com/yungbote/content-intel-backend/internal/platform/cache"
	"github.com/yungbote/content-intel-backend/internal/platform/logger"
	"github.com/yungbote/content-intel-backend/internal/services"
)

type Services struct {
	ReadCache      *services.ReadCache
	Auth           services.AuthService
	Content        services.ContentService
	Filters        services.FilterService
	Coverage       services.CoverageService
	Classification services.ClassificationService
	Health         services.HealthService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos, clients Clients, metrics *observability.Metrics) (Services, error) {
	log.Info("Wiring services...")

	auth, err := services.NewAuthService(log, cfg.Auth)
	if err != nil {
		return Services{}, fmt.Errorf("init auth service: %w", err)
	}

	langs := cfg.EnabledLanguages()
	rc := services.NewReadCache(log, cache.New(cfg.Cache, metrics.CacheHooks()), clients.InvalidationBus, metrics)

	return Services{
		ReadCache:      rc,
		Auth:           auth,
		Content:        services.NewContentService(db, log, reposet.Inventory, reposet.Stats, rc, langs),
		Filters:        services.NewFilterService(log, reposet.Facets, rc, langs),
		Coverage:       services.NewCoverageService(log, reposet.Coverage, rc, langs),
		Classification: services.NewClassificationService(db, log, reposet.Inventory, reposet.Classification, rc, langs, cfg.DefaultAssignor),
		Health:         services.NewHealthService(db, log, reposet.Inventory, clients.InvalidationBus),
	}, nil
}
