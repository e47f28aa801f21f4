package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/content-intel-backend/internal/data/repos"
	"github.com/yungbote/content-intel-backend/internal/platform/logger"
)

type Repos struct {
	Inventory      repos.InventoryRepo
	Stats          repos.StatsRepo
	Facets         repos.FacetRepo
	Coverage       repos.CoverageRepo
	Classification repos.ClassificationRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Inventory:      repos.NewInventoryRepo(db, log),
		Stats:          repos.NewStatsRepo(db, log),
		Facets:         repos.NewFacetRepo(db, log),
		Coverage:       repos.NewCoverageRepo(db, log),
		Classification: repos.NewClassificationRepo(db, log),
	}
}
