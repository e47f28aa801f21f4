package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/content-intel-backend/internal/data/repos/content"
	"github.com/yungbote/content-intel-backend/internal/platform/logger"
)

type InventoryRepo = content.InventoryRepo
type StatsRepo = content.StatsRepo
type FacetRepo = content.FacetRepo
type CoverageRepo = content.CoverageRepo
type ClassificationRepo = content.ClassificationRepo

func NewInventoryRepo(db *gorm.DB, baseLog *logger.Logger) InventoryRepo {
	return content.NewInventoryRepo(db, baseLog)
}
func NewStatsRepo(db *gorm.DB, baseLog *logger.Logger) StatsRepo {
	return content.NewStatsRepo(db, baseLog)
}
func NewFacetRepo(db *gorm.DB, baseLog *logger.Logger) FacetRepo {
	return content.NewFacetRepo(db, baseLog)
}
func NewCoverageRepo(db *gorm.DB, baseLog *logger.Logger) CoverageRepo {
	return content.NewCoverageRepo(db, baseLog)
}
func NewClassificationRepo(db *gorm.DB, baseLog *logger.Logger) ClassificationRepo {
	return content.NewClassificationRepo(db, baseLog)
}
