package content

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"

	"github.com/yungbote/content-intel-backend/internal/modules/contentquery"
	"github.com/yungbote/content-intel-backend/internal/modules/coverage"
	"github.com/yungbote/content-intel-backend/internal/platform/logger"
)

type CoverageRepo interface {
	// PairCounts counts distinct items per persona/stage of their active
	// mapping. Items without both labels are not counted.
	PairCounts(ctx context.Context, tx *gorm.DB, where sq.Sqlizer) ([]coverage.PairCount, error)
}

type coverageRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCoverageRepo(db *gorm.DB, baseLog *logger.Logger) CoverageRepo {
	repoLog := baseLog.With("repo", "CoverageRepo")
	return &coverageRepo{db: db, log: repoLog}
}

func (r *coverageRepo) PairCounts(ctx context.Context, tx *gorm.DB, where sq.Sqlizer) ([]coverage.PairCount, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	persona := contentquery.MappingAlias + ".persona_primary_label"
	stage := contentquery.MappingAlias + ".buying_stage"

	q, err := joined(transaction.WithContext(ctx), where)
	if err != nil {
		return nil, fmt.Errorf("compose coverage: %w", err)
	}
	rows := []coverage.PairCount{}
	if err := q.
		Select(fmt.Sprintf("%s AS persona, %s AS stage, COUNT(DISTINCT %s) AS count", persona, stage, contentquery.Col("inventory_id"))).
		Where(persona + " IS NOT NULL AND " + stage + " IS NOT NULL").
		Group(persona + ", " + stage).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
