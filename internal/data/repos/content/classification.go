package content

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"

	types "github.com/yungbote/content-intel-backend/internal/domain"
	"github.com/yungbote/content-intel-backend/internal/modules/contentquery"
	"github.com/yungbote/content-intel-backend/internal/platform/logger"
)

type ClassificationRepo interface {
	// Counts returns the scope size and how many rows in it carry a category.
	Counts(ctx context.Context, tx *gorm.DB, scope sq.Sqlizer) (total int64, classified int64, err error)
	// UpdateColumns patches every listed id in one statement and returns the
	// number of rows matched.
	UpdateColumns(ctx context.Context, tx *gorm.DB, ids []int64, cols map[string]interface{}) (int64, error)
}

type classificationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewClassificationRepo(db *gorm.DB, baseLog *logger.Logger) ClassificationRepo {
	repoLog := baseLog.With("repo", "ClassificationRepo")
	return &classificationRepo{db: db, log: repoLog}
}

func (r *classificationRepo) Counts(ctx context.Context, tx *gorm.DB, scope sq.Sqlizer) (int64, int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var total, classified int64
	q, err := applyWhere(transaction.WithContext(ctx).Model(&types.InventoryItem{}), scope)
	if err != nil {
		return 0, 0, fmt.Errorf("compose classification scope: %w", err)
	}
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	if err := q.Session(&gorm.Session{}).
		Where(contentquery.Col("content_mix_category") + " IS NOT NULL").
		Count(&classified).Error; err != nil {
		return 0, 0, err
	}
	return total, classified, nil
}

func (r *classificationRepo) UpdateColumns(ctx context.Context, tx *gorm.DB, ids []int64, cols map[string]interface{}) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(ids) == 0 || len(cols) == 0 {
		return 0, nil
	}

	res := transaction.WithContext(ctx).
		Model(&types.InventoryItem{}).
		Where("inventory_id IN ?", ids).
		Updates(cols)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
