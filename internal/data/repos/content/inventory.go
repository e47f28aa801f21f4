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

type InventoryRepo interface {
	List(ctx context.Context, tx *gorm.DB, q contentquery.Query) ([]*types.InventoryItem, error)
	Count(ctx context.Context, tx *gorm.DB, where sq.Sqlizer) (int64, error)
	GetByID(ctx context.Context, tx *gorm.DB, id int64) (*types.InventoryItem, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []int64) ([]*types.InventoryItem, error)
	TableCounts(ctx context.Context, tx *gorm.DB) (map[string]int64, error)
}

type inventoryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewInventoryRepo(db *gorm.DB, baseLog *logger.Logger) InventoryRepo {
	repoLog := baseLog.With("repo", "InventoryRepo")
	return &inventoryRepo{db: db, log: repoLog}
}

// List returns one page with the active mapping and scoring preloaded.
func (r *inventoryRepo) List(ctx context.Context, tx *gorm.DB, q contentquery.Query) ([]*types.InventoryItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	query, err := joined(transaction.WithContext(ctx), q.Where)
	if err != nil {
		return nil, fmt.Errorf("compose list: %w", err)
	}

	results := []*types.InventoryItem{}
	if err := applyOrder(query, q.OrderBy).
		Select("content_inventory.*").
		Preload("PersonaMapping").
		Preload("Scoring").
		Offset(q.Offset).
		Limit(q.Limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *inventoryRepo) Count(ctx context.Context, tx *gorm.DB, where sq.Sqlizer) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	query, err := joined(transaction.WithContext(ctx), where)
	if err != nil {
		return 0, fmt.Errorf("compose count: %w", err)
	}
	var n int64
	if err := query.Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// GetByID returns gorm.ErrRecordNotFound when the id is unknown.
func (r *inventoryRepo) GetByID(ctx context.Context, tx *gorm.DB, id int64) (*types.InventoryItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var item types.InventoryItem
	if err := transaction.WithContext(ctx).
		Preload("PersonaMapping").
		Preload("Scoring").
		Where("inventory_id = ?", id).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *inventoryRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []int64) ([]*types.InventoryItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	results := []*types.InventoryItem{}
	if len(ids) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Preload("PersonaMapping").
		Where("inventory_id IN ?", ids).
		Order("inventory_id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// TableCounts reports row counts for the health probe.
func (r *inventoryRepo) TableCounts(ctx context.Context, tx *gorm.DB) (map[string]int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	out := map[string]int64{}
	for name, model := range map[string]interface{}{
		"content_inventory":       &types.InventoryItem{},
		"content_persona_mapping": &types.PersonaMapping{},
		"content_scoring":         &types.Scoring{},
	} {
		var n int64
		if err := transaction.WithContext(ctx).Model(model).Count(&n).Error; err != nil {
			return nil, fmt.Errorf("count %s: %w", name, err)
		}
		out[name] = n
	}
	return out, nil
}
