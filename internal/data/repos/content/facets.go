package content

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	types "github.com/yungbote/content-intel-backend/internal/domain"
	"github.com/yungbote/content-intel-backend/internal/modules/facets"
	"github.com/yungbote/content-intel-backend/internal/platform/logger"
)

const (
	MappingPersona = "persona_primary_label"
	MappingStage   = "buying_stage"

	InventoryContentType = "content_type_machine"
	InventoryLanguage    = "language"
	InventoryPDGStage    = "ann_stage"
	InventoryContentMix  = "content_mix_category"
)

var (
	mappingFacetColumns   = map[string]bool{MappingPersona: true, MappingStage: true}
	inventoryFacetColumns = map[string]bool{
		InventoryContentType: true,
		InventoryLanguage:    true,
		InventoryPDGStage:    true,
		InventoryContentMix:  true,
	}
)

type FacetRepo interface {
	// MappingLabelCounts groups every mapping row by a label column.
	MappingLabelCounts(ctx context.Context, tx *gorm.DB, column string) ([]facets.LabelCount, error)
	// DistinctValues lists the non-null values of an inventory column. When
	// restrict is non-empty only those values are considered.
	DistinctValues(ctx context.Context, tx *gorm.DB, column string, restrict []string) ([]string, error)
}

type facetRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFacetRepo(db *gorm.DB, baseLog *logger.Logger) FacetRepo {
	repoLog := baseLog.With("repo", "FacetRepo")
	return &facetRepo{db: db, log: repoLog}
}

func (r *facetRepo) MappingLabelCounts(ctx context.Context, tx *gorm.DB, column string) ([]facets.LabelCount, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if !mappingFacetColumns[column] {
		return nil, fmt.Errorf("unknown mapping facet %q", column)
	}

	rows := []facets.LabelCount{}
	if err := transaction.WithContext(ctx).
		Model(&types.PersonaMapping{}).
		Select(column + " AS label, COUNT(*) AS count").
		Where(column + " IS NOT NULL").
		Group(column).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *facetRepo) DistinctValues(ctx context.Context, tx *gorm.DB, column string, restrict []string) ([]string, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if !inventoryFacetColumns[column] {
		return nil, fmt.Errorf("unknown inventory facet %q", column)
	}

	q := transaction.WithContext(ctx).
		Model(&types.InventoryItem{}).
		Distinct(column).
		Where(column + " IS NOT NULL")
	if len(restrict) > 0 {
		q = q.Where(column+" IN ?", restrict)
	}
	out := []string{}
	if err := q.Order(column + " ASC").Pluck(column, &out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
