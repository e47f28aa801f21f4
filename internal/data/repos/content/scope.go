package content

import (
	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"

	types "github.com/yungbote/content-intel-backend/internal/domain"
	"github.com/yungbote/content-intel-backend/internal/modules/contentquery"
)

// joined starts an inventory query with the active mapping and scoring joins
// and the given predicate applied.
func joined(db *gorm.DB, where sq.Sqlizer) (*gorm.DB, error) {
	q := db.Model(&types.InventoryItem{})
	for _, j := range contentquery.Joins {
		q = q.Joins(j)
	}
	return applyWhere(q, where)
}

func applyWhere(q *gorm.DB, where sq.Sqlizer) (*gorm.DB, error) {
	if where == nil {
		return q, nil
	}
	sql, args, err := where.ToSql()
	if err != nil {
		return nil, err
	}
	return q.Where(sql, args...), nil
}

func applyOrder(q *gorm.DB, orderBy []string) *gorm.DB {
	for _, o := range orderBy {
		q = q.Order(o)
	}
	return q
}
