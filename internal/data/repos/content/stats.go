package content

import (
	"context"
	"database/sql"
	"fmt"

	"gorm.io/gorm"

	types "github.com/yungbote/content-intel-backend/internal/domain"
	"github.com/yungbote/content-intel-backend/internal/platform/logger"
)

type Totals struct {
	Total     int64
	Published int64
	AvgScore  float64
}

type SEOCounts struct {
	NoTop10    int64
	Top10Pages int64
	Top30Pages int64
}

type ScoringCounts struct {
	AvgScore  float64
	FairCount int64
	PoorCount int64
}

type StatsRepo interface {
	Totals(ctx context.Context, tx *gorm.DB) (Totals, error)
	SEO(ctx context.Context, tx *gorm.DB) (SEOCounts, error)
	Scoring(ctx context.Context, tx *gorm.DB) (ScoringCounts, error)
	// LanguageOverlap counts the published baseline rows with a node id and,
	// per language, the published rows whose node id also exists in the
	// baseline.
	LanguageOverlap(ctx context.Context, tx *gorm.DB, baseline string, languages []string) (int64, map[string]int64, error)
}

type statsRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStatsRepo(db *gorm.DB, baseLog *logger.Logger) StatsRepo {
	repoLog := baseLog.With("repo", "StatsRepo")
	return &statsRepo{db: db, log: repoLog}
}

func (r *statsRepo) Totals(ctx context.Context, tx *gorm.DB) (Totals, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var out Totals
	base := transaction.WithContext(ctx).Model(&types.InventoryItem{})
	if err := base.Session(&gorm.Session{}).Count(&out.Total).Error; err != nil {
		return Totals{}, fmt.Errorf("count inventory: %w", err)
	}
	if err := base.Session(&gorm.Session{}).
		Where("cms_status = ?", types.CMSStatusPublished).
		Count(&out.Published).Error; err != nil {
		return Totals{}, fmt.Errorf("count published: %w", err)
	}
	var avg sql.NullFloat64
	if err := base.Session(&gorm.Session{}).
		Select("AVG(seo_onpage_score)").
		Scan(&avg).Error; err != nil {
		return Totals{}, fmt.Errorf("avg seo score: %w", err)
	}
	out.AvgScore = avg.Float64
	return out, nil
}

func (r *statsRepo) SEO(ctx context.Context, tx *gorm.DB) (SEOCounts, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var row struct {
		NoTop10    int64 `gorm:"column:no_top10"`
		Top10Pages int64 `gorm:"column:top10_pages"`
		Top30Pages int64 `gorm:"column:top30_pages"`
	}
	err := transaction.WithContext(ctx).
		Model(&types.InventoryItem{}).
		Select(`
			COALESCE(SUM(CASE WHEN seo_top10_keywords IS NULL OR seo_top10_keywords = 0 THEN 1 ELSE 0 END), 0) AS no_top10,
			COALESCE(SUM(CASE WHEN seo_top10_keywords > 0 THEN 1 ELSE 0 END), 0) AS top10_pages,
			COALESCE(SUM(CASE WHEN seo_top30_keywords > 0 THEN 1 ELSE 0 END), 0) AS top30_pages`).
		Where("cms_status = ?", types.CMSStatusPublished).
		Scan(&row).Error
	if err != nil {
		return SEOCounts{}, err
	}
	return SEOCounts(row), nil
}

func (r *statsRepo) Scoring(ctx context.Context, tx *gorm.DB) (ScoringCounts, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var row struct {
		AvgScore  sql.NullFloat64
		FairCount int64
		PoorCount int64
	}
	err := transaction.WithContext(ctx).
		Model(&types.Scoring{}).
		Select(`
			AVG(score_overall_weighted) AS avg_score,
			COALESCE(SUM(CASE WHEN score_overall_weighted >= ? AND score_overall_weighted < ? THEN 1 ELSE 0 END), 0) AS fair_count,
			COALESCE(SUM(CASE WHEN score_overall_weighted >= ? AND score_overall_weighted < ? THEN 1 ELSE 0 END), 0) AS poor_count`,
			types.ScoreFairMin, types.ScoreGoodMin, types.ScorePoorMin, types.ScoreFairMin).
		Scan(&row).Error
	if err != nil {
		return ScoringCounts{}, err
	}
	return ScoringCounts{AvgScore: row.AvgScore.Float64, FairCount: row.FairCount, PoorCount: row.PoorCount}, nil
}

func (r *statsRepo) LanguageOverlap(ctx context.Context, tx *gorm.DB, baseline string, languages []string) (int64, map[string]int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	out := map[string]int64{}
	var baseCount int64
	if err := transaction.WithContext(ctx).
		Model(&types.InventoryItem{}).
		Where("language = ? AND cms_status = ? AND node_id IS NOT NULL", baseline, types.CMSStatusPublished).
		Count(&baseCount).Error; err != nil {
		return 0, nil, fmt.Errorf("count baseline: %w", err)
	}
	if len(languages) == 0 {
		return baseCount, out, nil
	}

	baseNodes := transaction.WithContext(ctx).
		Model(&types.InventoryItem{}).
		Select("node_id").
		Where("language = ? AND cms_status = ? AND node_id IS NOT NULL", baseline, types.CMSStatusPublished)

	var rows []struct {
		Language string
		Count    int64
	}
	if err := transaction.WithContext(ctx).
		Model(&types.InventoryItem{}).
		Select("language, COUNT(*) AS count").
		Where("language IN ? AND cms_status = ? AND node_id IN (?)", languages, types.CMSStatusPublished, baseNodes).
		Group("language").
		Scan(&rows).Error; err != nil {
		return 0, nil, fmt.Errorf("count language overlap: %w", err)
	}
	for _, row := range rows {
		out[row.Language] = row.Count
	}
	return baseCount, out, nil
}
