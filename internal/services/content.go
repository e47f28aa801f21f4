package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/yungbote/content-intel-backend/internal/data/repos"
	types "github.com/yungbote/content-intel-backend/internal/domain"
	"github.com/yungbote/content-intel-backend/internal/modules/contentquery"
	"github.com/yungbote/content-intel-backend/internal/platform/apierr"
	"github.com/yungbote/content-intel-backend/internal/platform/logger"
)

// BaselineLanguage is the reference language for translation coverage.
const BaselineLanguage = "en"

type ContentPage struct {
	Items      []*types.InventoryItem `json:"items"`
	Total      int64                  `json:"total"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
	TotalPages int                    `json:"totalPages"`
}

type ContentStats struct {
	Total     int64   `json:"total"`
	Published int64   `json:"published"`
	AvgScore  float64 `json:"avgScore"`
}

type SEOStats struct {
	NoTop10    int64 `json:"noTop10"`
	Top10Pages int64 `json:"top10Pages"`
	Top30Pages int64 `json:"top30Pages"`
}

type ScoringStats struct {
	AvgScore  float64 `json:"avgScore"`
	FairCount int64   `json:"fairCount"`
	PoorCount int64   `json:"poorCount"`
}

type LanguageShare struct {
	Language   string `json:"language"`
	Count      int64  `json:"count"`
	Percentage int64  `json:"percentage"`
}

type ContentService interface {
	List(ctx context.Context, f contentquery.ContentFilter) (*ContentPage, error)
	Get(ctx context.Context, rawID string) (*types.InventoryItem, error)
	Stats(ctx context.Context) (ContentStats, error)
	SEOStats(ctx context.Context) (SEOStats, error)
	ScoringStats(ctx context.Context) (ScoringStats, error)
	// LanguageDistribution reports, for every enabled language, how many
	// published items share a node id with published baseline content.
	LanguageDistribution(ctx context.Context) ([]LanguageShare, error)
}

type contentService struct {
	db        *gorm.DB
	log       *logger.Logger
	inventory repos.InventoryRepo
	stats     repos.StatsRepo
	cache     *ReadCache
	languages []string
}

func NewContentService(
	db *gorm.DB,
	log *logger.Logger,
	inventory repos.InventoryRepo,
	stats repos.StatsRepo,
	cache *ReadCache,
	enabledLanguages []string,
) ContentService {
	serviceLog := log.With("service", "ContentService")
	return &contentService{
		db:        db,
		log:       serviceLog,
		inventory: inventory,
		stats:     stats,
		cache:     cache,
		languages: enabledLanguages,
	}
}

func (cs *contentService) List(ctx context.Context, f contentquery.ContentFilter) (*ContentPage, error) {
	q := contentquery.ComposeContent(f)
	params := f.Values()
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("limit", strconv.Itoa(q.Limit))

	return cached(ctx, cs.cache, Key(NSContent, params), func(ctx context.Context) (*ContentPage, error) {
		var (
			items []*types.InventoryItem
			total int64
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			n, err := cs.inventory.Count(gctx, nil, q.Where)
			if err != nil {
				return fmt.Errorf("count content: %w", err)
			}
			total = n
			return nil
		})
		g.Go(func() error {
			rows, err := cs.inventory.List(gctx, nil, q)
			if err != nil {
				return fmt.Errorf("list content: %w", err)
			}
			items = rows
			return nil
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
		if items == nil {
			items = []*types.InventoryItem{}
		}
		return &ContentPage{
			Items:      items,
			Total:      total,
			Page:       q.Page,
			Limit:      q.Limit,
			TotalPages: contentquery.TotalPages(total, q.Limit),
		}, nil
	})
}

func (cs *contentService) Get(ctx context.Context, rawID string) (*types.InventoryItem, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(rawID), 10, 64)
	if err != nil {
		return nil, apierr.BadRequest("invalid_id", "Invalid ID format")
	}
	key := Key(NSContentItem, url.Values{"id": {strconv.FormatInt(id, 10)}})
	return cached(ctx, cs.cache, key, func(ctx context.Context) (*types.InventoryItem, error) {
		item, err := cs.inventory.GetByID(ctx, nil, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("content_not_found", "Content not found")
		}
		if err != nil {
			return nil, fmt.Errorf("get content %d: %w", id, err)
		}
		return item, nil
	})
}

func (cs *contentService) Stats(ctx context.Context) (ContentStats, error) {
	return cached(ctx, cs.cache, Key(NSStats, url.Values{"action": {"stats"}}), func(ctx context.Context) (ContentStats, error) {
		t, err := cs.stats.Totals(ctx, nil)
		if err != nil {
			return ContentStats{}, fmt.Errorf("content stats: %w", err)
		}
		return ContentStats{Total: t.Total, Published: t.Published, AvgScore: t.AvgScore}, nil
	})
}

func (cs *contentService) SEOStats(ctx context.Context) (SEOStats, error) {
	return cached(ctx, cs.cache, Key(NSStats, url.Values{"action": {"seo-stats"}}), func(ctx context.Context) (SEOStats, error) {
		s, err := cs.stats.SEO(ctx, nil)
		if err != nil {
			return SEOStats{}, fmt.Errorf("seo stats: %w", err)
		}
		return SEOStats{NoTop10: s.NoTop10, Top10Pages: s.Top10Pages, Top30Pages: s.Top30Pages}, nil
	})
}

func (cs *contentService) ScoringStats(ctx context.Context) (ScoringStats, error) {
	return cached(ctx, cs.cache, Key(NSStats, url.Values{"action": {"scoring-stats"}}), func(ctx context.Context) (ScoringStats, error) {
		s, err := cs.stats.Scoring(ctx, nil)
		if err != nil {
			return ScoringStats{}, fmt.Errorf("scoring stats: %w", err)
		}
		return ScoringStats{AvgScore: s.AvgScore, FairCount: s.FairCount, PoorCount: s.PoorCount}, nil
	})
}

func (cs *contentService) LanguageDistribution(ctx context.Context) ([]LanguageShare, error) {
	key := Key(NSStats, url.Values{"action": {"language-distribution"}})
	return cached(ctx, cs.cache, key, func(ctx context.Context) ([]LanguageShare, error) {
		base, counts, err := cs.stats.LanguageOverlap(ctx, nil, BaselineLanguage, cs.languages)
		if err != nil {
			return nil, fmt.Errorf("language distribution: %w", err)
		}
		out := make([]LanguageShare, 0, len(cs.languages))
		for _, code := range cs.languages {
			n := counts[code]
			out = append(out, LanguageShare{
				Language:   strings.ToUpper(code),
				Count:      n,
				Percentage: roundPercent(n, base),
			})
		}
		return out, nil
	})
}

// roundPercent is round(part/whole*100) with halves rounded up.
func roundPercent(part, whole int64) int64 {
	if whole <= 0 {
		return 0
	}
	return (part*200 + whole) / (whole * 2)
}
