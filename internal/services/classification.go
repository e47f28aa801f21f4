package services

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/yungbote/content-intel-backend/internal/data/repos"
	types "github.com/yungbote/content-intel-backend/internal/domain"
	"github.com/yungbote/content-intel-backend/internal/modules/classification"
	"github.com/yungbote/content-intel-backend/internal/modules/contentquery"
	"github.com/yungbote/content-intel-backend/internal/platform/apierr"
	"github.com/yungbote/content-intel-backend/internal/platform/logger"
)

var tracer = otel.Tracer("github.com/yungbote/content-intel-backend/internal/services")

type ClassificationService interface {
	List(ctx context.Context, f contentquery.ClassificationFilter) (*ContentPage, error)
	Stats(ctx context.Context, isPDG *bool) (classification.Stats, error)
	// Update applies one batch patch atomically and returns the refreshed
	// rows. Unknown ids are not an error; they are simply not counted.
	Update(ctx context.Context, req classification.UpdateRequest) (*classification.Result, error)
}

type classificationService struct {
	db              *gorm.DB
	log             *logger.Logger
	inventory       repos.InventoryRepo
	classification  repos.ClassificationRepo
	cache           *ReadCache
	languages       []string
	defaultAssignor string
	now             func() time.Time
}

func NewClassificationService(
	db *gorm.DB,
	log *logger.Logger,
	inventory repos.InventoryRepo,
	classificationRepo repos.ClassificationRepo,
	cache *ReadCache,
	enabledLanguages []string,
	defaultAssignor string,
) ClassificationService {
	serviceLog := log.With("service", "ClassificationService")
	return &classificationService{
		db:              db,
		log:             serviceLog,
		inventory:       inventory,
		classification:  classificationRepo,
		cache:           cache,
		languages:       enabledLanguages,
		defaultAssignor: defaultAssignor,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

func (s *classificationService) List(ctx context.Context, f contentquery.ClassificationFilter) (*ContentPage, error) {
	q := contentquery.ComposeClassification(f, s.languages)
	params := f.Values()
	params.Set("page", fmt.Sprint(q.Page))
	params.Set("limit", fmt.Sprint(q.Limit))

	return cached(ctx, s.cache, Key(NSClassification, params), func(ctx context.Context) (*ContentPage, error) {
		var (
			items []*types.InventoryItem
			total int64
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			n, err := s.inventory.Count(gctx, nil, q.Where)
			if err != nil {
				return fmt.Errorf("count classification rows: %w", err)
			}
			total = n
			return nil
		})
		g.Go(func() error {
			rows, err := s.inventory.List(gctx, nil, q)
			if err != nil {
				return fmt.Errorf("list classification rows: %w", err)
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

func (s *classificationService) Stats(ctx context.Context, isPDG *bool) (classification.Stats, error) {
	params := url.Values{}
	if isPDG != nil {
		params.Set("is_pdg", fmt.Sprint(*isPDG))
	}
	return cached(ctx, s.cache, Key(NSClassificationStats, params), func(ctx context.Context) (classification.Stats, error) {
		total, classified, err := s.classification.Counts(ctx, nil, contentquery.ClassificationScope(isPDG, s.languages))
		if err != nil {
			return classification.Stats{}, fmt.Errorf("classification stats: %w", err)
		}
		return classification.NewStats(total, classified), nil
	})
}

func (s *classificationService) Update(ctx context.Context, req classification.UpdateRequest) (*classification.Result, error) {
	ctx, span := tracer.Start(ctx, "classification.update")
	defer span.End()

	upd, err := req.Validate(s.defaultAssignor)
	if err != nil {
		span.SetStatus(codes.Error, "invalid request")
		return nil, apierr.BadRequest("invalid_request", err.Error())
	}
	span.SetAttributes(
		attribute.Int("classification.ids", len(upd.IDs)),
		attribute.Bool("classification.category", upd.Category != nil),
		attribute.Bool("classification.cms_action", upd.CMSAction != nil),
	)

	var (
		affected int64
		rows     []*types.InventoryItem
	)
	cols := upd.Columns(s.now())
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := s.classification.UpdateColumns(ctx, tx, upd.IDs, cols)
		if err != nil {
			return fmt.Errorf("update classification: %w", err)
		}
		affected = n
		refreshed, err := s.inventory.GetByIDs(ctx, tx, upd.IDs)
		if err != nil {
			return fmt.Errorf("reload classified rows: %w", err)
		}
		rows = refreshed
		return nil
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "update failed")
		return nil, err
	}

	s.cache.Invalidate(ctx, MutationNamespaces...)
	s.log.Info("classification updated",
		"requested", len(upd.IDs),
		"updated", affected,
		"source", upd.Source,
		"assigned_by", upd.AssignedBy,
	)

	items := make([]types.InventoryItem, 0, len(rows))
	for _, r := range rows {
		if r != nil {
			items = append(items, *r)
		}
	}
	return &classification.Result{Success: true, UpdatedCount: affected, Items: items}, nil
}
