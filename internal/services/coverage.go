package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/content-intel-backend/internal/data/repos"
	"github.com/yungbote/content-intel-backend/internal/modules/contentquery"
	"github.com/yungbote/content-intel-backend/internal/modules/coverage"
	"github.com/yungbote/content-intel-backend/internal/platform/logger"
)

type CoverageService interface {
	// Coverage builds the persona x stage heatmap. Axes come from the
	// unfiltered population; cell counts from the filtered one.
	Coverage(ctx context.Context, f contentquery.CoverageFilter) (coverage.Matrix, error)
	// Nurture counts nurture content only. Personas still come from the
	// whole published population; the stage axis is pinned to the canonical
	// stages.
	Nurture(ctx context.Context, language string) (coverage.Matrix, error)
}

type coverageService struct {
	log       *logger.Logger
	coverage  repos.CoverageRepo
	cache     *ReadCache
	languages []string
}

func NewCoverageService(log *logger.Logger, coverageRepo repos.CoverageRepo, cache *ReadCache, enabledLanguages []string) CoverageService {
	serviceLog := log.With("service", "CoverageService")
	return &coverageService{
		log:       serviceLog,
		coverage:  coverageRepo,
		cache:     cache,
		languages: enabledLanguages,
	}
}

func (cs *coverageService) Coverage(ctx context.Context, f contentquery.CoverageFilter) (coverage.Matrix, error) {
	return cached(ctx, cs.cache, Key(NSCoverage, f.Values()), func(ctx context.Context) (coverage.Matrix, error) {
		axis, counts, err := cs.pairs(ctx,
			contentquery.CoverageScope(cs.languages),
			contentquery.ComposeCoverage(f, cs.languages))
		if err != nil {
			return coverage.Matrix{}, err
		}
		return coverage.Build(axis, counts), nil
	})
}

func (cs *coverageService) Nurture(ctx context.Context, language string) (coverage.Matrix, error) {
	language = strings.TrimSpace(language)
	params := url.Values{}
	if language != "" {
		params.Set("language", language)
	}
	return cached(ctx, cs.cache, Key(NSNurture, params), func(ctx context.Context) (coverage.Matrix, error) {
		axis, counts, err := cs.pairs(ctx,
			contentquery.NurtureAxisScope(cs.languages),
			contentquery.ComposeNurture(language, cs.languages))
		if err != nil {
			return coverage.Matrix{}, err
		}
		return coverage.BuildFixedStages(axis, counts), nil
	})
}

func (cs *coverageService) pairs(ctx context.Context, axisWhere, countWhere sq.Sqlizer) ([]coverage.PairCount, []coverage.PairCount, error) {
	var axis, counts []coverage.PairCount
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := cs.coverage.PairCounts(gctx, nil, axisWhere)
		if err != nil {
			return fmt.Errorf("coverage axes: %w", err)
		}
		axis = rows
		return nil
	})
	g.Go(func() error {
		rows, err := cs.coverage.PairCounts(gctx, nil, countWhere)
		if err != nil {
			return fmt.Errorf("coverage counts: %w", err)
		}
		counts = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return axis, counts, nil
}
