package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/content-intel-backend/internal/data/repos"
	"github.com/yungbote/content-intel-backend/internal/data/repos/content"
	"github.com/yungbote/content-intel-backend/internal/modules/facets"
	"github.com/yungbote/content-intel-backend/internal/platform/logger"
)

type FilterService interface {
	Options(ctx context.Context) (facets.Options, error)
}

type filterService struct {
	log       *logger.Logger
	facets    repos.FacetRepo
	cache     *ReadCache
	languages []string
}

func NewFilterService(log *logger.Logger, facetRepo repos.FacetRepo, cache *ReadCache, enabledLanguages []string) FilterService {
	serviceLog := log.With("service", "FilterService")
	return &filterService{
		log:       serviceLog,
		facets:    facetRepo,
		cache:     cache,
		languages: enabledLanguages,
	}
}

func (fs *filterService) Options(ctx context.Context) (facets.Options, error) {
	return cached(ctx, fs.cache, Key(NSFilters, nil), fs.load)
}

func (fs *filterService) load(ctx context.Context) (facets.Options, error) {
	var (
		personas, stages                        []facets.LabelCount
		contentTypes, langs, pdgStages, mixCats []string
	)
	g, gctx := errgroup.WithContext(ctx)
	labelCounts := func(column string, dst *[]facets.LabelCount) func() error {
		return func() error {
			rows, err := fs.facets.MappingLabelCounts(gctx, nil, column)
			if err != nil {
				return fmt.Errorf("facet %s: %w", column, err)
			}
			*dst = rows
			return nil
		}
	}
	distinct := func(column string, restrict []string, dst *[]string) func() error {
		return func() error {
			vals, err := fs.facets.DistinctValues(gctx, nil, column, restrict)
			if err != nil {
				return fmt.Errorf("facet %s: %w", column, err)
			}
			*dst = vals
			return nil
		}
	}
	g.Go(labelCounts(content.MappingPersona, &personas))
	g.Go(labelCounts(content.MappingStage, &stages))
	g.Go(distinct(content.InventoryContentType, nil, &contentTypes))
	g.Go(distinct(content.InventoryLanguage, fs.languages, &langs))
	g.Go(distinct(content.InventoryPDGStage, nil, &pdgStages))
	g.Go(distinct(content.InventoryContentMix, nil, &mixCats))
	if err := g.Wait(); err != nil {
		return facets.Options{}, err
	}

	return facets.Options{
		Personas:             facets.Personas(personas),
		Stages:               facets.Stages(stages),
		ContentTypes:         facets.Values(contentTypes),
		Languages:            facets.Languages(langs, fs.languages),
		PDGStages:            facets.Values(pdgStages),
		ContentMixCategories: facets.Values(mixCats),
	}, nil
}
