package services

import (
	"context"
	"fmt"
	"net/url"

	"github.com/yungbote/content-intel-backend/internal/clients/redis"
	"github.com/yungbote/content-intel-backend/internal/observability"
	"github.com/yungbote/content-intel-backend/internal/platform/cache"
	"github.com/yungbote/content-intel-backend/internal/platform/logger"
)

// Cache namespaces. A key is "<namespace>:<canonical query>".
const (
	NSContent             = "content"
	NSContentItem         = "content-item"
	NSStats               = "stats"
	NSClassification      = "classification"
	NSClassificationStats = "classification-stats"
	NSCoverage            = "coverage"
	NSNurture             = "nurture"
	NSFilters             = "filters"
)

// MutationNamespaces are dropped after every classification update.
var MutationNamespaces = []string{
	NSContent,
	NSContentItem,
	NSStats,
	NSClassification,
	NSClassificationStats,
	NSCoverage,
	NSNurture,
	NSFilters,
}

// ReadCache fronts the read paths. Invalidations are applied locally and
// fanned out to other replicas over the bus.
type ReadCache struct {
	log     *logger.Logger
	cache   *cache.Cache
	bus     redis.InvalidationBus
	metrics *observability.Metrics
}

// NewReadCache accepts a nil cache, which turns every read into a direct load.
func NewReadCache(log *logger.Logger, c *cache.Cache, bus redis.InvalidationBus, metrics *observability.Metrics) *ReadCache {
	return &ReadCache{
		log:     log.With("service", "ReadCache"),
		cache:   c,
		bus:     bus,
		metrics: metrics,
	}
}

// Key builds a cache key. url.Values.Encode sorts keys, so equal parameter
// sets always map to the same key.
func Key(namespace string, params url.Values) string {
	if len(params) == 0 {
		return namespace + ":"
	}
	return namespace + ":" + params.Encode()
}

func cached[T any](ctx context.Context, rc *ReadCache, key string, load func(ctx context.Context) (T, error)) (T, error) {
	if rc == nil || rc.cache == nil {
		return load(ctx)
	}
	v, err := rc.cache.Get(ctx, key, func(ctx context.Context) (interface{}, error) {
		return load(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	out, ok := v.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("cache entry %q has type %T", key, v)
	}
	return out, nil
}

// Invalidate drops the namespaces here and publishes them to other replicas.
// A failed publish is logged; the local drop has already happened.
func (rc *ReadCache) Invalidate(ctx context.Context, namespaces ...string) {
	if rc == nil || len(namespaces) == 0 {
		return
	}
	prefixes := prefixesFor(namespaces)
	if rc.cache != nil {
		removed := rc.cache.DeletePrefix(prefixes...)
		rc.log.Debug("read cache invalidated", "namespaces", namespaces, "removed", removed)
	}
	rc.metrics.IncInvalidation("local")
	if rc.bus == nil || !rc.bus.Enabled() {
		return
	}
	if err := rc.bus.Publish(ctx, prefixes); err != nil {
		rc.log.Warn("publish invalidation failed", "error", err)
	}
}

// StartForwarder applies invalidations published by other replicas until ctx
// is done.
func (rc *ReadCache) StartForwarder(ctx context.Context) error {
	if rc == nil || rc.bus == nil || !rc.bus.Enabled() {
		return nil
	}
	return rc.bus.StartForwarder(ctx, func(inv redis.Invalidation) {
		if rc.cache != nil {
			removed := rc.cache.DeletePrefix(inv.Prefixes...)
			rc.log.Debug("remote invalidation applied", "origin", inv.Origin, "removed", removed)
		}
		rc.metrics.IncInvalidation("remote")
	})
}

// Len reports the number of cached entries; zero without a cache.
func (rc *ReadCache) Len() int {
	if rc == nil || rc.cache == nil {
		return 0
	}
	return rc.cache.Len()
}

func prefixesFor(namespaces []string) []string {
	out := make([]string, 0, len(namespaces))
	for _, ns := range namespaces {
		out = append(out, ns+":")
	}
	return out
}
