package observability

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/yungbote/content-intel-backend/internal/platform/cache"
	"github.com/yungbote/content-intel-backend/internal/platform/envutil"
	"github.com/yungbote/content-intel-backend/internal/platform/logger"
)

const namespace = "content_intel"

// Metrics owns a private registry so tests and multiple apps in one process
// never collide on registration.
type Metrics struct {
	registry *prometheus.Registry

	apiRequests *prometheus.CounterVec
	apiLatency  *prometheus.HistogramVec
	apiInflight prometheus.Gauge

	cacheEvents   *prometheus.CounterVec
	invalidations *prometheus.CounterVec
	redisUp       prometheus.Gauge
	redisPing     prometheus.Gauge

	dbOnce sync.Once
}

var (
	initOnce sync.Once
	instance *Metrics
)

func Enabled() bool {
	return envutil.Bool("METRICS_ENABLED", false)
}

func Current() *Metrics {
	return instance
}

// Init returns the process-wide collector, or nil when METRICS_ENABLED is off.
// Every method is nil-safe.
func Init(log *logger.Logger) *Metrics {
	if !Enabled() {
		return nil
	}
	initOnce.Do(func() {
		instance = New()
		log.Info("prometheus metrics enabled")
	})
	return instance
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		apiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		apiLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		apiInflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_inflight_requests",
			Help:      "Requests currently being served.",
		}),
		cacheEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "read_cache_events_total",
			Help:      "Read cache hits, misses, stale serves and evictions by key prefix.",
		}, []string{"prefix", "event"}),
		invalidations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_invalidations_total",
			Help:      "Read cache invalidations by origin (local or remote).",
		}, []string{"origin"}),
		redisUp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "redis_up",
			Help:      "Redis connectivity (1=up, 0=down).",
		}),
		redisPing: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "redis_ping_seconds",
			Help:      "Redis ping latency in seconds.",
		}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.apiRequests,
		m.apiLatency,
		m.apiInflight,
		m.cacheEvents,
		m.invalidations,
		m.redisUp,
		m.redisPing,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveAPI(method, route string, status int, dur time.Duration) {
	if m == nil {
		return
	}
	if method == "" {
		method = "UNKNOWN"
	}
	if route == "" {
		route = "unknown"
	}
	m.apiRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.apiLatency.WithLabelValues(method, route).Observe(dur.Seconds())
}

func (m *Metrics) ApiInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) ApiInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

// CacheHooks wires read cache events into read_cache_events_total.
func (m *Metrics) CacheHooks() cache.MetricsHooks {
	if m == nil {
		return cache.MetricsHooks{}
	}
	inc := func(event string) func(string) {
		return func(prefix string) { m.cacheEvents.WithLabelValues(prefix, event).Inc() }
	}
	return cache.MetricsHooks{
		OnHit:   inc("hit"),
		OnMiss:  inc("miss"),
		OnStale: inc("stale"),
		OnEvict: inc("evict"),
	}
}

func (m *Metrics) IncInvalidation(origin string) {
	if m == nil {
		return
	}
	m.invalidations.WithLabelValues(origin).Inc()
}

// RegisterDB exports database/sql pool stats for db.
func (m *Metrics) RegisterDB(log *logger.Logger, db *gorm.DB) {
	if m == nil || db == nil {
		return
	}
	m.dbOnce.Do(func() {
		sqlDB, err := db.DB()
		if err != nil {
			log.Warn("metrics: db stats unavailable", "error", err)
			return
		}
		m.registry.MustRegister(collectors.NewDBStatsCollector(sqlDB, strings.ReplaceAll(namespace, "-", "_")))
	})
}

// StartRedisCollector pings on an interval until ctx is done.
func (m *Metrics) StartRedisCollector(ctx context.Context, log *logger.Logger, ping func(context.Context) error) {
	if m == nil || ping == nil {
		return
	}
	interval := envutil.Seconds("METRICS_SCRAPE_INTERVAL_SECONDS", 10*time.Second)
	if interval <= 0 {
		interval = 10 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.probeRedis(ctx, log, ping)
			}
		}
	}()
}

func (m *Metrics) probeRedis(ctx context.Context, log *logger.Logger, ping func(context.Context) error) {
	start := time.Now()
	if err := ping(ctx); err != nil {
		m.redisUp.Set(0)
		log.Warn("metrics: redis ping failed", "error", err)
		return
	}
	m.redisUp.Set(1)
	m.redisPing.Set(time.Since(start).Seconds())
}
