package observability

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/yungbote/content-intel-backend/internal/platform/logger"
)

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/api/content", 200, time.Millisecond)
	m.ApiInflightInc()
	m.ApiInflightDec()
	m.IncInvalidation("local")
	m.CacheHooks()
	m.RegisterDB(logger.Nop(), nil)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if rec.Code != 503 {
		t.Fatalf("expected 503 from nil handler, got %d", rec.Code)
	}
}

func TestObserveAPIAndCacheHooks(t *testing.T) {
	m := New()
	m.ObserveAPI("GET", "/api/content", 200, 10*time.Millisecond)
	m.ObserveAPI("GET", "/api/content", 200, 20*time.Millisecond)
	m.ObserveAPI("PATCH", "", 500, time.Millisecond)

	if got := testutil.ToFloat64(m.apiRequests.WithLabelValues("GET", "/api/content", "200")); got != 2 {
		t.Fatalf("requests = %v", got)
	}
	if got := testutil.ToFloat64(m.apiRequests.WithLabelValues("PATCH", "unknown", "500")); got != 1 {
		t.Fatalf("unknown route requests = %v", got)
	}

	hooks := m.CacheHooks()
	hooks.OnHit("content")
	hooks.OnHit("content")
	hooks.OnMiss("coverage")
	if got := testutil.ToFloat64(m.cacheEvents.WithLabelValues("content", "hit")); got != 2 {
		t.Fatalf("cache hits = %v", got)
	}

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "content_intel_http_requests_total") {
		t.Fatalf("exposition missing request counter")
	}
}

func TestProbeRedis(t *testing.T) {
	m := New()
	m.probeRedis(context.Background(), logger.Nop(), func(context.Context) error { return nil })
	if got := testutil.ToFloat64(m.redisUp); got != 1 {
		t.Fatalf("redis_up = %v", got)
	}
	m.probeRedis(context.Background(), logger.Nop(), func(context.Context) error { return errors.New("down") })
	if got := testutil.ToFloat64(m.redisUp); got != 0 {
		t.Fatalf("redis_up = %v", got)
	}
}

func TestParseHeadersAndRatio(t *testing.T) {
	h := parseHeaders("a=1, b = 2 ,bad,=x")
	if len(h) != 2 || h["a"] != "1" || h["b"] != "2" {
		t.Fatalf("headers = %v", h)
	}
	if parseHeaders("") != nil {
		t.Fatalf("expected nil headers")
	}
	if clampRatio(-1) != 0 || clampRatio(2) != 1 || clampRatio(0.5) != 0.5 {
		t.Fatalf("clamp failed")
	}
}
