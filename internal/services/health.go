package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/content-intel-backend/internal/clients/redis"
	"github.com/yungbote/content-intel-backend/internal/data/repos"
	"github.com/yungbote/content-intel-backend/internal/platform/logger"
)

const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"

	probeTimeout = 5 * time.Second
)

// CheckResult is the outcome of one dependency probe.
type CheckResult struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// HealthReport is the /api/health body. Status is "ok" or "error"; Checks
// carries per-dependency detail.
type HealthReport struct {
	Status    string                 `json:"status"`
	Database  string                 `json:"database"`
	Tables    map[string]int64       `json:"tables,omitempty"`
	Checks    map[string]CheckResult `json:"checks"`
	Error     string                 `json:"error,omitempty"`
	Timestamp string                 `json:"timestamp"`
}

// Healthy reports whether the store answered.
func (r HealthReport) Healthy() bool { return r.Status == "ok" }

type HealthService interface {
	Check(ctx context.Context) HealthReport
}

type healthService struct {
	db        *gorm.DB
	log       *logger.Logger
	inventory repos.InventoryRepo
	bus       redis.InvalidationBus
}

func NewHealthService(db *gorm.DB, log *logger.Logger, inventory repos.InventoryRepo, bus redis.InvalidationBus) HealthService {
	serviceLog := log.With("service", "HealthService")
	return &healthService{db: db, log: serviceLog, inventory: inventory, bus: bus}
}

func (hs *healthService) Check(ctx context.Context) HealthReport {
	report := HealthReport{
		Checks:    map[string]CheckResult{},
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
	}

	dbResult, tables, err := hs.checkDatabase(ctx)
	report.Checks["database"] = dbResult
	if err != nil {
		hs.log.Error("health: database check failed", "error", err)
		report.Status = "error"
		report.Database = "disconnected"
		report.Error = err.Error()
	} else {
		report.Status = "ok"
		report.Database = "connected"
		report.Tables = tables
	}

	if hs.bus != nil && hs.bus.Enabled() {
		report.Checks["redis"] = hs.checkRedis(ctx)
	}
	return report
}

func (hs *healthService) checkDatabase(ctx context.Context) (CheckResult, map[string]int64, error) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	sqlDB, err := hs.db.DB()
	if err != nil {
		return unhealthy(start, err), nil, err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return unhealthy(start, err), nil, err
	}
	tables, err := hs.inventory.TableCounts(ctx, nil)
	if err != nil {
		return unhealthy(start, err), nil, err
	}
	return CheckResult{
		Status:  StatusHealthy,
		Message: "Database connection successful",
		Latency: time.Since(start).String(),
	}, tables, nil
}

// A Redis failure degrades the report and never fails it.
func (hs *healthService) checkRedis(ctx context.Context) CheckResult {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	if err := hs.bus.Ping(ctx); err != nil {
		hs.log.Warn("health: redis ping failed", "error", err)
		return CheckResult{
			Status:  StatusDegraded,
			Message: fmt.Sprintf("Redis ping failed: %v", err),
			Latency: time.Since(start).String(),
		}
	}
	return CheckResult{Status: StatusHealthy, Message: "Redis connection healthy", Latency: time.Since(start).String()}
}

func unhealthy(start time.Time, err error) CheckResult {
	return CheckResult{
		Status:  StatusUnhealthy,
		Message: fmt.Sprintf("Database check failed: %v", err),
		Latency: time.Since(start).String(),
	}
}
