package db

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/yungbote/content-intel-backend/internal/platform/envutil"
	"github.com/yungbote/content-intel-backend/internal/platform/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	SlowThreshold   time.Duration
}

// ConfigFromEnv prefers DATABASE_URL and otherwise assembles a DSN from the
// POSTGRES_* variables. DB_DRIVER=sqlite with SQLITE_PATH runs against a
// local file for development.
func ConfigFromEnv() Config {
	cfg := Config{
		Driver:          envutil.String("DB_DRIVER", DriverPostgres),
		DSN:             envutil.String("DATABASE_URL", ""),
		MaxOpenConns:    envutil.Int("DB_MAX_OPEN_CONNS", 20),
		MaxIdleConns:    envutil.Int("DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime: envutil.Seconds("DB_CONN_MAX_LIFETIME_SECONDS", 30*time.Minute),
		SlowThreshold:   envutil.Millis("DB_SLOW_QUERY_MS", time.Second),
	}
	if cfg.Driver == DriverSQLite {
		if cfg.DSN == "" {
			cfg.DSN = envutil.String("SQLITE_PATH", "content-intel.db")
		}
		return cfg
	}
	if cfg.DSN == "" {
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(envutil.String("POSTGRES_USER", "postgres"), envutil.String("POSTGRES_PASSWORD", "")),
			Host:     envutil.String("POSTGRES_HOST", "localhost") + ":" + envutil.String("POSTGRES_PORT", "5432"),
			Path:     "/" + envutil.String("POSTGRES_NAME", "content_intel"),
			RawQuery: "sslmode=" + envutil.String("POSTGRES_SSLMODE", "disable"),
		}
		cfg.DSN = u.String()
	}
	return cfg
}

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(logg *logger.Logger, cfg Config) (*PostgresService, error) {
	serviceLog := logg.With("service", "PostgresService")

	gormLog := gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             cfg.SlowThreshold,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	var dialector gorm.Dialector
	switch cfg.Driver {
	case DriverSQLite:
		dialector = sqlite.Open(cfg.DSN)
	case DriverPostgres, "":
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormLog,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	serviceLog.Info("database connected", "driver", cfg.Driver, "max_open_conns", cfg.MaxOpenConns)
	return &PostgresService{db: db, log: serviceLog}, nil
}

func (s *PostgresService) DB() *gorm.DB { return s.db }

func (s *PostgresService) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *PostgresService) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
