package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/yungbote/content-intel-backend/internal/clients/redis"
	"github.com/yungbote/content-intel-backend/internal/data/db"
	"github.com/yungbote/content-intel-backend/internal/modules/languages"
	"github.com/yungbote/content-intel-backend/internal/observability"
	"github.com/yungbote/content-intel-backend/internal/platform/cache"
	"github.com/yungbote/content-intel-backend/internal/platform/envutil"
	"github.com/yungbote/content-intel-backend/internal/platform/logger"
	"github.com/yungbote/content-intel-backend/internal/services"
)

type Config struct {
	Port            string
	ShutdownTimeout time.Duration
	AutoMigrate     bool

	DB    db.Config
	Auth  services.AuthConfig
	Cache cache.Options
	Redis redis.Config
	Otel  observability.OtelConfig

	Languages       languages.Catalog
	DefaultAssignor string
	CORSOrigins     []string
}

// EnabledLanguages is the language allow-list every query is scoped to.
func (c Config) EnabledLanguages() []string {
	return c.Languages.EnabledCodes()
}

func LoadConfig(log *logger.Logger) (Config, error) {
	catalog := languages.Default()
	if path := envutil.String("LANGUAGES_FILE", ""); path != "" {
		loaded, err := languages.LoadFile(path)
		if err != nil {
			return Config{}, err
		}
		catalog = loaded
		log.Info("language catalog loaded", "path", path)
	}
	catalog = catalog.Restrict(envutil.List("ENABLED_LANGUAGES", nil))
	if len(catalog.EnabledCodes()) == 0 {
		return Config{}, fmt.Errorf("no enabled languages configured")
	}

	port := strings.TrimPrefix(envutil.String("PORT", "8080"), ":")

	cfg := Config{
		Port:            port,
		ShutdownTimeout: envutil.Seconds("SHUTDOWN_TIMEOUT_SECONDS", 15*time.Second),
		AutoMigrate:     envutil.Bool("DB_AUTO_MIGRATE", false),
		DB:              db.ConfigFromEnv(),
		Auth: services.AuthConfig{
			Username:     envutil.String("AUTH_USERNAME", ""),
			Password:     envutil.String("AUTH_PASSWORD", ""),
			PasswordHash: envutil.String("AUTH_PASSWORD_HASH", ""),
			Secret:       envutil.String("AUTH_SECRET", ""),
			FailureDelay: envutil.Millis("AUTH_FAILURE_DELAY_MS", 500*time.Millisecond),
			SessionTTL:   envutil.Seconds("SESSION_TTL_SECONDS", 0),
			CookieSecure: envutil.Bool("COOKIE_SECURE", envutil.String("APP_ENV", "development") == "production"),
		},
		Cache: cache.Options{
			TTL:                  envutil.Seconds("CACHE_TTL_SECONDS", 5*time.Minute),
			StaleWhileRevalidate: envutil.Seconds("CACHE_STALE_SECONDS", 0),
			MaxEntries:           envutil.Int("CACHE_MAX_ENTRIES", 2000),
		},
		Redis: redis.Config{
			Addr:     envutil.String("REDIS_ADDR", ""),
			Password: envutil.String("REDIS_PASSWORD", ""),
			DB:       envutil.Int("REDIS_DB", 0),
			Channel:  envutil.String("REDIS_CHANNEL", redis.DefaultChannel),
		},
		Otel:            observability.OtelConfigFromEnv(),
		Languages:       catalog,
		DefaultAssignor: envutil.String("CLASSIFICATION_DEFAULT_ASSIGNOR", ""),
		CORSOrigins:     envutil.List("CORS_ALLOWED_ORIGINS", nil),
	}

	log.Info("config loaded",
		"port", cfg.Port,
		"db_driver", cfg.DB.Driver,
		"languages", cfg.EnabledLanguages(),
		"cache_ttl", cfg.Cache.TTL.String(),
		"redis", cfg.Redis.Addr != "",
	)
	return cfg, nil
}
