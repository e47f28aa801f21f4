package app

import (
	"fmt"

	"github.com/yungbote/content-intel-backend/internal/clients/redis"
	"github.com/yungbote/content-intel-backend/internal/platform/logger"
)

type Clients struct {
	InvalidationBus redis.InvalidationBus
}

func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	bus, err := redis.NewInvalidationBus(log, cfg.Redis)
	if err != nil {
		return Clients{}, fmt.Errorf("init redis invalidation bus: %w", err)
	}
	if bus.Enabled() {
		log.Info("redis invalidation bus connected", "channel", cfg.Redis.Channel)
	}
	return Clients{InvalidationBus: bus}, nil
}

func (c Clients) Close() {
	if c.InvalidationBus != nil {
		_ = c.InvalidationBus.Close()
	}
}
