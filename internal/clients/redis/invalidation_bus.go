package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/content-intel-backend/internal/platform/logger"
)

const DefaultChannel = "content-intel:cache-invalidate"

// Invalidation tells every replica to drop cached reads under Prefixes.
type Invalidation struct {
	Origin   string    `json:"origin"`
	Prefixes []string  `json:"prefixes"`
	At       time.Time `json:"at"`
}

type InvalidationBus interface {
	Publish(ctx context.Context, prefixes []string) error
	// StartForwarder delivers invalidations published by other replicas.
	StartForwarder(ctx context.Context, onMsg func(inv Invalidation)) error
	Ping(ctx context.Context) error
	Enabled() bool
	Close() error
}

type Config struct {
	Addr     string
	Password string
	DB       int
	Channel  string
}

type invalidationBus struct {
	log     *logger.Logger
	rdb     *goredis.Client
	channel string
	origin  string
}

// NewInvalidationBus returns a no-op bus when no address is configured.
func NewInvalidationBus(log *logger.Logger, cfg Config) (InvalidationBus, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		return noopBus{}, nil
	}
	ch := strings.TrimSpace(cfg.Channel)
	if ch == "" {
		ch = DefaultChannel
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &invalidationBus{
		log:     log.With("service", "RedisInvalidationBus"),
		rdb:     rdb,
		channel: ch,
		origin:  uuid.NewString(),
	}, nil
}

func (b *invalidationBus) Enabled() bool { return true }

func (b *invalidationBus) Publish(ctx context.Context, prefixes []string) error {
	if len(prefixes) == 0 {
		return nil
	}
	raw, err := json.Marshal(Invalidation{Origin: b.origin, Prefixes: prefixes, At: time.Now().UTC()})
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, b.channel, raw).Err()
}

func (b *invalidationBus) StartForwarder(ctx context.Context, onMsg func(inv Invalidation)) error {
	if onMsg == nil {
		return fmt.Errorf("onMsg callback required")
	}

	sub := b.rdb.Subscribe(ctx, b.channel)

	// ensures subscription actually started
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("redis subscribe: %w", err)
	}

	go func() {
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				_ = sub.Close()
				return
			case m, ok := <-ch:
				if !ok || m == nil {
					_ = sub.Close()
					return
				}
				var inv Invalidation
				if err := json.Unmarshal([]byte(m.Payload), &inv); err != nil {
					b.log.Warn("bad invalidation payload", "error", err)
					continue
				}
				if inv.Origin == b.origin {
					continue
				}
				onMsg(inv)
			}
		}
	}()

	return nil
}

func (b *invalidationBus) Ping(ctx context.Context) error {
	return b.rdb.Ping(ctx).Err()
}

func (b *invalidationBus) Close() error {
	return b.rdb.Close()
}

type noopBus struct{}

func (noopBus) Publish(context.Context, []string) error { return nil }
func (noopBus) StartForwarder(context.Context, func(inv Invalidation)) error { return nil }
func (noopBus) Ping(context.Context) error { return nil }
func (noopBus) Enabled() bool { return false }
func (noopBus) Close() error { return nil }
