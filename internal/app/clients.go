package app

import (
	"fmt"
	"time"

	"github.com/yungbote/regula-backend/internal/clients/analytics"
	"github.com/yungbote/regula-backend/internal/clients/redis"
	"github.com/yungbote/regula-backend/internal/pkg/logger"
)

type Clients struct {
	Cache     *redis.Cache
	Analytics analytics.Client
}

// wireClients builds the outbound clients. Redis is optional: without
// REDIS_ADDR, or when it cannot be reached, analytics runs uncached.
func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	var cache *redis.Cache
	if cfg.RedisAddr != "" {
		c, err := redis.NewCache(log, cfg.RedisAddr)
		if err != nil {
			log.Warn("redis unavailable; analytics cache disabled", "error", err)
		} else {
			cache = c
		}
	}

	var analyticsCache analytics.Cache
	if cache != nil {
		analyticsCache = cache
	}
	ac, err := analytics.NewClient(log, analytics.Config{
		BaseURL:    cfg.Analytics.BaseURL,
		APIKey:     cfg.Analytics.APIKey,
		Timeout:    time.Duration(cfg.Analytics.TimeoutMS) * time.Millisecond,
		MaxRetries: cfg.Analytics.MaxRetries,
		CacheTTL:   time.Duration(cfg.Analytics.CacheTTLSeconds) * time.Second,
	}, analyticsCache)
	if err != nil {
		if cache != nil {
			_ = cache.Close()
		}
		return Clients{}, fmt.Errorf("init analytics client: %w", err)
	}

	return Clients{Cache: cache, Analytics: ac}, nil
}

func (c Clients) Close() {
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
}
