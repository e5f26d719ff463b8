package cache

import (
	"getpetback/config"

	"github.com/umakantv/go-utils/cache"
	"github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
)

// InitializeCache sets up the search-result cache. Unlike the state
// database it is optional: when the backend is unreachable the client
// runs uncached, so this returns nil instead of terminating.
func InitializeCache(cfg config.CacheConfig) cache.Cache {
	if cfg.Type == "" || cfg.Type == "none" {
		logger.Info("Search cache disabled")
		return nil
	}

	c, err := cache.New(cache.Config{
		Type:          cfg.Type,
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
	})
	if err != nil {
		logger.Error("Failed to initialize cache, continuing uncached", zap.Error(err))
		return nil
	}
	return c
}
