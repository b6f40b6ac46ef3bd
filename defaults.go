// ABOUTME: Default implementations for library dependencies
// ABOUTME: Builds the transport, logger and checkpoint cache from resolved configuration

package feedsync

import (
	"time"

	"feedsync/core/interfaces"
	"feedsync/infrastructure/cache/memory"
	"feedsync/infrastructure/cache/redis"
	"feedsync/infrastructure/cache/sqlite"
	httpInfra "feedsync/infrastructure/http/standard"
	"feedsync/infrastructure/logger/structured"
	"feedsync/pkg/config"
)

// DefaultTransport creates the retrying HTTP transport
func DefaultTransport(cfg config.HTTPConfig, logger interfaces.Logger) interfaces.Transport {
	return httpInfra.NewStandardHTTPClient(httpInfra.Config{
		Timeout:    cfg.Timeout,
		MaxRetries: cfg.MaxRetries,
		RateLimit:  cfg.RateLimit,
		Burst:      cfg.Burst,
		UserAgent:  cfg.UserAgent,
	}, logger)
}

// DefaultCache creates the checkpoint cache selected by cfg.Type
func DefaultCache(cfg config.CacheConfig, logger interfaces.Logger) (interfaces.Cache, error) {
	switch cfg.Type {
	case config.CacheRedis:
		cache, err := redis.NewRedisCache(cfg.Redis)
		if err != nil {
			return nil, err
		}
		return cache, nil
	case config.CacheSQLite:
		cache, err := sqlite.NewSQLiteCache(cfg.SQLite.Path, logger)
		if err != nil {
			return nil, err
		}
		return cache, nil
	case config.CacheMemory, "":
		interval := time.Duration(cfg.Memory.CleanupInterval) * time.Second
		if interval <= 0 {
			return memory.NewMemoryCache(), nil
		}
		return memory.NewMemoryCacheWithCleanup(interval), nil
	}
	return nil, NewConfigurationError("cache.type", "cache type must be 'memory', 'redis' or 'sqlite'")
}

// DefaultLogger creates a logrus-backed logger writing to stderr
func DefaultLogger(cfg config.LogConfig, verbose bool) interfaces.Logger {
	return structured.NewLogger(structured.Options{
		Level:   cfg.Level,
		Verbose: verbose,
		JSON:    cfg.JSON,
	})
}

// QuietLogger creates a logger that discards all output
func QuietLogger() interfaces.Logger {
	return &quietLogger{}
}

// quietLogger is a logger that discards all output
type quietLogger struct{}

func (q *quietLogger) Debug(msg string, fields map[string]interface{}) {}
func (q *quietLogger) Info(msg string, fields map[string]interface{})  {}
func (q *quietLogger) Warn(msg string, fields map[string]interface{})  {}
func (q *quietLogger) Error(msg string, fields map[string]interface{}) {}
