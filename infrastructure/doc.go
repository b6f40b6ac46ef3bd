// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package.
//
// The infrastructure package is organized by technical concern:
//
// - cache/memory: In-process cache backed by go-cache
// - cache/redis: Redis-based cache implementation
// - cache/sqlite: File-backed cache for checkpoints that survive restarts
// - http/standard: net/http transport with rate limiting and retries
// - logger/structured: logrus backed structured logger
//
// # Cache Implementations
//
//	cache := memory.NewMemoryCache()
//	err := cache.Set(ctx, "checkpoint:inbox", data, 0)
//	value, err := cache.Get(ctx, "checkpoint:inbox")
//
//	cache, err := redis.NewRedisCache(config.RedisConfig{
//	    Address: "localhost:6379",
//	})
//
// # Transport
//
//	transport := standard.NewStandardHTTPClient(standard.DefaultConfig(), logger)
//	body, err := transport.Execute(ctx, &interfaces.Request{
//	    Method: http.MethodGet,
//	    URL:    "https://rss.example.com/api/greader.php/reader/api/0/token",
//	})
//
// # Logger
//
//	logger := structured.NewLogger(structured.Options{Level: "debug"})
//	logger.Info("Pull finished", map[string]interface{}{
//	    "checkpoint": "inbox",
//	    "items":      12,
//	})
//
package infrastructure
