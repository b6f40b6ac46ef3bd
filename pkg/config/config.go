// ABOUTME: Configuration management for the client with environment variable and YAML file support
// ABOUTME: Resolution order is explicit overrides, then environment, then file, then defaults

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"feedsync/core/domain"
	coreerrors "feedsync/core/errors"

	"gopkg.in/yaml.v3"
)

// Cache backend names
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheSQLite = "sqlite"
)

// Config holds all client configuration
type Config struct {
	// Server contains the aggregation server and account
	Server ServerConfig `yaml:"server"`

	// HTTP contains transport configuration
	HTTP HTTPConfig `yaml:"http"`

	// Cache contains checkpoint cache configuration
	Cache CacheConfig `yaml:"cache"`

	// Log contains logger configuration
	Log LogConfig `yaml:"log"`
}

// ServerConfig identifies the server and the account on it
type ServerConfig struct {
	Host     string `yaml:"host"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`

	// Protocol is fever or greader
	Protocol string `yaml:"protocol"`

	// Verbose enables debug logging
	Verbose bool `yaml:"verbose"`

	// FeverPath and ReaderPath override the endpoint paths below Host
	FeverPath  string `yaml:"fever_path"`
	ReaderPath string `yaml:"reader_path"`
}

// HTTPConfig holds transport configuration
type HTTPConfig struct {
	Timeout    time.Duration `yaml:"timeout"`
	MaxRetries int           `yaml:"max_retries"`

	// RateLimit is in requests per second; zero disables limiting
	RateLimit float64 `yaml:"rate_limit"`
	Burst     int     `yaml:"burst"`
	UserAgent string  `yaml:"user_agent"`
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (memory/redis/sqlite)
	Type string `yaml:"type"`

	// Redis contains Redis-specific configuration
	Redis RedisConfig `yaml:"redis"`

	// SQLite contains SQLite-specific configuration
	SQLite SQLiteConfig `yaml:"sqlite"`

	// Memory contains in-memory cache configuration
	Memory MemoryConfig `yaml:"memory"`
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string `yaml:"address"`

	// Password is the Redis authentication password
	Password string `yaml:"password"`

	// DB is the Redis database number
	DB int `yaml:"db"`
}

// SQLiteConfig holds SQLite-specific configuration
type SQLiteConfig struct {
	// Path is the database file
	Path string `yaml:"path"`
}

// MemoryConfig holds in-memory cache configuration
type MemoryConfig struct {
	// CleanupInterval is how often expired entries are purged, in seconds
	CleanupInterval int `yaml:"cleanup_interval"`
}

// LogConfig holds logger configuration
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `yaml:"level"`

	// JSON selects JSON output instead of text
	JSON bool `yaml:"json"`
}

// Overrides are values supplied explicitly by the caller. Empty fields are unset.
type Overrides struct {
	Host     string
	Username string
	Password string
	Protocol string
	Verbose  *bool

	// ConfigFile is a YAML file to load; FEEDSYNC_CONFIG is used when empty
	ConfigFile string
}

// Default returns the built-in defaults
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Protocol: string(domain.ProtocolFever),
		},
		HTTP: HTTPConfig{
			Timeout:    30 * time.Second,
			MaxRetries: 3,
			Burst:      1,
			UserAgent:  "feedsync/1.0",
		},
		Cache: CacheConfig{
			Type: CacheMemory,
			Redis: RedisConfig{
				Address: "localhost:6379",
			},
			SQLite: SQLiteConfig{
				Path: "feedsync.db",
			},
			Memory: MemoryConfig{
				CleanupInterval: 300,
			},
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Resolve builds the configuration once: defaults, then the YAML file, then
// the environment, then o. The result is validated.
func Resolve(o Overrides) (*Config, error) {
	cfg := Default()

	path := o.ConfigFile
	if path == "" {
		path = os.Getenv("FEEDSYNC_CONFIG")
	}
	if path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()
	cfg.applyOverrides(o)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile merges the YAML document at path into c
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &coreerrors.ConfigurationError{Field: "config", Message: fmt.Sprintf("read %s: %v", path, err)}
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return &coreerrors.ConfigurationError{Field: "config", Message: fmt.Sprintf("parse %s: %v", path, err)}
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Server.Host = getEnvOrDefault("FEEDSYNC_HOST", c.Server.Host)
	c.Server.Username = getEnvOrDefault("FEEDSYNC_USERNAME", c.Server.Username)
	c.Server.Password = getEnvOrDefault("FEEDSYNC_PASSWORD", c.Server.Password)
	c.Server.Protocol = getEnvOrDefault("FEEDSYNC_PROTOCOL", c.Server.Protocol)
	c.Server.Verbose = getEnvAsBoolOrDefault("FEEDSYNC_VERBOSE", c.Server.Verbose)

	c.HTTP.Timeout = getEnvAsDurationOrDefault("FEEDSYNC_TIMEOUT", c.HTTP.Timeout)
	c.HTTP.MaxRetries = getEnvAsIntOrDefault("FEEDSYNC_MAX_RETRIES", c.HTTP.MaxRetries)

	c.Cache.Type = getEnvOrDefault("CACHE_TYPE", c.Cache.Type)
	c.Cache.Redis.Address = getEnvOrDefault("REDIS_ADDRESS", c.Cache.Redis.Address)
	c.Cache.Redis.Password = getEnvOrDefault("REDIS_PASSWORD", c.Cache.Redis.Password)
	c.Cache.Redis.DB = getEnvAsIntOrDefault("REDIS_DB", c.Cache.Redis.DB)
	c.Cache.SQLite.Path = getEnvOrDefault("SQLITE_CACHE_PATH", c.Cache.SQLite.Path)

	c.Log.Level = getEnvOrDefault("LOG_LEVEL", c.Log.Level)
	c.Log.JSON = getEnvAsBoolOrDefault("LOG_JSON", c.Log.JSON)
}

func (c *Config) applyOverrides(o Overrides) {
	if o.Host != "" {
		c.Server.Host = o.Host
	}
	if o.Username != "" {
		c.Server.Username = o.Username
	}
	if o.Password != "" {
		c.Server.Password = o.Password
	}
	if o.Protocol != "" {
		c.Server.Protocol = o.Protocol
	}
	if o.Verbose != nil {
		c.Server.Verbose = *o.Verbose
	}
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBoolOrDefault accepts the strconv.ParseBool spellings plus yes/no
func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	switch value {
	case "":
		return defaultValue
	case "yes", "on":
		return true
	case "no", "off":
		return false
	}
	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}
	return defaultValue
}

// getEnvAsDurationOrDefault accepts Go durations ("30s") or whole seconds
func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Host) == "" {
		return &coreerrors.ConfigurationError{Field: "host", Message: "host is required (FEEDSYNC_HOST)"}
	}
	if c.Server.Username == "" {
		return &coreerrors.ConfigurationError{Field: "username", Message: "username is required (FEEDSYNC_USERNAME)"}
	}
	if c.Server.Password == "" {
		return &coreerrors.ConfigurationError{Field: "password", Message: "password is required (FEEDSYNC_PASSWORD)"}
	}
	if !domain.Protocol(c.Server.Protocol).Valid() {
		return &coreerrors.ConfigurationError{Field: "protocol", Message: "protocol must be 'fever' or 'greader'"}
	}

	if c.HTTP.Timeout <= 0 {
		return &coreerrors.ConfigurationError{Field: "http.timeout", Message: "timeout must be positive"}
	}
	if c.HTTP.MaxRetries < 1 {
		return &coreerrors.ConfigurationError{Field: "http.max_retries", Message: "at least one attempt is required"}
	}
	if c.HTTP.RateLimit < 0 {
		return &coreerrors.ConfigurationError{Field: "http.rate_limit", Message: "rate limit cannot be negative"}
	}

	switch c.Cache.Type {
	case CacheMemory:
	case CacheRedis:
		if c.Cache.Redis.Address == "" {
			return &coreerrors.ConfigurationError{Field: "cache.redis.address", Message: "redis address cannot be empty when using redis cache"}
		}
	case CacheSQLite:
		if c.Cache.SQLite.Path == "" {
			return &coreerrors.ConfigurationError{Field: "cache.sqlite.path", Message: "sqlite path cannot be empty when using sqlite cache"}
		}
	default:
		return &coreerrors.ConfigurationError{Field: "cache.type", Message: "cache type must be 'memory', 'redis' or 'sqlite'"}
	}

	return nil
}
