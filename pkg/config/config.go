// Package config loads application configuration from TOML files.
//
// Configuration is optional everywhere: the zero Config runs the server with
// an in-memory cache and store. A TOML file enables the shared backends
// (Redis cache, MongoDB view store) used in multi-instance deployments.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Cache backends.
const (
	CacheMemory = "memory"
	CacheFile   = "file"
	CacheRedis  = "redis"
	CacheNone   = "none"
)

// Store backends.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreMongo  = "mongo"
)

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend       string `toml:"backend"`
	Dir           string `toml:"dir"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`

	// KeyPrefix namespaces cache keys, for deployments where one Redis
	// instance backs several workspaces.
	KeyPrefix string `toml:"key_prefix"`
}

// StoreConfig selects and configures the saved-view store backend.
type StoreConfig struct {
	Backend       string `toml:"backend"`
	Dir           string `toml:"dir"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// Config is the full application configuration.
type Config struct {
	// Addr is the server listen address, e.g. ":8080".
	Addr string `toml:"addr"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`

	Cache CacheConfig `toml:"cache"`
	Store StoreConfig `toml:"store"`
}

// Default values applied by ValidateAndSetDefaults.
const (
	DefaultAddr     = ":8080"
	DefaultLogLevel = "info"
)

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// ValidateAndSetDefaults checks the configuration and fills in defaults.
func (c *Config) ValidateAndSetDefaults() error {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level: %q (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	if c.Cache.Backend == "" {
		c.Cache.Backend = CacheMemory
	}
	switch c.Cache.Backend {
	case CacheMemory, CacheNone:
	case CacheFile:
		// Dir may stay empty; the cache falls back to the XDG cache dir.
	case CacheRedis:
		if c.Cache.RedisAddr == "" {
			return fmt.Errorf("cache backend %q requires redis_addr", CacheRedis)
		}
	default:
		return fmt.Errorf("invalid cache backend: %q", c.Cache.Backend)
	}

	if c.Store.Backend == "" {
		c.Store.Backend = StoreMemory
	}
	switch c.Store.Backend {
	case StoreMemory, StoreFile:
	case StoreMongo:
		if c.Store.MongoURI == "" {
			return fmt.Errorf("store backend %q requires mongo_uri", StoreMongo)
		}
	default:
		return fmt.Errorf("invalid store backend: %q", c.Store.Backend)
	}

	return nil
}

// Load reads configuration from a TOML file. An empty path returns the
// defaults.
func Load(path string) (Config, error) {
	var c Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, &c); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}
	if err := c.ValidateAndSetDefaults(); err != nil {
		return Config{}, err
	}
	return c, nil
}
