package config

import (
	"fmt"
	"net/url"
	"time"
)

const (
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

// Config holds runtime settings for the paydesk CLI.
//
// Fields:
//   - ServerBaseURL: scheme://host:port of the payment backend.
//   - RequestTimeout: per-request HTTP timeout; zero keeps the transport default.
//   - StoreDriver: local key-value store backend (sqlite, redis or memory).
//   - StoreDSN: sqlite database path, ignored by other drivers.
//   - RedisAddr: host:port of the redis server, used when StoreDriver is redis.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	ServerBaseURL  string
	RequestTimeout time.Duration
	StoreDriver    string
	StoreDSN       string
	RedisAddr      string
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:4000"
	c.RequestTimeout = 30 * time.Second
	c.StoreDriver = StoreSQLite
	c.StoreDSN = "paydesk.db"
	c.RedisAddr = "127.0.0.1:6379"
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

// Validate reports the first setting that cannot work.
func (c *Config) Validate() error {
	u, err := url.Parse(c.ServerBaseURL)
	if err != nil {
		return fmt.Errorf("server base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("server base url %q: scheme must be http or https", c.ServerBaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("server base url %q: missing host", c.ServerBaseURL)
	}

	switch c.StoreDriver {
	case StoreSQLite:
		if c.StoreDSN == "" {
			return fmt.Errorf("store dsn is required for the %s driver", StoreSQLite)
		}
	case StoreRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("redis address is required for the %s driver", StoreRedis)
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown store driver %q", c.StoreDriver)
	}

	if c.RequestTimeout < 0 {
		return fmt.Errorf("request timeout must not be negative")
	}
	return nil
}
