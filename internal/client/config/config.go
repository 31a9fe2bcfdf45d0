package config

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/forumkeeper/internal/client/credentials"
	"github.com/dmitrijs2005/forumkeeper/internal/common"
)

// Config holds runtime settings for the forum CLI.
//
// Units: RequestTimeout and RedisRefreshTTL are time.Duration values; in the
// environment they are spelled like "10s".
type Config struct {
	BaseURL    string `env:"FORUM_BASE_URL"`
	LoginRoute string `env:"FORUM_LOGIN_ROUTE"`

	RequestTimeout time.Duration `env:"FORUM_REQUEST_TIMEOUT"`

	StoreKind string `env:"FORUM_STORE"`
	StorePath string `env:"FORUM_STORE_PATH"`

	RedisAddr       string        `env:"FORUM_REDIS_ADDR"`
	RedisPassword   string        `env:"FORUM_REDIS_PASSWORD"`
	RedisDB         int           `env:"FORUM_REDIS_DB"`
	RedisPrefix     string        `env:"FORUM_REDIS_PREFIX"`
	RedisRefreshTTL time.Duration `env:"FORUM_REDIS_REFRESH_TTL"`

	LogLevel  string `env:"FORUM_LOG_LEVEL"`
	LogFormat string `env:"FORUM_LOG_FORMAT"`
	// LogFile receives the logs; stderr when empty.
	LogFile string `env:"FORUM_LOG_FILE"`

	// MetricsAddr, when set, serves the client metrics at /metrics.
	MetricsAddr string `env:"FORUM_METRICS_ADDR"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = common.DefaultBaseURL
	c.LoginRoute = common.DefaultLoginRoute
	c.RequestTimeout = 10 * time.Second
	c.StoreKind = string(credentials.KindSQLite)
	c.StorePath = "forumkeeper.db"
	c.RedisAddr = "localhost:6379"
	c.RedisPrefix = credentials.DefaultRedisPrefix
	c.LogLevel = "warn"
	c.LogFormat = "text"
}

// StoreOptions translates the store settings for credentials.Open.
func (c *Config) StoreOptions() (credentials.Options, error) {
	kind, err := credentials.ParseKind(c.StoreKind)
	if err != nil {
		return credentials.Options{}, fmt.Errorf("store: %w", err)
	}
	return credentials.Options{
		Kind:       kind,
		SQLitePath: c.StorePath,
		Redis: credentials.RedisOptions{
			Addr:       c.RedisAddr,
			Password:   c.RedisPassword,
			DB:         c.RedisDB,
			Prefix:     c.RedisPrefix,
			RefreshTTL: c.RedisRefreshTTL,
		},
	}, nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// a config file (if given), the environment and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
