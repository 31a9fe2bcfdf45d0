package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/forumkeeper/internal/flagx"
	"github.com/dmitrijs2005/forumkeeper/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is a DTO used exclusively for decoding config files. Durations
// go through timex.Duration, so they may be strings like "10s" or integer
// nanoseconds. Absent keys leave the Config untouched.
type FileConfig struct {
	BaseURL         string         `json:"base_url" yaml:"base_url"`
	LoginRoute      string         `json:"login_route" yaml:"login_route"`
	RequestTimeout  timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	StoreKind       string         `json:"store" yaml:"store"`
	StorePath       string         `json:"store_path" yaml:"store_path"`
	RedisAddr       string         `json:"redis_addr" yaml:"redis_addr"`
	RedisPassword   string         `json:"redis_password" yaml:"redis_password"`
	RedisDB         *int           `json:"redis_db" yaml:"redis_db"`
	RedisPrefix     string         `json:"redis_prefix" yaml:"redis_prefix"`
	RedisRefreshTTL timex.Duration `json:"redis_refresh_ttl" yaml:"redis_refresh_ttl"`
	LogLevel        string         `json:"log_level" yaml:"log_level"`
	LogFormat       string         `json:"log_format" yaml:"log_format"`
	LogFile         string         `json:"log_file" yaml:"log_file"`
	MetricsAddr     string         `json:"metrics_addr" yaml:"metrics_addr"`
}

// parseFile overlays Config with values from the file named by -c/-config.
// Files ending in .yaml or .yml are decoded as YAML, anything else as JSON.
// Panics on read or decode errors.
func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		panic(err)
	}

	fc.apply(cfg)
}

func (fc *FileConfig) apply(cfg *Config) {
	setString(&cfg.BaseURL, fc.BaseURL)
	setString(&cfg.LoginRoute, fc.LoginRoute)
	setString(&cfg.StoreKind, fc.StoreKind)
	setString(&cfg.StorePath, fc.StorePath)
	setString(&cfg.RedisAddr, fc.RedisAddr)
	setString(&cfg.RedisPassword, fc.RedisPassword)
	setString(&cfg.RedisPrefix, fc.RedisPrefix)
	setString(&cfg.LogLevel, fc.LogLevel)
	setString(&cfg.LogFormat, fc.LogFormat)
	setString(&cfg.LogFile, fc.LogFile)
	setString(&cfg.MetricsAddr, fc.MetricsAddr)

	if fc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.RedisRefreshTTL.Duration != 0 {
		cfg.RedisRefreshTTL = fc.RedisRefreshTTL.Duration
	}
	if fc.RedisDB != nil {
		cfg.RedisDB = *fc.RedisDB
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
