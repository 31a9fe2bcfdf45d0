// Package config loads runtime configuration for the forum CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected via -c or -config; YAML when the name
//     ends in .yaml/.yml, JSON otherwise (see parseFile).
//  3. FORUM_* environment variables (see parseEnv).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   backend base URL, e.g. http://127.0.0.1:8000/api
//	-s string   credential store: sqlite, memory or redis
//	-t int      request timeout (seconds)
//	-m string   serve client metrics at http://<addr>/metrics
//
// # File schema
//
//	{
//	  "base_url": "http://127.0.0.1:8000/api",
//	  "request_timeout": "10s",
//	  "store": "redis",
//	  "redis_addr": "localhost:6379",
//	  "redis_refresh_ttl": "168h",
//	  "log_level": "info"
//	}
package config
