// Package config loads runtime configuration for the paydesk CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the payment backend
//	-t int      request timeout (seconds)
//	-s string   local store driver (sqlite, redis, memory)
//	-d string   sqlite database path
//	-r string   redis address
//	-l string   log level
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so it can be a string
// like "30s" or integer nanoseconds:
//
//	{
//	  "server_base_url": "http://127.0.0.1:4000",
//	  "request_timeout": "30s",
//	  "store_driver": "sqlite",
//	  "store_dsn": "paydesk.db",
//	  "redis_addr": "127.0.0.1:6379",
//	  "log_level": "info"
//	}
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
