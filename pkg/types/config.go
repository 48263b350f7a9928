// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make
// network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "numdict/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// ScanConfig holds settings for the extraction stage.
type ScanConfig struct {
	// Format forces the input format: text, html, markdown, or auto
	// (detect from the file extension).
	Format string `json:"format" yaml:"format" mapstructure:"format"`

	// SkipAllowance is the number of non-unit words tolerated between a
	// literal and its unit word (default 1).
	SkipAllowance int `json:"skip_allowance" yaml:"skip_allowance" mapstructure:"skip_allowance"`

	// Unique keeps only the first occurrence of each distinct match.
	Unique bool `json:"unique" yaml:"unique" mapstructure:"unique"`

	// VocabularyFile is an optional YAML file extending the unit lexicon.
	VocabularyFile string `json:"vocabulary_file,omitempty" yaml:"vocabulary_file,omitempty" mapstructure:"vocabulary_file"`
}

// LookupConfig holds settings for the comparison service client.
type LookupConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// BaseURL is the comparison service query endpoint.
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// AppID authenticates requests. Usually loaded from .secrets/.
	AppID string `json:"app_id,omitempty" yaml:"app_id,omitempty" mapstructure:"app_id"`

	// PodID selects the result pod to read (default "Comparison").
	PodID string `json:"pod_id" yaml:"pod_id" mapstructure:"pod_id"`

	// Scanner restricts the service's interpretation (default "Unit").
	Scanner string `json:"scanner" yaml:"scanner" mapstructure:"scanner"`

	// MaxRetries bounds retries on 429/503 responses (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`

	// Concurrency bounds in-flight lookups (default 4).
	Concurrency int `json:"concurrency" yaml:"concurrency" mapstructure:"concurrency"`
}

// CacheBackend identifies the comparison cache implementation.
type CacheBackend string

const (
	CacheSQLite CacheBackend = "sqlite"
	CacheRedis  CacheBackend = "redis"
	CacheNone   CacheBackend = "none"
)

// CacheConfig holds settings for the comparison result cache.
type CacheConfig struct {
	// Backend selects sqlite, redis, or none.
	Backend CacheBackend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// Path is the SQLite database file.
	Path string `json:"path" yaml:"path" mapstructure:"path"`

	// RedisAddr is the host:port of the Redis server.
	RedisAddr string `json:"redis_addr" yaml:"redis_addr" mapstructure:"redis_addr"`

	// RedisPassword authenticates with Redis. Usually loaded from .secrets/.
	RedisPassword string `json:"redis_password,omitempty" yaml:"redis_password,omitempty" mapstructure:"redis_password"`

	// RedisDB selects the Redis logical database.
	RedisDB int `json:"redis_db" yaml:"redis_db" mapstructure:"redis_db"`

	// Prefix namespaces Redis keys (default "numdict:cmp:").
	Prefix string `json:"prefix" yaml:"prefix" mapstructure:"prefix"`

	// TTL expires cached comparisons. Zero keeps them forever.
	TTL time.Duration `json:"ttl" yaml:"ttl" mapstructure:"ttl"`
}

// LogConfig carries the parameters used to build the process logger.
type LogConfig struct {
	// Level is one of debug, info, warn, error (default info).
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is json or console (default console for the CLI).
	Format string `json:"format" yaml:"format" mapstructure:"format"`

	// OutputPaths lists log sinks; defaults to stderr.
	OutputPaths []string `json:"output_paths" yaml:"output_paths" mapstructure:"output_paths"`
}

// ServerConfig holds settings for the HTTP annotation service.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`

	// ReadTimeout bounds reading a request including the body.
	ReadTimeout time.Duration `json:"read_timeout" yaml:"read_timeout" mapstructure:"read_timeout"`

	// WriteTimeout bounds writing a response.
	WriteTimeout time.Duration `json:"write_timeout" yaml:"write_timeout" mapstructure:"write_timeout"`

	// MaxBodyBytes caps request bodies (default 1 MiB).
	MaxBodyBytes int64 `json:"max_body_bytes" yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
}

// Config groups all component configurations.
type Config struct {
	Scan   ScanConfig   `json:"scan" yaml:"scan" mapstructure:"scan"`
	Lookup LookupConfig `json:"lookup" yaml:"lookup" mapstructure:"lookup"`
	Cache  CacheConfig  `json:"cache" yaml:"cache" mapstructure:"cache"`
	Log    LogConfig    `json:"log" yaml:"log" mapstructure:"log"`
	Server ServerConfig `json:"server" yaml:"server" mapstructure:"server"`
}
