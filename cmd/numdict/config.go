// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/numdict/internal/cache"
	"github.com/pdiddy/numdict/internal/compare"
	"github.com/pdiddy/numdict/internal/extract"
	"github.com/pdiddy/numdict/internal/secrets"
	"github.com/pdiddy/numdict/pkg/types"
)

// flagKeys maps command-line flags to configuration keys. Flags are bound
// for whichever command runs, so commands sharing a flag name share a key.
var flagKeys = map[string]string{
	"log-level":   "log.level",
	"log-format":  "log.format",
	"format":      "scan.format",
	"skip":        "scan.skip_allowance",
	"unique":      "scan.unique",
	"vocabulary":  "scan.vocabulary_file",
	"concurrency": "lookup.concurrency",
	"cache":       "cache.backend",
	"cache-path":  "cache.path",
	"addr":        "server.addr",
}

func bindFlags(cmd *cobra.Command) {
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			viper.BindPFlag(key, f)
		}
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("scan.format", "auto")
	v.SetDefault("scan.skip_allowance", extract.DefaultSkipAllowance)
	v.SetDefault("scan.unique", false)
	v.SetDefault("scan.vocabulary_file", "")

	v.SetDefault("lookup.base_url", compare.DefaultBaseURL)
	v.SetDefault("lookup.app_id", "")
	v.SetDefault("lookup.pod_id", "Comparison")
	v.SetDefault("lookup.scanner", "Unit")
	v.SetDefault("lookup.timeout", 30*time.Second)
	v.SetDefault("lookup.user_agent", "numdict/"+version)
	v.SetDefault("lookup.max_retries", 3)
	v.SetDefault("lookup.concurrency", 4)

	v.SetDefault("cache.backend", string(types.CacheSQLite))
	v.SetDefault("cache.path", cache.DefaultSQLitePath)
	v.SetDefault("cache.redis_addr", "localhost:6379")
	v.SetDefault("cache.redis_password", "")
	v.SetDefault("cache.redis_db", 0)
	v.SetDefault("cache.prefix", cache.DefaultRedisPrefix)
	v.SetDefault("cache.ttl", 30*24*time.Hour)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output_paths", []string{"stderr"})

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 60*time.Second)
	v.SetDefault("server.max_body_bytes", 1<<20)
}

// loadConfig decodes the merged configuration and fills credentials from
// the secrets directory where the configuration leaves them empty.
func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	cfg.Lookup.AppID = loadedSecrets.Get(secrets.WolframAppID, cfg.Lookup.AppID)
	cfg.Cache.RedisPassword = loadedSecrets.Get(secrets.RedisPassword, cfg.Cache.RedisPassword)
	return cfg, nil
}
