// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pdiddy/numdict/pkg/types"
)

// DefaultRedisPrefix namespaces keys when CacheConfig.Prefix is empty.
const DefaultRedisPrefix = "numdict:cmp:"

const scanBatch = 256

// Redis is a Cache backed by a Redis server. Expiry is delegated to
// Redis key TTLs.
type Redis struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
	now    func() time.Time
}

type redisEntry struct {
	Result    string `json:"result"`
	FetchedAt int64  `json:"fetched_at"`
}

// OpenRedis connects to cfg.RedisAddr and verifies the connection.
func OpenRedis(ctx context.Context, cfg types.CacheConfig) (*Redis, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("connecting to redis at %s: %w", cfg.RedisAddr, err)
	}
	return NewRedis(rdb, cfg), nil
}

// NewRedis wraps an existing client.
func NewRedis(rdb *redis.Client, cfg types.CacheConfig) *Redis {
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &Redis{rdb: rdb, prefix: prefix, ttl: cfg.TTL, now: time.Now}
}

func (r *Redis) key(phrase string) string {
	return r.prefix + Key(phrase)
}

// Close closes the client.
func (r *Redis) Close() error {
	return r.rdb.Close()
}

// Get returns the cached result for phrase.
func (r *Redis) Get(ctx context.Context, phrase string) (string, error) {
	data, err := r.rdb.Get(ctx, r.key(phrase)).Bytes()
	if errors.Is(err, redis.Nil) {
		return "", ErrMiss
	}
	if err != nil {
		return "", fmt.Errorf("reading cache entry: %w", err)
	}
	var e redisEntry
	if err := json.Unmarshal(data, &e); err != nil {
		return "", fmt.Errorf("decoding cache entry: %w", err)
	}
	return e.Result, nil
}

// Set stores result for phrase with the configured TTL.
func (r *Redis) Set(ctx context.Context, phrase, result string) error {
	data, err := json.Marshal(redisEntry{Result: result, FetchedAt: r.now().UnixNano()})
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}
	if err := r.rdb.Set(ctx, r.key(phrase), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	return nil
}

// Stats scans the prefixed keys. Expired is always zero since Redis
// evicts expired keys itself.
func (r *Redis) Stats(ctx context.Context) (Stats, error) {
	st := Stats{Backend: string(types.CacheRedis)}
	err := r.each(ctx, func(key string, e redisEntry) error {
		st.Entries++
		t := time.Unix(0, e.FetchedAt).UTC()
		if st.Oldest.IsZero() || t.Before(st.Oldest) {
			st.Oldest = t
		}
		if t.After(st.Newest) {
			st.Newest = t
		}
		return nil
	})
	return st, err
}

// Purge deletes prefixed keys fetched more than olderThan ago, or all of
// them when olderThan is zero.
func (r *Redis) Purge(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := r.now().Add(-olderThan).UnixNano()
	var removed int64
	err := r.each(ctx, func(key string, e redisEntry) error {
		if olderThan > 0 && e.FetchedAt >= cutoff {
			return nil
		}
		n, err := r.rdb.Del(ctx, key).Result()
		if err != nil {
			return fmt.Errorf("deleting %s: %w", key, err)
		}
		removed += n
		return nil
	})
	return removed, err
}

// each visits every prefixed key. Keys that vanish or fail to decode
// mid-scan are skipped.
func (r *Redis) each(ctx context.Context, fn func(key string, e redisEntry) error) error {
	iter := r.rdb.Scan(ctx, 0, r.prefix+"*", scanBatch).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		data, err := r.rdb.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return fmt.Errorf("reading %s: %w", key, err)
		}
		var e redisEntry
		if json.Unmarshal(data, &e) != nil {
			continue
		}
		if err := fn(key, e); err != nil {
			return err
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scanning cache keys: %w", err)
	}
	return nil
}
