// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache stores comparison results keyed by normalized phrase so
// repeated lookups never reach the remote service.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pdiddy/numdict/internal/lexicon"
	"github.com/pdiddy/numdict/pkg/types"
)

var (
	// ErrMiss is returned by Get when no live entry exists for a phrase.
	ErrMiss = errors.New("cache miss")

	// ErrUnknownBackend is returned by New for an unsupported backend name.
	ErrUnknownBackend = errors.New("unknown cache backend")
)

// Cache is a comparison result store.
type Cache interface {
	// Get returns the cached result for phrase or ErrMiss.
	Get(ctx context.Context, phrase string) (string, error)

	// Set stores result for phrase, replacing any previous entry.
	Set(ctx context.Context, phrase, result string) error

	// Stats summarizes the cache contents.
	Stats(ctx context.Context) (Stats, error)

	// Purge deletes entries fetched more than olderThan ago. Zero deletes
	// everything. It returns the number of entries removed.
	Purge(ctx context.Context, olderThan time.Duration) (int64, error)

	Close() error
}

// Stats describes the cache contents.
type Stats struct {
	Backend string    `json:"backend" yaml:"backend"`
	Entries int64     `json:"entries" yaml:"entries"`
	Expired int64     `json:"expired" yaml:"expired"`
	Oldest  time.Time `json:"oldest,omitzero" yaml:"oldest,omitempty"`
	Newest  time.Time `json:"newest,omitzero" yaml:"newest,omitempty"`
}

// Key returns the cache key for a phrase: lower-cased with whitespace
// collapsed, so "5  KM" and "5 km" share an entry.
func Key(phrase string) string {
	return lexicon.Key(phrase)
}

// New opens the cache selected by cfg.Backend. An empty backend selects
// SQLite.
func New(ctx context.Context, cfg types.CacheConfig) (Cache, error) {
	switch cfg.Backend {
	case types.CacheSQLite, "":
		return OpenSQLite(cfg)
	case types.CacheRedis:
		return OpenRedis(ctx, cfg)
	case types.CacheNone:
		return Nop{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}

// Nop is a disabled cache: every Get misses and Set discards.
type Nop struct{}

func (Nop) Get(context.Context, string) (string, error) { return "", ErrMiss }
func (Nop) Set(context.Context, string, string) error   { return nil }
func (Nop) Close() error                                { return nil }

func (Nop) Stats(context.Context) (Stats, error) {
	return Stats{Backend: string(types.CacheNone)}, nil
}

func (Nop) Purge(context.Context, time.Duration) (int64, error) { return 0, nil }
