// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/numdict/pkg/types"
)

// DefaultSQLitePath is used when CacheConfig.Path is empty.
const DefaultSQLitePath = ".numdict/cache.db"

// SQLite is a Cache backed by a local SQLite database.
type SQLite struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

// OpenSQLite opens or creates the cache database at cfg.Path and creates
// the schema if it does not exist.
func OpenSQLite(cfg types.CacheConfig) (*SQLite, error) {
	path := cfg.Path
	if path == "" {
		path = DefaultSQLitePath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	s := &SQLite{db: db, ttl: cfg.TTL, now: time.Now}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

func (s *SQLite) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS comparisons (
			phrase TEXT PRIMARY KEY,
			result TEXT NOT NULL,
			fetched_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_comparisons_fetched_at ON comparisons(fetched_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Close releases the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Get returns the cached result for phrase. Entries older than the TTL
// are misses.
func (s *SQLite) Get(ctx context.Context, phrase string) (string, error) {
	var result string
	var fetched int64
	err := s.db.QueryRowContext(ctx,
		`SELECT result, fetched_at FROM comparisons WHERE phrase = ?`, Key(phrase),
	).Scan(&result, &fetched)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrMiss
	}
	if err != nil {
		return "", fmt.Errorf("reading cache entry: %w", err)
	}
	if s.expired(fetched) {
		return "", ErrMiss
	}
	return result, nil
}

// Set stores result for phrase with the current time.
func (s *SQLite) Set(ctx context.Context, phrase, result string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO comparisons (phrase, result, fetched_at) VALUES (?, ?, ?)
		ON CONFLICT(phrase) DO UPDATE SET result = excluded.result, fetched_at = excluded.fetched_at`,
		Key(phrase), result, s.now().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	return nil
}

// Stats counts entries and reports the fetch time range.
func (s *SQLite) Stats(ctx context.Context) (Stats, error) {
	st := Stats{Backend: string(types.CacheSQLite)}

	var oldest, newest sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT count(*), min(fetched_at), max(fetched_at) FROM comparisons`,
	).Scan(&st.Entries, &oldest, &newest)
	if err != nil {
		return st, fmt.Errorf("counting cache entries: %w", err)
	}
	if oldest.Valid {
		st.Oldest = time.Unix(0, oldest.Int64).UTC()
	}
	if newest.Valid {
		st.Newest = time.Unix(0, newest.Int64).UTC()
	}

	if s.ttl > 0 {
		cutoff := s.now().Add(-s.ttl).UnixNano()
		if err := s.db.QueryRowContext(ctx,
			`SELECT count(*) FROM comparisons WHERE fetched_at < ?`, cutoff,
		).Scan(&st.Expired); err != nil {
			return st, fmt.Errorf("counting expired entries: %w", err)
		}
	}
	return st, nil
}

// Purge deletes entries fetched more than olderThan ago, or all entries
// when olderThan is zero.
func (s *SQLite) Purge(ctx context.Context, olderThan time.Duration) (int64, error) {
	var res sql.Result
	var err error
	if olderThan <= 0 {
		res, err = s.db.ExecContext(ctx, `DELETE FROM comparisons`)
	} else {
		cutoff := s.now().Add(-olderThan).UnixNano()
		res, err = s.db.ExecContext(ctx, `DELETE FROM comparisons WHERE fetched_at < ?`, cutoff)
	}
	if err != nil {
		return 0, fmt.Errorf("purging cache: %w", err)
	}
	return res.RowsAffected()
}

func (s *SQLite) expired(fetched int64) bool {
	if s.ttl <= 0 {
		return false
	}
	return s.now().Sub(time.Unix(0, fetched)) > s.ttl
}
