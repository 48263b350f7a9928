// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/numdict/internal/cache"
	"github.com/pdiddy/numdict/internal/logging"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and purge the comparison cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show comparison cache statistics",
	Args:  cobra.NoArgs,
	RunE:  runCacheStats,
}

var cachePurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete cached comparisons",
	Long: `Purge deletes cached comparisons fetched longer ago than --older-than.
Without --older-than every entry is removed.`,
	Args: cobra.NoArgs,
	RunE: runCachePurge,
}

func openCache(cmd *cobra.Command) (cache.Cache, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return cache.New(cmd.Context(), cfg.Cache)
}

func runCacheStats(cmd *cobra.Command, args []string) error {
	mode, err := outputMode(cmd)
	if err != nil {
		return err
	}
	cc, err := openCache(cmd)
	if err != nil {
		return err
	}
	defer cc.Close()

	st, err := cc.Stats(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if mode != outputTable {
		return writeStructured(out, mode, st)
	}
	fmt.Fprintf(out, "Backend:  %s\n", st.Backend)
	fmt.Fprintf(out, "Entries:  %d\n", st.Entries)
	fmt.Fprintf(out, "Expired:  %d\n", st.Expired)
	if !st.Oldest.IsZero() {
		fmt.Fprintf(out, "Oldest:   %s\n", st.Oldest.Format(time.RFC3339))
		fmt.Fprintf(out, "Newest:   %s\n", st.Newest.Format(time.RFC3339))
	}
	return nil
}

func runCachePurge(cmd *cobra.Command, args []string) error {
	olderThan, _ := cmd.Flags().GetDuration("older-than")
	if olderThan < 0 {
		return fmt.Errorf("--older-than must not be negative")
	}
	cc, err := openCache(cmd)
	if err != nil {
		return err
	}
	defer cc.Close()

	n, err := cc.Purge(cmd.Context(), olderThan)
	if err != nil {
		return err
	}
	logging.Default().Info("purged comparison cache",
		logging.Int("removed", int(n)),
		logging.Duration("older_than", olderThan),
	)
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %d entries\n", n)
	return nil
}

func init() {
	cacheCmd.PersistentFlags().String("cache", "sqlite", "comparison cache: sqlite, redis, none")
	cacheCmd.PersistentFlags().String("cache-path", "", "SQLite cache file (default .numdict/cache.db)")
	addOutputFlags(cacheStatsCmd)
	cachePurgeCmd.Flags().Duration("older-than", 0, "only remove entries older than this (e.g. 720h)")

	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cachePurgeCmd)
	rootCmd.AddCommand(cacheCmd)
}
