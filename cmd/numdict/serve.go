// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pdiddy/numdict/internal/compare"
	"github.com/pdiddy/numdict/internal/document"
	"github.com/pdiddy/numdict/internal/extract"
	"github.com/pdiddy/numdict/internal/logging"
	"github.com/pdiddy/numdict/internal/metrics"
	"github.com/pdiddy/numdict/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP annotation API",
	Long: `Serve exposes the extraction engine over HTTP:

  POST /api/v1/scan     {"text": "...", "format": "html", "unique": true}
  POST /api/v1/compare  same body, answers include comparisons
  GET  /healthz
  GET  /metrics         Prometheus metrics

The compare endpoint answers 503 when no comparison service app ID is
configured. The server shuts down gracefully on SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := logging.Default()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	ex, err := newExtractor(cfg.Scan)
	if err != nil {
		return err
	}
	annotator := &document.Annotator{Extractor: ex, Logger: log.Named("annotate"), Metrics: m}

	var client *compare.Client
	if cfg.Lookup.AppID != "" {
		c, cc, err := newCompareClient(ctx, cfg, m)
		if err != nil {
			return err
		}
		defer cc.Close()
		client = c
	} else {
		log.Warn("no comparison service app ID configured, /api/v1/compare is disabled")
	}

	router := server.NewRouter(server.RouterConfig{
		Annotator:    annotator,
		Compare:      client,
		Metrics:      m,
		Logger:       log,
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
		Version:      version,
	})
	return server.New(cfg.Server, router, log).Run(ctx)
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "listen address")
	serveCmd.Flags().Int("skip", extract.DefaultSkipAllowance, "non-unit words allowed between a number and its unit")
	serveCmd.Flags().String("vocabulary", "", "YAML file extending the unit vocabulary")
	serveCmd.Flags().String("cache", "sqlite", "comparison cache: sqlite, redis, none")
	serveCmd.Flags().String("cache-path", "", "SQLite cache file (default .numdict/cache.db)")

	rootCmd.AddCommand(serveCmd)
}
