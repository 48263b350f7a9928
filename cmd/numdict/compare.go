// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/numdict/internal/compare"
	"github.com/pdiddy/numdict/internal/extract"
	"github.com/pdiddy/numdict/internal/logging"
	"github.com/pdiddy/numdict/pkg/types"
)

var compareCmd = &cobra.Command{
	Use:   "compare [files...]",
	Short: "Scan documents and look up a human-scale comparison for each number",
	Long: `Compare scans documents like scan does, then sends every number that
carries a unit or currency to the comparison service and prints the answer
("5 km" becomes "about 50 football fields").

Answers are cached (SQLite by default) so repeated phrases are looked up
once. The service app ID is read from .secrets/wolfram-app-id or the
NUMDICT_LOOKUP_APP_ID environment variable. Failed lookups are reported
per match and do not stop the run.`,
	RunE: runCompare,
}

// compareResult holds the compared annotations for one input.
type compareResult struct {
	File    string                     `json:"file" yaml:"file"`
	Format  string                     `json:"format" yaml:"format"`
	Matches []types.ComparedAnnotation `json:"matches" yaml:"matches"`
}

func runCompare(cmd *cobra.Command, args []string) error {
	mode, err := outputMode(cmd)
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Lookup.AppID == "" {
		return compare.ErrMissingAppID
	}
	inputs, err := readInputs(args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	scanned, err := annotateInputs(ctx, cfg.Scan, nil, inputs)
	if err != nil {
		return err
	}

	client, cc, err := newCompareClient(ctx, cfg, nil)
	if err != nil {
		return err
	}
	defer cc.Close()

	log := logging.Default()
	results := make([]compareResult, 0, len(scanned))
	for _, r := range scanned {
		matches, err := client.CompareAll(ctx, r.Matches, cfg.Lookup.Concurrency)
		if err != nil {
			return fmt.Errorf("%s: %w", r.File, err)
		}
		log.Debug("compared file",
			logging.String("file", r.File),
			logging.Int("matches", len(matches)),
		)
		results = append(results, compareResult{File: r.File, Format: string(r.Format), Matches: matches})
	}

	out := cmd.OutOrStdout()
	if mode != outputTable {
		return writeStructured(out, mode, results)
	}
	return writeCompareTable(out, results)
}

func writeCompareTable(w io.Writer, results []compareResult) error {
	var total, failed int
	fmt.Fprintf(w, "%-20s  %-24s  %-6s  %s\n", "File", "Match", "Source", "Comparison")
	fmt.Fprintln(w, strings.Repeat("-", 80))
	for _, r := range results {
		for _, m := range r.Matches {
			if !m.HasUnits() {
				continue
			}
			total++
			result := m.Comparison.Result
			if m.Comparison.Error != "" {
				failed++
				result = "error: " + m.Comparison.Error
			}
			fmt.Fprintf(w, "%-20s  %-24s  %-6s  %s\n",
				truncate(r.File, 20), truncate(m.Match, 24), m.Comparison.Source, result)
		}
	}
	fmt.Fprintf(w, "\n%d compared, %d failed\n", total, failed)
	return nil
}

func init() {
	compareCmd.Flags().String("format", "auto", "input format: auto, text, html, markdown")
	compareCmd.Flags().Bool("unique", false, "keep only the first occurrence of each match")
	compareCmd.Flags().Int("skip", extract.DefaultSkipAllowance, "non-unit words allowed between a number and its unit")
	compareCmd.Flags().String("vocabulary", "", "YAML file extending the unit vocabulary")
	compareCmd.Flags().Int("concurrency", 4, "maximum lookups in flight")
	compareCmd.Flags().String("cache", "sqlite", "comparison cache: sqlite, redis, none")
	compareCmd.Flags().String("cache-path", "", "SQLite cache file (default .numdict/cache.db)")
	addOutputFlags(compareCmd)

	rootCmd.AddCommand(compareCmd)
}
