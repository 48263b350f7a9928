// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/numdict/internal/extract"
)

var scanCmd = &cobra.Command{
	Use:   "scan [files...]",
	Short: "List the numbers and units found in documents",
	Long: `Scan reads text, HTML or Markdown documents (stdin when no files are
given) and lists every number it finds together with its unit or currency.
HTML script, style and head content and Markdown code are ignored.

The input format is detected from the file extension unless --format is
given. Offsets are byte offsets into the segment (text line, HTML text
node or Markdown block) that holds the match.`,
	RunE: runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	mode, err := outputMode(cmd)
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	inputs, err := readInputs(args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	results, err := annotateInputs(cmd.Context(), cfg.Scan, nil, inputs)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if mode != outputTable {
		return writeStructured(out, mode, results)
	}
	return writeScanTable(out, results)
}

func writeScanTable(w io.Writer, results []fileResult) error {
	total := 0
	fmt.Fprintf(w, "%-20s  %-4s  %-6s  %-30s  %s\n", "File", "Seg", "Offset", "Match", "Units")
	fmt.Fprintln(w, strings.Repeat("-", 80))
	for _, r := range results {
		for _, a := range r.Matches {
			units := a.Units
			if a.Currency != "" {
				units = fmt.Sprintf("%s (%s)", a.Units, a.Currency)
			}
			fmt.Fprintf(w, "%-20s  %-4d  %-6d  %-30s  %s\n",
				truncate(r.File, 20), a.Segment, a.StartIndex, truncate(a.Match, 30), units)
			total++
		}
	}
	fmt.Fprintf(w, "\n%d matches\n", total)
	return nil
}

func init() {
	scanCmd.Flags().String("format", "auto", "input format: auto, text, html, markdown")
	scanCmd.Flags().Bool("unique", false, "keep only the first occurrence of each match")
	scanCmd.Flags().Int("skip", extract.DefaultSkipAllowance, "non-unit words allowed between a number and its unit")
	scanCmd.Flags().String("vocabulary", "", "YAML file extending the unit vocabulary")
	addOutputFlags(scanCmd)

	rootCmd.AddCommand(scanCmd)
}
