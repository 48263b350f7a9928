// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pdiddy/numdict/internal/cache"
	"github.com/pdiddy/numdict/internal/compare"
	"github.com/pdiddy/numdict/internal/document"
	"github.com/pdiddy/numdict/internal/extract"
	"github.com/pdiddy/numdict/internal/lexicon"
	"github.com/pdiddy/numdict/internal/logging"
	"github.com/pdiddy/numdict/internal/metrics"
	"github.com/pdiddy/numdict/pkg/types"
)

// input is one document read from a file or stdin.
type input struct {
	Name string
	Data []byte
}

// readInputs reads the named files, or stdin when there are none or the
// name is "-".
func readInputs(args []string, stdin io.Reader) ([]input, error) {
	if len(args) == 0 {
		args = []string{"-"}
	}
	var inputs []input
	for _, name := range args {
		var data []byte
		var err error
		if name == "-" {
			data, err = io.ReadAll(stdin)
		} else {
			data, err = os.ReadFile(name)
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		inputs = append(inputs, input{Name: name, Data: data})
	}
	return inputs, nil
}

// newExtractor builds an extractor from the scan configuration, extending
// the built-in vocabulary with the configured vocabulary file.
func newExtractor(cfg types.ScanConfig) (*extract.Extractor, error) {
	lex := lexicon.Default()
	if cfg.VocabularyFile != "" {
		extra, err := lexicon.LoadVocabulary(cfg.VocabularyFile)
		if err != nil {
			return nil, err
		}
		lex = lexicon.New(lexicon.DefaultVocabulary().Merge(extra))
	}
	return extract.New(lex, extract.WithSkipAllowance(cfg.SkipAllowance)), nil
}

// fileResult holds the annotations found in one input.
type fileResult struct {
	File     string             `json:"file" yaml:"file"`
	Format   document.Format    `json:"format" yaml:"format"`
	Segments int                `json:"segments" yaml:"segments"`
	Matches  []types.Annotation `json:"matches" yaml:"matches"`
}

// annotateInputs scans every input according to the scan configuration.
func annotateInputs(ctx context.Context, cfg types.ScanConfig, m *metrics.Metrics, inputs []input) ([]fileResult, error) {
	format, err := document.ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}
	ex, err := newExtractor(cfg)
	if err != nil {
		return nil, err
	}
	a := &document.Annotator{Extractor: ex, Metrics: m}

	results := make([]fileResult, 0, len(inputs))
	for _, in := range inputs {
		f := document.Resolve(format, in.Name)
		segs, anns, err := a.AnnotateDocument(ctx, f, in.Data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", in.Name, err)
		}
		if cfg.Unique {
			anns = document.Unique(anns)
		}
		results = append(results, fileResult{File: in.Name, Format: f, Segments: len(segs), Matches: anns})
	}
	return results, nil
}

// newCompareClient opens the configured cache and returns a comparison
// client using it. The caller closes the cache.
func newCompareClient(ctx context.Context, cfg types.Config, m *metrics.Metrics) (*compare.Client, cache.Cache, error) {
	cc, err := cache.New(ctx, cfg.Cache)
	if err != nil {
		return nil, nil, err
	}
	client := compare.New(cfg.Lookup,
		compare.WithCache(cc),
		compare.WithMetrics(m),
		compare.WithLogger(logging.Default()),
	)
	return client, cc, nil
}
