// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract finds numbers and their units in free-form text.
//
// A scan runs in four steps. The tokenizer finds candidate literals
// (plain numbers, currency amounts, ratios). The boundary classifier
// rejects literals glued to surrounding words ("foo123bar") and notices
// units attached directly to the literal ("5km"). The unit matcher reads
// the words after an accepted literal against the lexicon, including
// prefix + base unit compositions ("kilojoules"). The assembler produces
// a MatchRecord whose span is always an exact substring of the input.
//
// Dedupe collapses repeated matches to their first occurrence.
package extract

import (
	"sync"

	"github.com/pdiddy/numdict/internal/lexicon"
	"github.com/pdiddy/numdict/pkg/types"
)

// DefaultSkipAllowance is the number of non-unit words tolerated between
// a standalone literal and its unit ("1 more mile").
const DefaultSkipAllowance = 1

// Extractor scans text against one lexicon. It holds no per-scan state
// and is safe for concurrent use.
type Extractor struct {
	lex  *lexicon.Lexicon
	skip int
	tok  tokenizer
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithSkipAllowance sets how many non-unit words may sit between a
// literal and its unit. Negative values are treated as zero.
func WithSkipAllowance(n int) Option {
	return func(e *Extractor) {
		if n < 0 {
			n = 0
		}
		e.skip = n
	}
}

// New returns an Extractor for lex. A nil lex selects lexicon.Default().
func New(lex *lexicon.Lexicon, opts ...Option) *Extractor {
	if lex == nil {
		lex = lexicon.Default()
	}
	e := &Extractor{lex: lex, skip: DefaultSkipAllowance}
	for _, opt := range opts {
		opt(e)
	}
	e.tok = newTokenizer(lex.CurrencySymbols())
	return e
}

var defaultExtractor = sync.OnceValue(func() *Extractor {
	return New(lexicon.Default())
})

// Default returns the Extractor for the built-in lexicon.
func Default() *Extractor {
	return defaultExtractor()
}

// Lexicon returns the extractor's lexicon.
func (e *Extractor) Lexicon() *lexicon.Lexicon { return e.lex }

// SkipAllowance returns the configured skip allowance.
func (e *Extractor) SkipAllowance() int { return e.skip }

// Tokenize returns the candidate literals in text in document order.
func (e *Extractor) Tokenize(text string) []NumericToken {
	return e.tok.tokenize(text)
}

// Scan returns every number found in text, in document order. Repeated
// matches are kept; see ScanUnique.
func (e *Extractor) Scan(text string) []types.MatchRecord {
	s := e.newScan(text)

	var records []types.MatchRecord
	for _, tok := range e.tok.tokenize(text) {
		b := s.classifyBoundary(tok.Text, tok.SearchStart)
		if r, ok := s.assemble(tok, b); ok {
			records = append(records, r)
		}
	}
	return records
}

// ScanUnique is Scan followed by Dedupe.
func (e *Extractor) ScanUnique(text string) []types.MatchRecord {
	return Dedupe(e.Scan(text))
}

// Scan scans text with the default extractor.
func Scan(text string) []types.MatchRecord {
	return Default().Scan(text)
}
