// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"sort"
	"strings"
)

// NumericToken is a candidate numeric literal found by the tokenizer,
// before boundary and unit validation.
type NumericToken struct {
	// Text is the literal as it appears in the source, including a leading
	// minus sign or currency symbol.
	Text string

	// Start is the byte offset of the literal in the source.
	Start int

	// SearchStart is where the classifier begins searching for Text. It
	// equals Start, so repeated literals resolve to their own occurrence.
	SearchStart int
}

// tokenizer holds the two literal patterns. The number pattern embeds the
// lexicon's currency symbols, so each Extractor compiles its own.
type tokenizer struct {
	number *regexp.Regexp
	ratio  *regexp.Regexp
}

var ratioPattern = regexp.MustCompile(`-?\d+/\d+`)

// newTokenizer compiles the number pattern
//
//	-? (currency)? [.,]? digits ([.,] digits)?
//
// A leading separator admits literals such as ".123"; repeated separators
// are not validated, so ".123,456" is one literal.
func newTokenizer(symbols []string) tokenizer {
	var currency string
	if len(symbols) > 0 {
		quoted := make([]string, len(symbols))
		for i, s := range symbols {
			quoted[i] = regexp.QuoteMeta(s)
		}
		currency = `(?:` + strings.Join(quoted, "|") + `)?`
	}
	return tokenizer{
		number: regexp.MustCompile(`-?` + currency + `[.,]?\d+(?:[.,]\d+)?`),
		ratio:  ratioPattern,
	}
}

// tokenize returns every non-overlapping number literal and every ratio
// literal in text, merged in document order. Literals starting at the same
// offset are ordered by text.
func (t tokenizer) tokenize(text string) []NumericToken {
	var tokens []NumericToken
	for _, re := range []*regexp.Regexp{t.number, t.ratio} {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			tokens = append(tokens, NumericToken{
				Text:        text[loc[0]:loc[1]],
				Start:       loc[0],
				SearchStart: loc[0],
			})
		}
	}

	sort.SliceStable(tokens, func(i, j int) bool {
		if tokens[i].Start != tokens[j].Start {
			return tokens[i].Start < tokens[j].Start
		}
		return tokens[i].Text < tokens[j].Text
	})
	return tokens
}
