// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strings"

	"github.com/pdiddy/numdict/internal/lexicon"
)

var (
	wordPattern    = regexp.MustCompile(`^[a-z/]+`)
	twoWordPattern = regexp.MustCompile(`^[a-z/]+ +[a-z/]+`)
)

// unitMatch is a unit word located in the scanned text.
type unitMatch struct {
	// Word is the normalized unit phrase ("square feet", "km").
	Word string

	// Start and End delimit the unit phrase in the source text.
	Start int
	End   int
}

// scan holds the state of one Scan call: the source text and its
// normalized form. It is never shared between calls.
type scan struct {
	ex   *Extractor
	text string
	norm string
}

func (e *Extractor) newScan(text string) *scan {
	return &scan{ex: e, text: text, norm: lexicon.Normalize(text)}
}

// matchUnitWord reports whether the words at start form a unit. It skips
// one run of whitespace, then tries the next two-word phrase before the
// next single word, each first as an exact unit and then as prefix + base
// unit. When nothing matches, up to skip rejected words are stepped over.
func (s *scan) matchUnitWord(start, skip int) (unitMatch, bool) {
	for {
		i := start
		for i < len(s.norm) && s.norm[i] == ' ' {
			i++
		}
		if i >= len(s.norm) {
			return unitMatch{}, false
		}

		rest := s.norm[i:]
		word := wordPattern.FindString(rest)
		if word == "" {
			return unitMatch{}, false
		}
		if phrase := twoWordPattern.FindString(rest); phrase != "" {
			if u, ok := s.lookupUnit(phrase); ok {
				return unitMatch{Word: u, Start: i, End: i + len(phrase)}, true
			}
		}
		if u, ok := s.lookupUnit(word); ok {
			return unitMatch{Word: u, Start: i, End: i + len(word)}, true
		}

		if skip <= 0 {
			return unitMatch{}, false
		}
		skip--
		start = i + len(word)
	}
}

// lookupUnit matches a lower-case phrase against the lexicon, first
// verbatim and then as a prefixed base unit.
func (s *scan) lookupUnit(phrase string) (string, bool) {
	key := strings.Join(strings.Fields(phrase), " ")
	lex := s.ex.lex
	if lex.IsUnit(key) {
		return key, true
	}
	if _, _, ok := lex.Decompose(key); ok {
		return key, true
	}
	return "", false
}
