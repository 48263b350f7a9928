// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"unicode/utf8"

	"github.com/pdiddy/numdict/internal/lexicon"
	"github.com/pdiddy/numdict/pkg/types"
)

// assemble turns an accepted literal into a MatchRecord spanning the
// source text. Currency literals span only the literal and carry the
// currency name. Otherwise the span runs through the unit word attached
// to the literal or found after it; a literal with no unit spans itself.
func (s *scan) assemble(tok NumericToken, b boundary) (types.MatchRecord, bool) {
	if !b.accepted() {
		return types.MatchRecord{}, false
	}
	start := b.Index
	end := start + len(tok.Text)

	if b.Unit.Word != "" {
		return s.record(start, b.Unit.End, s.text[b.Unit.Start:b.Unit.End], ""), true
	}

	if c, ok := s.ex.currencyOf(tok.Text); ok {
		return s.record(start, end, c.Name, c.Code), true
	}

	if u, ok := s.matchUnitWord(end, s.ex.skip); ok {
		return s.record(start, u.End, s.text[u.Start:u.End], ""), true
	}
	return s.record(start, end, "", ""), true
}

func (s *scan) record(start, end int, units, code string) types.MatchRecord {
	return types.MatchRecord{
		Match:      s.text[start:end],
		StartIndex: start,
		Length:     end - start,
		Units:      units,
		Currency:   code,
	}
}

// currencyOf returns the currency whose symbol opens literal, after an
// optional minus sign.
func (e *Extractor) currencyOf(literal string) (lexicon.Currency, bool) {
	if len(literal) > 0 && literal[0] == '-' {
		literal = literal[1:]
	}
	r, size := utf8.DecodeRuneInString(literal)
	if r == utf8.RuneError {
		return lexicon.Currency{}, false
	}
	return e.lex.CurrencyUnit(literal[:size])
}
