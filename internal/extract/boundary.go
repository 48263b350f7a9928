// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// boundary is the classifier's verdict for one occurrence of a literal.
type boundary struct {
	// Index is the byte offset of the occurrence, or -1 if the literal does
	// not occur at or after the search start.
	Index int

	// Whole is set when the literal is a standalone token with no unit word
	// directly attached.
	Whole bool

	// Unit is the unit word attached directly to the literal ("5km").
	Unit unitMatch

	// Currency is the currency name when a currency literal abuts sentence
	// punctuation ("$3.50.").
	Currency string
}

// accepted reports whether the occurrence is a standalone token.
func (b boundary) accepted() bool {
	return b.Index >= 0 && (b.Whole || b.Unit.Word != "" || b.Currency != "")
}

// classifyBoundary finds needle at or after searchStart and decides
// whether it stands on its own. The left side must start the text or
// follow a boundary character. The right side must end the text, be
// followed by whitespace, run directly into a unit word, be a currency
// literal followed by sentence punctuation, or be followed by boundary
// punctuation. The right edge of a directly attached unit is not checked,
// so "5km5km" accepts the first "5" with unit "km".
func (s *scan) classifyBoundary(needle string, searchStart int) boundary {
	if searchStart < 0 {
		searchStart = 0
	}
	if needle == "" || searchStart > len(s.text) {
		return boundary{Index: -1}
	}
	i := strings.Index(s.text[searchStart:], needle)
	if i < 0 {
		return boundary{Index: -1}
	}

	b := boundary{Index: searchStart + i}
	if !s.leftBoundary(b.Index) {
		return b
	}

	end := b.Index + len(needle)
	if end == len(s.text) {
		b.Whole = true
		return b
	}

	next, _ := utf8.DecodeRuneInString(s.text[end:])
	if unicode.IsSpace(next) {
		b.Whole = true
		return b
	}
	if u, ok := s.matchUnitWord(end, 0); ok {
		b.Unit = u
		return b
	}
	if c, ok := s.ex.currencyOf(needle); ok && isSentencePunct(next) {
		b.Currency = c.Name
		return b
	}
	if isBoundaryPunct(next) {
		b.Whole = true
	}
	return b
}

// leftBoundary reports whether a literal starting at idx is not glued to
// a preceding word. A minus sign counts as a boundary when it follows
// whitespace or starts the text.
func (s *scan) leftBoundary(idx int) bool {
	if idx == 0 {
		return true
	}
	prev, size := utf8.DecodeLastRuneInString(s.text[:idx])
	if unicode.IsSpace(prev) || isBoundaryPunct(prev) {
		return true
	}
	if prev != '-' {
		return false
	}
	before := idx - size
	if before == 0 {
		return true
	}
	pp, _ := utf8.DecodeLastRuneInString(s.text[:before])
	return unicode.IsSpace(pp)
}

func isBoundaryPunct(r rune) bool {
	return strings.ContainsRune(".!?\"'(),;<>~*+=[]{}\\`", r)
}

func isSentencePunct(r rune) bool {
	return strings.ContainsRune(".!?\"'", r)
}
