// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the numdict pipeline:
// match records produced by the extraction engine, document segments,
// annotations and comparison results.
package types

import "strings"

// MatchRecord is one confirmed number (plus optional unit) occurrence in a
// text segment. Match is always the exact substring of the scanned text at
// [StartIndex, StartIndex+Length); it is never re-synthesized.
type MatchRecord struct {
	// Match is the source text spanning the literal and its unit word.
	Match string `json:"match" yaml:"match"`

	// StartIndex is the byte offset of the match in the scanned text.
	StartIndex int `json:"start_index" yaml:"start_index"`

	// Length is the byte length of the match.
	Length int `json:"length" yaml:"length"`

	// Units is the unit word as it appears in the source, the spoken name of
	// the currency for currency literals ("dollars"), or empty when the
	// number stands alone.
	Units string `json:"units,omitempty" yaml:"units,omitempty"`

	// Currency is the ISO 4217 code for currency literals (e.g. "USD").
	Currency string `json:"currency,omitempty" yaml:"currency,omitempty"`
}

// End returns the byte offset just past the match.
func (m MatchRecord) End() int { return m.StartIndex + m.Length }

// HasUnits reports whether the record is tied to a unit or currency.
func (m MatchRecord) HasUnits() bool { return m.Units != "" }

// IsCurrency reports whether the record was derived from a currency symbol.
func (m MatchRecord) IsCurrency() bool { return m.Currency != "" }

// Phrase renders the record as natural-language input for the comparison
// service. Currency literals drop their symbol and append the spoken name
// ("$3.50" becomes "3.50 dollars"); all other records use the match text
// with whitespace collapsed.
func (m MatchRecord) Phrase() string {
	if m.IsCurrency() {
		amount := strings.TrimLeft(m.Match, "-")
		for len(amount) > 0 && !isAmountStart(amount[0]) {
			amount = amount[1:]
		}
		if strings.HasPrefix(m.Match, "-") {
			amount = "-" + amount
		}
		return amount + " " + m.Units
	}
	return strings.Join(strings.Fields(m.Match), " ")
}

func isAmountStart(b byte) bool {
	return (b >= '0' && b <= '9') || b == '.' || b == ','
}

// Segment is a contiguous run of content text taken from a document, such
// as one HTML text node or one Markdown paragraph.
type Segment struct {
	// Index is the zero-based position of the segment in document order.
	Index int `json:"index" yaml:"index"`

	// Path locates the segment in the document (e.g. "html/body/p").
	Path string `json:"path,omitempty" yaml:"path,omitempty"`

	// Text is the raw segment text. Match offsets index into it.
	Text string `json:"text" yaml:"text"`
}

// Annotation is a MatchRecord tagged with the segment that owns it.
type Annotation struct {
	MatchRecord `yaml:",inline"`

	// Segment is the owning segment's index.
	Segment int `json:"segment" yaml:"segment"`

	// Path is the owning segment's document path.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// Comparison is the comparison service's answer for one phrase.
type Comparison struct {
	// Phrase is the query sent to the service (e.g. "5 kilometers").
	Phrase string `json:"phrase" yaml:"phrase"`

	// Result is the comparison sentence with parenthetical asides removed.
	Result string `json:"result,omitempty" yaml:"result,omitempty"`

	// Source is "cache" or "remote".
	Source string `json:"source,omitempty" yaml:"source,omitempty"`

	// Error describes a failed lookup. Empty on success.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// ComparedAnnotation pairs an annotation with its comparison lookup.
type ComparedAnnotation struct {
	Annotation `yaml:",inline"`
	Comparison Comparison `json:"comparison" yaml:"comparison"`
}
