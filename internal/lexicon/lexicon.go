// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package lexicon holds the unit vocabulary used by the extraction engine:
// simple units, prefix-combinable base units, metric prefixes bucketed by
// length, and the currency symbol table.
//
// A Lexicon is immutable once built. Default returns a process-wide
// instance built on first use; New builds one from a custom Vocabulary.
package lexicon

import (
	"sort"
	"sync"
	"unicode/utf8"

	"golang.org/x/text/currency"
)

// Lexicon is an immutable, normalized unit vocabulary. It is safe for
// concurrent use.
type Lexicon struct {
	simple []string
	base   []string
	all    []string

	units map[string]struct{}
	bases map[string]struct{}

	prefixes []string
	buckets  []prefixBucket

	currencies map[string]Currency
	symbols    []string
}

// prefixBucket holds all prefixes of one length.
type prefixBucket struct {
	length   int
	prefixes []string
	set      map[string]struct{}
}

var defaultLexicon = sync.OnceValue(func() *Lexicon {
	return New(DefaultVocabulary())
})

// Default returns the built-in lexicon, building it on first call.
func Default() *Lexicon {
	return defaultLexicon()
}

// New builds a Lexicon from v. All entries are normalized with Key; simple
// and base units gain a plural form unless they already end in "s" or are
// listed in BaseUnitsNoPlural. Currencies whose symbol is not a single
// character are ignored; unknown ISO codes are dropped.
func New(v Vocabulary) *Lexicon {
	l := &Lexicon{
		units:      make(map[string]struct{}),
		bases:      make(map[string]struct{}),
		currencies: make(map[string]Currency),
	}

	var simple []string
	for _, u := range v.SimpleUnits {
		if k := Key(u); k != "" {
			simple = append(simple, k, pluralize(k))
		}
	}
	l.simple = uniqueLongestFirst(simple)

	noPlural := make(map[string]struct{}, len(v.BaseUnitsNoPlural))
	var base []string
	for _, u := range v.BaseUnitsNoPlural {
		if k := Key(u); k != "" {
			noPlural[k] = struct{}{}
			base = append(base, k)
		}
	}
	for _, u := range v.BaseUnits {
		k := Key(u)
		if k == "" {
			continue
		}
		base = append(base, k)
		if _, ok := noPlural[k]; !ok {
			base = append(base, pluralize(k))
		}
	}
	l.base = uniqueLongestFirst(base)

	l.all = uniqueLongestFirst(append(append([]string(nil), l.simple...), l.base...))
	for _, u := range l.all {
		l.units[u] = struct{}{}
	}
	for _, u := range l.base {
		l.bases[u] = struct{}{}
	}

	var prefixes []string
	for _, p := range v.Prefixes {
		if k := Key(p); k != "" {
			prefixes = append(prefixes, k)
		}
	}
	l.prefixes = unique(prefixes)
	l.buckets = bucketByLength(l.prefixes)

	for _, c := range v.Currencies {
		if utf8.RuneCountInString(c.Symbol) != 1 || c.Name == "" {
			continue
		}
		if c.Code != "" {
			if unit, err := currency.ParseISO(c.Code); err == nil {
				c.Code = unit.String()
			} else {
				c.Code = ""
			}
		}
		c.Name = Key(c.Name)
		if _, seen := l.currencies[c.Symbol]; !seen {
			l.symbols = append(l.symbols, c.Symbol)
		}
		l.currencies[c.Symbol] = c
	}
	sort.Strings(l.symbols)

	return l
}

// AllUnits returns every recognized unit phrase, longest first.
func (l *Lexicon) AllUnits() []string { return append([]string(nil), l.all...) }

// SimpleUnits returns the verbatim-only unit phrases, longest first.
func (l *Lexicon) SimpleUnits() []string { return append([]string(nil), l.simple...) }

// BaseUnits returns the prefix-combinable units, longest first.
func (l *Lexicon) BaseUnits() []string { return append([]string(nil), l.base...) }

// Prefixes returns the normalized metric prefixes.
func (l *Lexicon) Prefixes() []string { return append([]string(nil), l.prefixes...) }

// PrefixesByLength returns the prefixes grouped by length, shortest bucket
// first. Lookups walk the buckets from the end so longer prefixes win.
func (l *Lexicon) PrefixesByLength() [][]string {
	out := make([][]string, len(l.buckets))
	for i, b := range l.buckets {
		out[i] = append([]string(nil), b.prefixes...)
	}
	return out
}

// IsUnit reports whether phrase (already normalized with Key) is a unit.
func (l *Lexicon) IsUnit(phrase string) bool {
	_, ok := l.units[phrase]
	return ok
}

// IsBaseUnit reports whether phrase is a prefix-combinable unit.
func (l *Lexicon) IsBaseUnit(phrase string) bool {
	_, ok := l.bases[phrase]
	return ok
}

// Decompose splits word into a metric prefix and a base unit. Prefix
// buckets are tried longest first, so "megagram" resolves to "mega" +
// "gram" before a one-letter prefix is considered.
func (l *Lexicon) Decompose(word string) (prefix, base string, ok bool) {
	for i := len(l.buckets) - 1; i >= 0; i-- {
		b := l.buckets[i]
		if len(word) <= b.length {
			continue
		}
		p := word[:b.length]
		if _, hit := b.set[p]; !hit {
			continue
		}
		if rest := word[b.length:]; l.IsBaseUnit(rest) {
			return p, rest, true
		}
	}
	return "", "", false
}

// CurrencyUnit returns the currency registered for symbol.
func (l *Lexicon) CurrencyUnit(symbol string) (Currency, bool) {
	c, ok := l.currencies[symbol]
	return c, ok
}

// CurrencySymbols returns the registered currency symbols in sorted order.
func (l *Lexicon) CurrencySymbols() []string { return append([]string(nil), l.symbols...) }

func unique(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// uniqueLongestFirst deduplicates and sorts by descending length, then
// alphabetically, so greedy matching prefers the most specific phrase.
func uniqueLongestFirst(in []string) []string {
	out := unique(in)
	sort.SliceStable(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) > len(out[j])
		}
		return out[i] < out[j]
	})
	return out
}

func bucketByLength(prefixes []string) []prefixBucket {
	sorted := append([]string(nil), prefixes...)
	sort.Slice(sorted, func(i, j int) bool {
		if len(sorted[i]) != len(sorted[j]) {
			return len(sorted[i]) < len(sorted[j])
		}
		return sorted[i] < sorted[j]
	})

	var buckets []prefixBucket
	for _, p := range sorted {
		if len(buckets) == 0 || buckets[len(buckets)-1].length != len(p) {
			buckets = append(buckets, prefixBucket{length: len(p), set: make(map[string]struct{})})
		}
		b := &buckets[len(buckets)-1]
		b.prefixes = append(b.prefixes, p)
		b.set[p] = struct{}{}
	}
	return buckets
}
