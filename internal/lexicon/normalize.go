// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lexicon

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const spaces = "    "

// Normalize lower-cases s and turns every whitespace character into
// spaces. The result has exactly the byte length of s, so an offset found
// in Normalize(s) is also an offset into s. Runes whose lower-case form
// has a different encoded width are left untouched.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == utf8.RuneError && size <= 1:
			b.WriteByte(s[i])
		case unicode.IsSpace(r):
			b.WriteString(spaces[:size])
		default:
			lr := unicode.ToLower(r)
			if utf8.RuneLen(lr) == size {
				b.WriteRune(lr)
			} else {
				b.WriteString(s[i : i+size])
			}
		}
		i += size
	}
	return b.String()
}

// Key normalizes a lexicon entry or a phrase for comparison: lower case,
// runs of whitespace collapsed to one space, no leading or trailing space.
func Key(s string) string {
	lower := cases.Lower(language.Und).String(s)
	return strings.Join(strings.Fields(lower), " ")
}

// pluralize returns word with an "s" appended unless it already ends in "s".
func pluralize(word string) string {
	if strings.HasSuffix(word, "s") {
		return word
	}
	return word + "s"
}
