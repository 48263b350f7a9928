// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyBoundary(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		needle      string
		searchStart int
		want        boundary
	}{
		{"followed by whitespace", "5 km", "5", 0, boundary{Index: 0, Whole: true}},
		{"end of text", "5", "5", 0, boundary{Index: 0, Whole: true}},
		{"inside a word", "foo123bar", "123", 0, boundary{Index: 3}},
		{"sentence end", "went 5.", "5", 0, boundary{Index: 5, Whole: true}},
		{"parenthesized", "(5)", "5", 0, boundary{Index: 1, Whole: true}},
		{
			"unit attached directly", "5km today", "5", 0,
			boundary{Index: 0, Unit: unitMatch{Word: "km", Start: 1, End: 3}},
		},
		{
			"attached unit glued to more digits", "5km5km", "5", 0,
			boundary{Index: 0, Unit: unitMatch{Word: "km", Start: 1, End: 3}},
		},
		{
			"attached unit followed by a hyphen", "5km-x", "5", 0,
			boundary{Index: 0, Unit: unitMatch{Word: "km", Start: 1, End: 3}},
		},
		{"currency before punctuation", "cost $3.50!", "$3.50", 0, boundary{Index: 5, Currency: "dollars"}},
		{"plain number before punctuation", "cost 3.50!", "3.50", 0, boundary{Index: 5, Whole: true}},
		{"trailing letters", "5x", "5", 0, boundary{Index: 0}},
		{"hyphen suffix", "5-ish", "5", 0, boundary{Index: 0}},
		{"minus after whitespace", " -5 km", "5", 0, boundary{Index: 2, Whole: true}},
		{"minus at text start", "-5 km", "5", 0, boundary{Index: 1, Whole: true}},
		{"minus inside a word", "a-5 km", "5", 0, boundary{Index: 2}},
		{"second occurrence", "1 mile and 1 more mile", "1", 1, boundary{Index: 11, Whole: true}},
		{"not found", "1 mile", "7", 0, boundary{Index: -1}},
		{"search start past end", "1 mile", "1", 10, boundary{Index: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Default().newScan(tt.text).classifyBoundary(tt.needle, tt.searchStart)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBoundaryAccepted(t *testing.T) {
	assert.True(t, boundary{Index: 0, Whole: true}.accepted())
	assert.True(t, boundary{Index: 0, Currency: "dollars"}.accepted())
	assert.True(t, boundary{Index: 0, Unit: unitMatch{Word: "km"}}.accepted())
	assert.False(t, boundary{Index: 3}.accepted())
	assert.False(t, boundary{Index: -1, Whole: true}.accepted())
}

func TestRepeatedLiteralsClassifiedIndependently(t *testing.T) {
	s := Default().newScan("foo1 and 1 km")

	first := s.classifyBoundary("1", 0)
	assert.Equal(t, 3, first.Index)
	assert.False(t, first.accepted())

	second := s.classifyBoundary("1", first.Index+1)
	assert.Equal(t, 9, second.Index)
	assert.True(t, second.Whole)
}
