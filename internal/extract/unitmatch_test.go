// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchUnitWord(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		start  int
		skip   int
		want   unitMatch
		wantOK bool
	}{
		{"single word", "5 km", 1, 0, unitMatch{"km", 2, 4}, true},
		{"multi-word unit", "5 square feet of land", 1, 0, unitMatch{"square feet", 2, 13}, true},
		{"two words win over one", "3 degrees celsius", 1, 0, unitMatch{"degrees celsius", 2, 17}, true},
		{"falls back to one word", "3 degrees outside", 1, 0, unitMatch{"degrees", 2, 9}, true},
		{"slash in unit", "5 nautical mile/h", 1, 0, unitMatch{"nautical mile/h", 2, 17}, true},
		{"prefix composition", "7 kilojoules", 1, 0, unitMatch{"kilojoules", 2, 12}, true},
		{"long prefix composition", "7 megagrams", 1, 0, unitMatch{"megagrams", 2, 11}, true},
		{"case folded", "5 KM", 1, 0, unitMatch{"km", 2, 4}, true},
		{"whitespace run", "5   \n  km", 1, 0, unitMatch{"km", 7, 9}, true},
		{"no skip allowance", "5 more mile", 1, 0, unitMatch{}, false},
		{"one word skipped", "5 more mile", 1, 1, unitMatch{"mile", 7, 11}, true},
		{"two words is too many", "5 more than a mile", 1, 1, unitMatch{}, false},
		{"nothing after", "5 ", 1, 0, unitMatch{}, false},
		{"punctuation", "5 ... km", 1, 0, unitMatch{}, false},
		{"whole word only", "5 kmh", 1, 0, unitMatch{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Default().newScan(tt.text).matchUnitWord(tt.start, tt.skip)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScanStateIsPerText(t *testing.T) {
	e := Default()
	a := e.newScan("5 KM")
	b := e.newScan("5 ft")

	ua, ok := a.matchUnitWord(1, 0)
	assert.True(t, ok)
	ub, ok := b.matchUnitWord(1, 0)
	assert.True(t, ok)

	assert.Equal(t, "km", ua.Word)
	assert.Equal(t, "ft", ub.Word)
	assert.Equal(t, "5 km", a.norm)
	assert.Equal(t, "5 ft", b.norm)
}
