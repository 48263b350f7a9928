// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/numdict/internal/lexicon"
	"github.com/pdiddy/numdict/pkg/types"
)

func rec(match string, start int, units string) types.MatchRecord {
	return types.MatchRecord{Match: match, StartIndex: start, Length: len(match), Units: units}
}

func money(match string, start int, name, code string) types.MatchRecord {
	return types.MatchRecord{Match: match, StartIndex: start, Length: len(match), Units: name, Currency: code}
}

func TestScan(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []types.MatchRecord
	}{
		{
			name: "number and unit",
			text: "The car went 5 km yesterday.",
			want: []types.MatchRecord{rec("5 km", 13, "km")},
		},
		{
			name: "currency amount",
			text: "It cost $3.50 for lunch.",
			want: []types.MatchRecord{money("$3.50", 8, "dollars", "USD")},
		},
		{
			name: "currency before a full stop",
			text: "It cost $3.50.",
			want: []types.MatchRecord{money("$3.50", 8, "dollars", "USD")},
		},
		{
			name: "euro before an exclamation mark",
			text: "Only €20!",
			want: []types.MatchRecord{money("€20", 5, "euros", "EUR")},
		},
		{
			name: "digits glued to words",
			text: "foo123bar is not a number",
			want: nil,
		},
		{
			name: "skipped word between number and unit",
			text: "1 mile and 1 more mile",
			want: []types.MatchRecord{rec("1 mile", 0, "mile"), rec("1 more mile", 11, "mile")},
		},
		{
			name: "plural base unit",
			text: "5 kilograms of flour",
			want: []types.MatchRecord{rec("5 kilograms", 0, "kilograms")},
		},
		{
			name: "prefix composition",
			text: "Generated 7 kilojoules",
			want: []types.MatchRecord{rec("7 kilojoules", 10, "kilojoules")},
		},
		{
			name: "attached unit keeps its case",
			text: "5KM run",
			want: []types.MatchRecord{rec("5KM", 0, "KM")},
		},
		{
			name: "two-word unit preferred",
			text: "Heat to 3 degrees celsius now",
			want: []types.MatchRecord{rec("3 degrees celsius", 8, "degrees celsius")},
		},
		{
			name: "number without unit",
			text: "I have 3 cats",
			want: []types.MatchRecord{rec("3", 7, "")},
		},
		{
			name: "ratio",
			text: "Add 1/2 cup",
			want: []types.MatchRecord{rec("1/2", 4, "")},
		},
		{
			name: "hyphenated range is rejected",
			text: "range 3-5 km",
			want: nil,
		},
		{
			name: "negative number",
			text: "Temperature fell to -5 kelvin.",
			want: []types.MatchRecord{rec("-5 kelvin", 20, "kelvin")},
		},
		{
			name: "repeated literal uses its own context",
			text: "1 and 1 km",
			want: []types.MatchRecord{rec("1", 0, ""), rec("1 km", 6, "km")},
		},
		{
			name: "attached unit keeps its span when glued to more text",
			text: "5km5km",
			want: []types.MatchRecord{rec("5km", 0, "km")},
		},
		{
			name: "empty text",
			text: "",
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Scan(tt.text)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScanSkipAllowance(t *testing.T) {
	e := New(nil, WithSkipAllowance(0))
	assert.Equal(t, 0, e.SkipAllowance())
	assert.Equal(t,
		[]types.MatchRecord{rec("1 mile", 0, "mile"), rec("1", 11, "")},
		e.Scan("1 mile and 1 more mile"))

	assert.Equal(t, 0, New(nil, WithSkipAllowance(-3)).SkipAllowance())
	assert.Equal(t, DefaultSkipAllowance, New(nil).SkipAllowance())
}

func TestScanCustomLexicon(t *testing.T) {
	lex := lexicon.New(lexicon.Vocabulary{SimpleUnits: []string{"furlong"}})
	e := New(lex)
	assert.Same(t, lex, e.Lexicon())

	assert.Equal(t,
		[]types.MatchRecord{rec("3 furlongs", 0, "furlongs")},
		e.Scan("3 furlongs"))
	assert.Equal(t,
		[]types.MatchRecord{rec("5", 0, "")},
		e.Scan("5 km"))
}

func TestScanUnique(t *testing.T) {
	got := Default().ScanUnique("1 mile and 1 mile and 1 MILE")
	require.Len(t, got, 1)
	assert.Equal(t, rec("1 mile", 0, "mile"), got[0])
}

func TestScanInvariants(t *testing.T) {
	corpus := []string{
		"The car went 5 km yesterday.",
		"It cost $3.50, then -€4 and £12.99!",
		"Mix 1/2 cup with 250 g of sugar at 180 degrees celsius.",
		"Between 10 and 20 square feet, roughly 2 acres.",
		"1 mile and 1 more mile and 1\nmile",
		"   7 kilojoules\t8 megawatts 9 kWh   ",
		"no numbers at all",
	}
	for _, text := range corpus {
		t.Run(text, func(t *testing.T) {
			first := Scan(text)
			second := Scan(text)
			assert.Equal(t, first, second, "scan must be idempotent")

			last := -1
			for _, r := range first {
				require.GreaterOrEqual(t, r.StartIndex, 0)
				require.LessOrEqual(t, r.End(), len(text))
				assert.Equal(t, r.Match, text[r.StartIndex:r.End()])
				assert.Equal(t, len(r.Match), r.Length)
				assert.GreaterOrEqual(t, r.StartIndex, last, "records must be in document order")
				last = r.StartIndex
			}
		})
	}
}

func TestScanConcurrent(t *testing.T) {
	text := "It cost $3.50 to drive 5 km and 1 more mile at 3 degrees celsius."
	want := Scan(text)
	require.NotEmpty(t, want)

	var wg sync.WaitGroup
	results := make([][]types.MatchRecord, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Default().Scan(text)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}
