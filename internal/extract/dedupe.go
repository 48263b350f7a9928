// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"github.com/pdiddy/numdict/internal/lexicon"
	"github.com/pdiddy/numdict/pkg/types"
)

// Dedupe keeps the first record for each distinct normalized match text,
// preserving encounter order.
func Dedupe(records []types.MatchRecord) []types.MatchRecord {
	seen := make(map[string]struct{}, len(records))
	out := make([]types.MatchRecord, 0, len(records))
	for _, r := range records {
		key := DedupeKey(r.Match)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}
	return out
}

// DedupeKey returns the key under which two match texts are duplicates.
func DedupeKey(match string) string {
	return lexicon.Key(match)
}
