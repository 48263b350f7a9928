// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/numdict/pkg/types"
)

func TestDedupe(t *testing.T) {
	in := []types.MatchRecord{
		rec("5 km", 0, "km"),
		rec("3", 10, ""),
		rec("5 KM", 20, "KM"),
		rec("5  km", 30, "km"),
		rec("3", 40, ""),
		rec("4 km", 50, "km"),
	}
	want := []types.MatchRecord{
		rec("5 km", 0, "km"),
		rec("3", 10, ""),
		rec("4 km", 50, "km"),
	}
	assert.Equal(t, want, Dedupe(in))
}

func TestDedupeEmpty(t *testing.T) {
	assert.Empty(t, Dedupe(nil))
}

func TestDedupeKey(t *testing.T) {
	assert.Equal(t, "5 km", DedupeKey("5\tKM"))
	assert.Equal(t, DedupeKey("1 More  Mile"), DedupeKey("1 more mile"))
	assert.NotEqual(t, DedupeKey("5 km"), DedupeKey("5 m"))
}
