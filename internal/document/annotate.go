// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package document

import (
	"context"
	"time"

	"github.com/pdiddy/numdict/internal/extract"
	"github.com/pdiddy/numdict/internal/logging"
	"github.com/pdiddy/numdict/internal/metrics"
	"github.com/pdiddy/numdict/pkg/types"
)

// Annotator scans document segments. Zero fields fall back to the default
// extractor and logger; a nil Metrics records nothing.
type Annotator struct {
	Extractor *extract.Extractor
	Logger    logging.Logger
	Metrics   *metrics.Metrics
}

// Annotate scans each segment in order and tags the matches with the
// owning segment. Match offsets index into the segment's Text. The
// context is checked between segments.
func (a *Annotator) Annotate(ctx context.Context, segments []types.Segment) ([]types.Annotation, error) {
	ex := a.Extractor
	if ex == nil {
		ex = extract.Default()
	}
	log := a.Logger
	if log == nil {
		log = logging.Default()
	}

	start := time.Now()
	var out []types.Annotation
	for _, seg := range segments {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		records := ex.Scan(seg.Text)
		a.Metrics.ObserveScan(records)
		for _, r := range records {
			out = append(out, types.Annotation{MatchRecord: r, Segment: seg.Index, Path: seg.Path})
		}
	}
	log.Debug("annotated document",
		logging.Int("segments", len(segments)),
		logging.Int("matches", len(out)),
		logging.Duration("elapsed", time.Since(start)),
	)
	return out, nil
}

// AnnotateDocument splits src in the given format and annotates it.
func (a *Annotator) AnnotateDocument(ctx context.Context, format Format, src []byte) ([]types.Segment, []types.Annotation, error) {
	segs, err := Segments(format, src)
	if err != nil {
		return nil, nil, err
	}
	anns, err := a.Annotate(ctx, segs)
	return segs, anns, err
}

// Unique keeps the first annotation for each distinct normalized match
// across the whole document, preserving order.
func Unique(anns []types.Annotation) []types.Annotation {
	seen := make(map[string]struct{}, len(anns))
	out := make([]types.Annotation, 0, len(anns))
	for _, a := range anns {
		key := extract.DedupeKey(a.Match)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, a)
	}
	return out
}
