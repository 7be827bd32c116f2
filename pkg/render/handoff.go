// Package render turns reconstructed timelines into drawable run-segment and
// tick lists, and draws them as HTML Gantt pages.
//
// Downsampling happens here and only here; the statistics in timeline results
// are always computed over the full interval set.
package render

import (
	"github.com/Sumatoshi-tech/schedline/pkg/timeline"
)

// Segment is one drawable run: a start offset and a length, both in ms.
type Segment struct {
	StartMs    float64 `json:"start_ms"`
	DurationMs float64 `json:"duration_ms"`
}

// EndMs returns the end of the segment.
func (s Segment) EndMs() float64 {
	return s.StartMs + s.DurationMs
}

// Track is everything drawn for one entity.
type Track struct {
	EntityID int64     `json:"pid"`
	Segments []Segment `json:"segments"`
	Ticks    []float64 `json:"ticks_ms"`
	// Total is the segment count before downsampling.
	Total int `json:"total_segments"`
}

// Downsampled reports whether some segments were left out of the drawing.
func (t Track) Downsampled() bool {
	return len(t.Segments) < t.Total
}

// Set is the rendering handoff for one labeled batch.
type Set struct {
	Label  string  `json:"label"`
	Tracks []Track `json:"tracks"`
}

// BuildSet extracts one track per entity id, in the order given. Ids with no
// intervals and no ticks still get an empty track. maxSegments > 0 caps the
// segments drawn per track.
func BuildSet(label string, res *timeline.Result, ids []int64, maxSegments int) Set {
	tracks := make([]Track, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))

	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}

		seen[id] = struct{}{}

		intervals := res.IntervalsFor(id)
		segments := make([]Segment, len(intervals))

		for i, iv := range intervals {
			segments[i] = Segment{StartMs: iv.StartMs, DurationMs: iv.DurationMs}
		}

		ticks := res.TicksFor(id)
		tickTimes := make([]float64, len(ticks))

		for i, tk := range ticks {
			tickTimes[i] = tk.TimeMs
		}

		tracks = append(tracks, Track{
			EntityID: id,
			Segments: Downsample(segments, maxSegments),
			Ticks:    tickTimes,
			Total:    len(segments),
		})
	}

	return Set{Label: label, Tracks: tracks}
}

// Downsample keeps at most limit segments by taking every k-th one, starting
// with the first. A limit of zero or less keeps everything. The input is not
// modified.
func Downsample(segments []Segment, limit int) []Segment {
	if limit <= 0 || len(segments) <= limit {
		return segments
	}

	stride := (len(segments) + limit - 1) / limit
	out := make([]Segment, 0, limit)

	for i := 0; i < len(segments); i += stride {
		out = append(out, segments[i])
	}

	return out
}
