package timeline

import (
	"github.com/Sumatoshi-tech/schedline/pkg/alg/mapx"
	"github.com/Sumatoshi-tech/schedline/pkg/alg/stats"
	"github.com/Sumatoshi-tech/schedline/pkg/units"
)

// EntitySummary holds per-entity totals over intervals and ticks.
// Missing data on either side is reported as zeros, never as absent values.
type EntitySummary struct {
	EntityID       int64   `json:"pid" yaml:"pid"`
	TotalRunMs     float64 `json:"run_ms" yaml:"run_ms"`
	IntervalCount  int     `json:"num_runs" yaml:"num_runs"`
	MeanIntervalMs float64 `json:"avg_run_ms" yaml:"avg_run_ms"`
	TickCount      int     `json:"wakes" yaml:"wakes"`

	MedianIntervalMs float64 `json:"median_run_ms" yaml:"median_run_ms"`
	MaxIntervalMs    float64 `json:"max_run_ms" yaml:"max_run_ms"`
	// RunShare is this entity's fraction of all run time in the batch.
	RunShare float64 `json:"run_share" yaml:"run_share"`
}

// Summarize joins intervals and ticks on entity id (full outer join).
//
// Without a selection every entity seen on either side gets a row, ordered by
// id. With a selection, rows follow selection order, repeated ids collapse to
// one row, and selected entities without data get a zero row.
func Summarize(intervals []RunInterval, ticks []Tick, sel *Selection) []EntitySummary {
	durations := make(map[int64][]float64)
	for _, iv := range intervals {
		durations[iv.EntityID] = append(durations[iv.EntityID], iv.DurationMs)
	}

	tickCounts := mapx.SumBy(ticks,
		func(tk Tick) int64 { return tk.EntityID },
		func(Tick) int { return 1 },
	)

	batchRunMs := totalRunMs(intervals)

	var ids []int64

	if sel != nil {
		ids = mapx.Unique(sel.IDs)
	} else {
		seen := make(map[int64]struct{}, len(durations)+len(tickCounts))
		for id := range durations {
			seen[id] = struct{}{}
		}

		for id := range tickCounts {
			seen[id] = struct{}{}
		}

		ids = mapx.SortedKeys(seen)
	}

	out := make([]EntitySummary, 0, len(ids))
	for _, id := range ids {
		out = append(out, summarizeEntity(id, durations[id], tickCounts[id], batchRunMs))
	}

	return out
}

func summarizeEntity(id int64, durations []float64, ticks int, batchRunMs float64) EntitySummary {
	row := EntitySummary{
		EntityID:      id,
		IntervalCount: len(durations),
		TickCount:     ticks,
	}

	if len(durations) == 0 {
		return row
	}

	ns := wholeNs(durations)
	row.TotalRunMs = units.NsToMs(stats.Sum(ns))
	row.MeanIntervalMs = units.NsToMs(stats.Mean(ns))
	row.MedianIntervalMs = stats.Median(durations)
	row.MaxIntervalMs = stats.Max(durations)

	if batchRunMs > 0 {
		row.RunShare = row.TotalRunMs / batchRunMs
	}

	return row
}

// wholeNs maps durations to whole nanoseconds. Sums over the result are exact,
// keeping float noise such as 0.30000000000000004 out of reported totals.
func wholeNs(durations []float64) []float64 {
	ns := make([]float64, len(durations))
	for i, d := range durations {
		ns[i] = float64(units.MsToNs(d))
	}

	return ns
}

func totalRunMs(intervals []RunInterval) float64 {
	durations := make([]float64, len(intervals))
	for i, iv := range intervals {
		durations[i] = iv.DurationMs
	}

	return units.NsToMs(stats.Sum(wholeNs(durations)))
}
