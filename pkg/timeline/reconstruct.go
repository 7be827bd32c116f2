package timeline

import "github.com/Sumatoshi-tech/schedline/pkg/units"

// RunInterval is a closed span during which one entity held the processor.
// DurationMs equals EndMs - StartMs and is always positive.
type RunInterval struct {
	EntityID   int64   `json:"pid" yaml:"pid"`
	StartMs    float64 `json:"start_ms" yaml:"start_ms"`
	EndMs      float64 `json:"end_ms" yaml:"end_ms"`
	DurationMs float64 `json:"duration_ms" yaml:"duration_ms"`
}

// Reconstruct turns boundary events into run intervals for the entity that
// just finished running. Each boundary at time t with prior run d yields
// [max(0, t-d), t]. Candidates with non-positive duration and rows whose
// identity is absent or not an integer are dropped and counted in diag.
// Bounds are computed in nanoseconds so equal run times yield equal durations
// wherever they fall on the time axis.
//
// Overlapping intervals of one entity are kept as they are.
func Reconstruct(events []NormalizedEvent, policy IdentityPolicy, diag *Diagnostics) []RunInterval {
	var intervals []RunInterval

	for _, ev := range events {
		if ev.Kind != KindBoundary {
			continue
		}

		endNs := float64(ev.RelativeNs)
		startNs := max(0, endNs-ev.PriorRunNs.OrElse(0))
		durationNs := endNs - startNs

		if durationNs <= 0 {
			diag.Add(DropDegenerateInterval)

			continue
		}

		raw, ok := policy.EntityOf(ev).Get()
		if !ok {
			diag.Add(DropMissingIdentity)

			continue
		}

		id, err := ParseEntityID(raw)
		if err != nil {
			diag.Add(DropUnparseableIdentity)

			continue
		}

		intervals = append(intervals, RunInterval{
			EntityID:   id,
			StartMs:    units.NsToMs(startNs),
			EndMs:      units.NsToMs(endNs),
			DurationMs: units.NsToMs(durationNs),
		})
	}

	return intervals
}
