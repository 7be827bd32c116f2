package timeline

import (
	"github.com/Sumatoshi-tech/schedline/pkg/schedlog"
	"github.com/Sumatoshi-tech/schedline/pkg/units"
)

// NormalizedEvent is a raw event placed on the batch-relative time axis.
type NormalizedEvent struct {
	schedlog.RawEvent

	// RelativeNs is the distance from the earliest timestamp of the batch.
	RelativeNs int64
	RelativeMs float64
	Kind       Kind
}

// PriorRunMs returns the predecessor's run length in milliseconds.
func (e NormalizedEvent) PriorRunMs() schedlog.Optional[float64] {
	ns, ok := e.PriorRunNs.Get()
	if !ok {
		return schedlog.None[float64]()
	}

	return schedlog.Some(units.NsToMs(ns))
}

// Normalize classifies every event and rebases time on the earliest timestamp
// of the batch. Rows without a timestamp are dropped; when no row of a
// non-empty batch has one, it fails with [*schedlog.SchemaError].
func Normalize(raw []schedlog.RawEvent, diag *Diagnostics) ([]NormalizedEvent, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	origin, ok := minTime(raw)
	if !ok {
		return nil, &schedlog.SchemaError{Column: schedlog.ColumnTime}
	}

	out := make([]NormalizedEvent, 0, len(raw))

	for _, ev := range raw {
		ts, present := ev.TimeNs.Get()
		if !present {
			diag.Add(DropMissingTime)

			continue
		}

		out = append(out, NormalizedEvent{
			RawEvent:   ev,
			RelativeNs: ts - origin,
			RelativeMs: units.NsDeltaToMs(origin, ts),
			Kind:       ClassifyKind(ev.Kind),
		})
	}

	return out, nil
}

func minTime(raw []schedlog.RawEvent) (int64, bool) {
	var (
		origin int64
		found  bool
	)

	for _, ev := range raw {
		ts, ok := ev.TimeNs.Get()
		if !ok {
			continue
		}

		if !found || ts < origin {
			origin = ts
			found = true
		}
	}

	return origin, found
}
