package timeline

// Tick is an instantaneous wake annotation for an entity.
type Tick struct {
	EntityID int64   `json:"pid" yaml:"pid"`
	TimeMs   float64 `json:"time_ms" yaml:"time_ms"`
}

// CollectTicks extracts wake ticks using the batch-wide identity source.
// TickIdentityNone yields no ticks: wake annotation is supplementary.
func CollectTicks(events []NormalizedEvent, source TickIdentitySource, diag *Diagnostics) []Tick {
	if source == TickIdentityNone {
		return nil
	}

	var ticks []Tick

	for _, ev := range events {
		if ev.Kind != KindWake {
			continue
		}

		field := ev.EntityID
		if source == TickIdentitySuccessor {
			field = ev.SuccessorID
		}

		raw, ok := field.Get()
		if !ok {
			diag.Add(DropTickMissingIdentity)

			continue
		}

		id, err := ParseEntityID(raw)
		if err != nil {
			diag.Add(DropTickUnparseableIdentity)

			continue
		}

		ticks = append(ticks, Tick{EntityID: id, TimeMs: ev.RelativeMs})
	}

	return ticks
}
