// Package timeline reconstructs per-entity run intervals from a batch of
// scheduler events and summarizes them.
//
// The stages run strictly in order, each consuming the previous stage's
// output without modifying it:
//
//	Normalize -> Reconstruct / CollectTicks -> Select -> Summarize
//
// A batch is finite and already loaded; nothing here blocks or keeps state
// between calls.
package timeline

import "github.com/Sumatoshi-tech/schedline/pkg/schedlog"

// Options parameterizes a single-batch run.
type Options struct {
	// TopN is the ranked selection size when ExplicitIDs is empty.
	TopN int
	// ExplicitIDs, when non-empty, is used as the selection verbatim.
	ExplicitIDs []int64
}

// DefaultOptions ranks the top DefaultTopN entities.
func DefaultOptions() Options {
	return Options{TopN: DefaultTopN}
}

// Result is everything derived from one batch.
type Result struct {
	// Events is the number of rows that survived normalization.
	Events       int
	Identity     IdentityPolicy
	TickIdentity TickIdentitySource
	Intervals    []RunInterval
	Ticks        []Tick
	Selection    Selection
	// Summaries covers every entity seen in the batch, ordered by id.
	Summaries   []EntitySummary
	Diagnostics *Diagnostics
}

// Run executes the full pipeline over one batch.
func Run(raw []schedlog.RawEvent, opts Options) (*Result, error) {
	diag := NewDiagnostics()

	events, err := Normalize(raw, diag)
	if err != nil {
		return nil, err
	}

	identity := ResolveIdentity(events)
	tickIdentity := ResolveTickIdentity(events)

	intervals := Reconstruct(events, identity, diag)
	ticks := CollectTicks(events, tickIdentity, diag)
	selection := Select(intervals, opts.ExplicitIDs, opts.TopN)

	return &Result{
		Events:       len(events),
		Identity:     identity,
		TickIdentity: tickIdentity,
		Intervals:    intervals,
		Ticks:        ticks,
		Selection:    selection,
		Summaries:    Summarize(intervals, ticks, nil),
		Diagnostics:  diag,
	}, nil
}

// SelectedSummaries returns summaries restricted to the selection, in selection order.
func (r *Result) SelectedSummaries() []EntitySummary {
	return Summarize(r.Intervals, r.Ticks, &r.Selection)
}

// IntervalsFor returns the intervals of one entity in reconstruction order.
func (r *Result) IntervalsFor(id int64) []RunInterval {
	var out []RunInterval

	for _, iv := range r.Intervals {
		if iv.EntityID == id {
			out = append(out, iv)
		}
	}

	return out
}

// TicksFor returns the wake ticks of one entity in event order.
func (r *Result) TicksFor(id int64) []Tick {
	var out []Tick

	for _, tk := range r.Ticks {
		if tk.EntityID == id {
			out = append(out, tk)
		}
	}

	return out
}

// TotalRunMs is the sum of all interval durations in the batch.
func (r *Result) TotalRunMs() float64 {
	return totalRunMs(r.Intervals)
}
