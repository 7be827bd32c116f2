package timeline

import (
	"log/slog"
	"maps"
	"slices"
)

// DropReason names a category of discarded records.
type DropReason string

// Drop categories. None of them is fatal.
const (
	DropMissingTime             DropReason = "missing_time"
	DropMissingIdentity         DropReason = "missing_identity"
	DropUnparseableIdentity     DropReason = "unparseable_identity"
	DropDegenerateInterval      DropReason = "degenerate_interval"
	DropTickMissingIdentity     DropReason = "tick_missing_identity"
	DropTickUnparseableIdentity DropReason = "tick_unparseable_identity"
)

// Diagnostics counts dropped records per category for one batch.
// A nil *Diagnostics discards everything.
type Diagnostics struct {
	counts map[DropReason]int
}

// NewDiagnostics creates an empty counter set.
func NewDiagnostics() *Diagnostics {
	return &Diagnostics{counts: make(map[DropReason]int)}
}

// Add records one dropped record.
func (d *Diagnostics) Add(reason DropReason) {
	if d == nil {
		return
	}

	d.counts[reason]++
}

// Count returns how many records were dropped for reason.
func (d *Diagnostics) Count(reason DropReason) int {
	if d == nil {
		return 0
	}

	return d.counts[reason]
}

// Total returns the number of dropped records across all categories.
func (d *Diagnostics) Total() int {
	if d == nil {
		return 0
	}

	total := 0
	for _, n := range d.counts {
		total += n
	}

	return total
}

// Counts returns a copy of the non-zero counters.
func (d *Diagnostics) Counts() map[DropReason]int {
	if d == nil {
		return map[DropReason]int{}
	}

	return maps.Clone(d.counts)
}

// Reasons returns the categories with at least one drop, sorted by name.
func (d *Diagnostics) Reasons() []DropReason {
	if d == nil {
		return nil
	}

	return slices.Sorted(maps.Keys(d.counts))
}

// Emit logs one warning per category, never one per record.
func (d *Diagnostics) Emit(logger *slog.Logger, label string) {
	if logger == nil {
		logger = slog.Default()
	}

	for _, reason := range d.Reasons() {
		logger.Warn("records dropped",
			"label", label,
			"reason", string(reason),
			"count", d.counts[reason],
		)
	}
}
