package compare

import (
	"github.com/Sumatoshi-tech/schedline/pkg/alg/mapx"
	"github.com/Sumatoshi-tech/schedline/pkg/timeline"
)

// AlignedRow holds one entity's summary under every label. Labels where the
// entity never appeared have no entry; Get zero-fills them.
type AlignedRow struct {
	EntityID int64
	ByLabel  map[string]timeline.EntitySummary
}

// Get returns the entity's summary under a label, or a zero row.
func (r AlignedRow) Get(label string) timeline.EntitySummary {
	if s, ok := r.ByLabel[label]; ok {
		return s
	}

	return timeline.EntitySummary{EntityID: r.EntityID}
}

// Alignment joins per-label summaries on entity id.
type Alignment struct {
	// Labels in input order.
	Labels []string
	// Rows ordered by entity id.
	Rows []AlignedRow
}

// Align builds the cross-batch view. Every entity seen under any label gets a
// row. Entity ids are only compared, never reconciled: the same id in two
// batches may be unrelated processes.
func Align(results []LabelResult) Alignment {
	labels := make([]string, 0, len(results))
	rows := make(map[int64]map[string]timeline.EntitySummary)

	for _, lr := range results {
		if !lr.OK() {
			continue
		}

		labels = append(labels, lr.Label)

		for _, s := range lr.Result.Summaries {
			byLabel, ok := rows[s.EntityID]
			if !ok {
				byLabel = make(map[string]timeline.EntitySummary, len(results))
				rows[s.EntityID] = byLabel
			}

			byLabel[lr.Label] = s
		}
	}

	ids := mapx.SortedKeys(rows)
	out := make([]AlignedRow, 0, len(ids))

	for _, id := range ids {
		out = append(out, AlignedRow{EntityID: id, ByLabel: rows[id]})
	}

	return Alignment{Labels: labels, Rows: out}
}

// Restrict keeps only the rows whose entity is in ids.
func (a Alignment) Restrict(ids []int64) Alignment {
	keep := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		keep[id] = struct{}{}
	}

	rows := make([]AlignedRow, 0, len(keep))

	for _, row := range a.Rows {
		if _, ok := keep[row.EntityID]; ok {
			rows = append(rows, row)
		}
	}

	return Alignment{Labels: a.Labels, Rows: rows}
}

// SelectedUnion returns the union of every label's selection, ordered by id.
func SelectedUnion(results []LabelResult) []int64 {
	set := make(map[int64]struct{})

	for _, lr := range results {
		if !lr.OK() {
			continue
		}

		for _, id := range lr.Result.Selection.IDs {
			set[id] = struct{}{}
		}
	}

	return mapx.SortedKeys(set)
}
