package timeline

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/Sumatoshi-tech/schedline/pkg/alg/mapx"
	"github.com/Sumatoshi-tech/schedline/pkg/units"
)

// DefaultTopN is the number of entities ranked when no explicit list is given.
const DefaultTopN = 4

// SelectionSource records how a Selection was made.
type SelectionSource string

// Selection sources.
const (
	SelectionExplicit SelectionSource = "explicit"
	SelectionTopN     SelectionSource = "top_n"
)

// Selection is the ordered set of entities chosen for detailed reporting.
type Selection struct {
	IDs    []int64         `json:"pids" yaml:"pids"`
	Source SelectionSource `json:"source" yaml:"source"`
	// N is the requested count; zero for explicit selections.
	N int `json:"n" yaml:"n"`
}

// Contains reports whether id is part of the selection.
func (s Selection) Contains(id int64) bool {
	return slices.Contains(s.IDs, id)
}

// Select returns explicit verbatim when it is non-empty. Otherwise it ranks
// entities by total run time, descending, breaking ties by lower id, and
// keeps the first n. Totals are compared in whole nanoseconds so float
// rounding never decides a tie. Fewer than n entities are returned as they are.
func Select(intervals []RunInterval, explicit []int64, n int) Selection {
	if len(explicit) > 0 {
		return Selection{
			IDs:    slices.Clone(explicit),
			Source: SelectionExplicit,
		}
	}

	sel := Selection{Source: SelectionTopN, N: n}
	if n <= 0 || len(intervals) == 0 {
		return sel
	}

	totals := mapx.SumBy(intervals,
		func(iv RunInterval) int64 { return iv.EntityID },
		func(iv RunInterval) int64 { return units.MsToNs(iv.DurationMs) },
	)

	ranked := mapx.SortedKeys(totals)
	slices.SortStableFunc(ranked, func(a, b int64) int {
		return cmp.Compare(totals[b], totals[a])
	})

	sel.IDs = ranked[:min(n, len(ranked))]

	return sel
}

// ParseIDList parses a comma-separated id list. Tokens that are not
// non-negative integers are returned in rejected and otherwise ignored.
func ParseIDList(s string) (ids []int64, rejected []string) {
	for token := range strings.SplitSeq(s, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		id, err := strconv.ParseUint(token, 10, 63)
		if err != nil {
			rejected = append(rejected, token)

			continue
		}

		ids = append(ids, int64(id))
	}

	return ids, rejected
}
