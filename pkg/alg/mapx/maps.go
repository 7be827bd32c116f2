// Package mapx provides generic map and slice helpers: keyed sums, sorted keys and de-duplication.
package mapx

import (
	"cmp"
	"slices"
)

// Numeric is the constraint for types that support the += operator.
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// SortedKeys returns the keys of m in sorted order.
// Returns nil for a nil map.
func SortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	if m == nil {
		return nil
	}

	keys := make([]K, 0, len(m))

	for k := range m {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	return keys
}

// SumBy totals valueFn over items, bucketed by keyFn.
func SumBy[K comparable, T any, V Numeric](items []T, keyFn func(T) K, valueFn func(T) V) map[K]V {
	sums := make(map[K]V)

	for _, item := range items {
		sums[keyFn(item)] += valueFn(item)
	}

	return sums
}
