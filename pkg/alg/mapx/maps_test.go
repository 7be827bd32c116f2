package mapx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortedKeys(t *testing.T) {
	t.Parallel()

	t.Run("nil_returns_nil", func(t *testing.T) {
		t.Parallel()

		got := SortedKeys[int, any](nil)
		assert.Nil(t, got)
	})

	t.Run("empty_returns_empty", func(t *testing.T) {
		t.Parallel()

		got := SortedKeys(map[int64]string{})
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("int_keys_sorted", func(t *testing.T) {
		t.Parallel()

		m := map[int64]string{3: "c", 1: "a", 2: "b"}
		assert.Equal(t, []int64{1, 2, 3}, SortedKeys(m))
	})
}

type row struct {
	id  int
	val float64
}

func TestSumBy(t *testing.T) {
	t.Parallel()

	rows := []row{{1, 1.5}, {2, 3}, {1, 2.5}}
	got := SumBy(rows, func(r row) int { return r.id }, func(r row) float64 { return r.val })

	assert.InDelta(t, 4.0, got[1], 1e-9)
	assert.InDelta(t, 3.0, got[2], 1e-9)
}
