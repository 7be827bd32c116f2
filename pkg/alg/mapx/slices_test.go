package mapx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnique(t *testing.T) {
	t.Parallel()

	t.Run("nil_returns_nil", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, Unique[int64](nil))
	})

	t.Run("keeps_first_occurrence_order", func(t *testing.T) {
		t.Parallel()

		got := Unique([]int64{5, 3, 5, 1, 3})
		assert.Equal(t, []int64{5, 3, 1}, got)
	})
}
