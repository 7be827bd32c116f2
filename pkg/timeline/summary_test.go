package timeline_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/schedline/pkg/timeline"
)

func TestSummarize_FullOuterJoin(t *testing.T) {
	t.Parallel()

	intervals := []timeline.RunInterval{iv(1, 0, 4), iv(1, 10, 2)}
	ticks := []timeline.Tick{{EntityID: 2, TimeMs: 3}, {EntityID: 2, TimeMs: 9}}

	got := timeline.Summarize(intervals, ticks, nil)
	require.Len(t, got, 2)

	runOnly := got[0]
	assert.Equal(t, int64(1), runOnly.EntityID)
	assert.InDelta(t, 6.0, runOnly.TotalRunMs, 1e-9)
	assert.Equal(t, 2, runOnly.IntervalCount)
	assert.InDelta(t, 3.0, runOnly.MeanIntervalMs, 1e-9)
	assert.Equal(t, 0, runOnly.TickCount)
	assert.InDelta(t, 3.0, runOnly.MedianIntervalMs, 1e-9)
	assert.InDelta(t, 4.0, runOnly.MaxIntervalMs, 1e-9)
	assert.InDelta(t, 1.0, runOnly.RunShare, 1e-9)

	wakeOnly := got[1]
	assert.Equal(t, int64(2), wakeOnly.EntityID)
	assert.Zero(t, wakeOnly.TotalRunMs)
	assert.Zero(t, wakeOnly.IntervalCount)
	assert.Zero(t, wakeOnly.MeanIntervalMs, "mean must be a numeric zero, not NaN")
	assert.Equal(t, 2, wakeOnly.TickCount)
}

func TestSummarize_OrderedByID(t *testing.T) {
	t.Parallel()

	intervals := []timeline.RunInterval{iv(30, 0, 1), iv(10, 1, 1)}
	ticks := []timeline.Tick{{EntityID: 20}}

	got := timeline.Summarize(intervals, ticks, nil)

	ids := make([]int64, len(got))
	for i, s := range got {
		ids[i] = s.EntityID
	}

	assert.Equal(t, []int64{10, 20, 30}, ids)
}

func TestSummarize_WithSelection(t *testing.T) {
	t.Parallel()

	intervals := []timeline.RunInterval{iv(1, 0, 4), iv(2, 4, 6)}
	sel := timeline.Selection{IDs: []int64{2, 99, 2}, Source: timeline.SelectionExplicit}

	got := timeline.Summarize(intervals, nil, &sel)
	require.Len(t, got, 2)

	assert.Equal(t, int64(2), got[0].EntityID)
	assert.InDelta(t, 0.6, got[0].RunShare, 1e-9)
	assert.Equal(t, int64(99), got[1].EntityID)
	assert.Zero(t, got[1].IntervalCount)
}

func TestSummarize_Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, timeline.Summarize(nil, nil, nil))
}

func TestCollectTicks(t *testing.T) {
	t.Parallel()

	t.Run("generic_preferred", func(t *testing.T) {
		t.Parallel()

		events := normalize(t,
			at(0, "WAKE").pid("9").next("10"),
			at(1_000_000, "wakeup").next("11"),
		)

		source := timeline.ResolveTickIdentity(events)
		require.Equal(t, timeline.TickIdentityGeneric, source)

		diag := timeline.NewDiagnostics()
		got := timeline.CollectTicks(events, source, diag)

		assert.Equal(t, []timeline.Tick{{EntityID: 9, TimeMs: 0}}, got)
		assert.Equal(t, 1, diag.Count(timeline.DropTickMissingIdentity))
	})

	t.Run("successor_fallback", func(t *testing.T) {
		t.Parallel()

		events := normalize(t,
			at(0, "SWITCH").pid("1").ran(1),
			at(2_000_000, "WAKE").next("11"),
		)

		source := timeline.ResolveTickIdentity(events)
		require.Equal(t, timeline.TickIdentitySuccessor, source)
		assert.Equal(t, "next_pid", source.String())

		got := timeline.CollectTicks(events, source, nil)
		assert.Equal(t, []timeline.Tick{{EntityID: 11, TimeMs: 2}}, got)
	})

	t.Run("no_identity_yields_empty", func(t *testing.T) {
		t.Parallel()

		events := normalize(t, at(0, "WAKE"), at(1, "WAKE"))

		source := timeline.ResolveTickIdentity(events)
		require.Equal(t, timeline.TickIdentityNone, source)
		assert.Empty(t, timeline.CollectTicks(events, source, nil))
	})

	t.Run("unparseable_dropped", func(t *testing.T) {
		t.Parallel()

		events := normalize(t, at(0, "WAKE").pid("x"), at(1, "WAKE").pid("3"))

		diag := timeline.NewDiagnostics()
		got := timeline.CollectTicks(events, timeline.ResolveTickIdentity(events), diag)

		require.Len(t, got, 1)
		assert.Equal(t, 1, diag.Count(timeline.DropTickUnparseableIdentity))
	})
}

func TestSummarize_TotalsCarryNoFloatNoise(t *testing.T) {
	t.Parallel()

	intervals := []timeline.RunInterval{iv(1, 0, 0.1), iv(1, 1, 0.2)}

	got := timeline.Summarize(intervals, nil, nil)
	require.Len(t, got, 1)

	assert.Equal(t, "0.3", strconv.FormatFloat(got[0].TotalRunMs, 'f', -1, 64))
	assert.Equal(t, "0.15", strconv.FormatFloat(got[0].MeanIntervalMs, 'f', -1, 64))
}
