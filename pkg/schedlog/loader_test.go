package schedlog_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/schedline/pkg/schedlog"
)

const minimalCSV = `ts_ns,pid,event,wait_ns,run_prev_ns
1000,7,EXEC,,
5001000,7,SWITCH,,5000000
5001000,9,WAKE,120,
`

const extendedCSV = `ts_ns,prev_pid,next_pid,event,wait_ns,run_prev_ns
100,3,4,switch,,250.0
200,nan,5,sched_switch,NaN,
`

func TestReadCSV_MinimalSchema(t *testing.T) {
	t.Parallel()

	events, err := schedlog.ReadCSV(strings.NewReader(minimalCSV), "minimal.csv")
	require.NoError(t, err)
	require.Len(t, events, 3)

	first := events[0]
	assert.Equal(t, schedlog.Some(int64(1000)), first.TimeNs)
	assert.Equal(t, schedlog.Some("7"), first.EntityID)
	assert.Equal(t, schedlog.Some("EXEC"), first.Kind)
	assert.False(t, first.PriorRunNs.Valid)
	assert.False(t, first.PredecessorID.Valid, "absent column must read as absent, not zero")
	assert.False(t, first.SuccessorID.Valid)

	assert.Equal(t, schedlog.Some(5_000_000.0), events[1].PriorRunNs)
	assert.Equal(t, schedlog.Some(120.0), events[2].WaitNs)
}

func TestReadCSV_ExtendedSchema(t *testing.T) {
	t.Parallel()

	events, err := schedlog.ReadCSV(strings.NewReader(extendedCSV), "extended.csv")
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, schedlog.Some("3"), events[0].PredecessorID)
	assert.Equal(t, schedlog.Some("4"), events[0].SuccessorID)
	assert.False(t, events[0].EntityID.Valid)
	assert.Equal(t, schedlog.Some(250.0), events[0].PriorRunNs)

	assert.False(t, events[1].PredecessorID.Valid, "nan cell is absent")
	assert.False(t, events[1].WaitNs.Valid)
	assert.False(t, events[1].PriorRunNs.Valid)
}

func TestReadCSV_MissingTimeColumn(t *testing.T) {
	t.Parallel()

	_, err := schedlog.ReadCSV(strings.NewReader("pid,event\n1,SWITCH\n"), "bad.csv")

	var schemaErr *schedlog.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, schedlog.ColumnTime, schemaErr.Column)
	assert.Equal(t, "bad.csv", schemaErr.Source)
}

func TestReadCSV_EmptyInput(t *testing.T) {
	t.Parallel()

	_, err := schedlog.ReadCSV(strings.NewReader(""), "empty.csv")
	require.ErrorIs(t, err, schedlog.ErrEmptyInput)

	var schemaErr *schedlog.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, schedlog.ColumnTime, schemaErr.Column)
	assert.Equal(t, "empty.csv", schemaErr.Source)
	assert.Equal(t, "schema error: empty.csv missing ts_ns column: empty input", err.Error())
}

func TestReadCSV_FloatTimestampsAndShortRows(t *testing.T) {
	t.Parallel()

	input := "TS_NS , PID,Event\n1.5e3,2\nabc,3,wake\n"

	events, err := schedlog.ReadCSV(strings.NewReader(input), "mixed.csv")
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, schedlog.Some(int64(1500)), events[0].TimeNs)
	assert.False(t, events[0].Kind.Valid, "short row leaves trailing columns absent")
	assert.False(t, events[1].TimeNs.Valid, "unparseable time is absent")
}

func TestFileSource_LZ4(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "heavy.csv.lz4")

	f, err := os.Create(path)
	require.NoError(t, err)

	zw := lz4.NewWriter(f)
	_, err = zw.Write([]byte(minimalCSV))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	src := schedlog.NewFileSource(path, nil)
	events, err := src.Load()
	require.NoError(t, err)
	assert.Len(t, events, 3)
	assert.Equal(t, path, src.Name())
}

func TestFileSource_Missing(t *testing.T) {
	t.Parallel()

	_, err := schedlog.NewFileSource(filepath.Join(t.TempDir(), "nope.csv"), nil).Load()
	require.Error(t, err)
}

func TestStem(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"light.csv":          "light",
		"runs/heavy.csv.lz4": "heavy",
		"/tmp/timeline":      "timeline",
		"trace.tar":          "trace.tar",
		"UPPER.CSV":          "UPPER",
		"nested/dir/x.y.csv": "x.y",
	}

	for in, want := range tests {
		assert.Equal(t, want, schedlog.Stem(in), in)
	}
}

func TestOptional(t *testing.T) {
	t.Parallel()

	v, ok := schedlog.None[int64]().Get()
	assert.False(t, ok)
	assert.Zero(t, v)
	assert.Equal(t, int64(3), schedlog.None[int64]().OrElse(3))
	assert.Equal(t, int64(5), schedlog.Some(int64(5)).OrElse(3))
}
