// Package schedlog reads captured scheduler event logs into raw events.
//
// Two tabular shapes are accepted:
//
//	ts_ns,pid,event,wait_ns,run_prev_ns
//	ts_ns,prev_pid,next_pid,event,wait_ns,run_prev_ns
//
// Only ts_ns is mandatory. Every other column may be missing entirely or
// empty on individual rows; such cells surface as absent [Optional] values.
package schedlog

// Column names understood by the loader.
const (
	ColumnTime        = "ts_ns"
	ColumnEntity      = "pid"
	ColumnPredecessor = "prev_pid"
	ColumnSuccessor   = "next_pid"
	ColumnKind        = "event"
	ColumnWait        = "wait_ns"
	ColumnPriorRun    = "run_prev_ns"
)

// RawEvent is one row of a scheduler log as read from disk.
//
// Identity columns keep their raw text: the timeline engine decides which
// column identifies an entity and coerces it to an integer, dropping rows it
// cannot parse.
type RawEvent struct {
	// TimeNs is nanoseconds since an arbitrary epoch.
	TimeNs        Optional[int64]
	EntityID      Optional[string]
	PredecessorID Optional[string]
	SuccessorID   Optional[string]
	Kind          Optional[string]
	// WaitNs is carried through for completeness; the timeline does not use it.
	WaitNs Optional[float64]
	// PriorRunNs is how long the predecessor ran before this event, in nanoseconds.
	PriorRunNs Optional[float64]
}
