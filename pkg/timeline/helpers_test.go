package timeline_test

import (
	"github.com/Sumatoshi-tech/schedline/pkg/schedlog"
)

// row builds raw events fluently for table tests.
type row struct {
	ev schedlog.RawEvent
}

func at(ts int64, kind string) *row {
	return &row{ev: schedlog.RawEvent{
		TimeNs: schedlog.Some(ts),
		Kind:   schedlog.Some(kind),
	}}
}

func (r *row) pid(id string) *row {
	r.ev.EntityID = schedlog.Some(id)

	return r
}

func (r *row) prev(id string) *row {
	r.ev.PredecessorID = schedlog.Some(id)

	return r
}

func (r *row) next(id string) *row {
	r.ev.SuccessorID = schedlog.Some(id)

	return r
}

func (r *row) ran(ns float64) *row {
	r.ev.PriorRunNs = schedlog.Some(ns)

	return r
}

func batch(rows ...*row) []schedlog.RawEvent {
	out := make([]schedlog.RawEvent, len(rows))
	for i, r := range rows {
		out[i] = r.ev
	}

	return out
}
