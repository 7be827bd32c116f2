package timeline

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Sumatoshi-tech/schedline/pkg/safeconv"
	"github.com/Sumatoshi-tech/schedline/pkg/schedlog"
)

// ErrUnparseableID is returned by ParseEntityID for ids that are not integers.
var ErrUnparseableID = errors.New("entity id is not an integer")

// IdentitySource names the column that identifies the entity that just ran.
type IdentitySource int

// Identity sources for run intervals.
const (
	IdentityGeneric IdentitySource = iota
	IdentityPredecessor
)

// String returns the column name behind the source.
func (s IdentitySource) String() string {
	if s == IdentityPredecessor {
		return schedlog.ColumnPredecessor
	}

	return schedlog.ColumnEntity
}

// IdentityPolicy is resolved once per batch and applied to every boundary event.
type IdentityPolicy struct {
	Source IdentitySource
}

// ResolveIdentity picks the predecessor column when any boundary event carries
// it, and the generic entity column otherwise.
func ResolveIdentity(events []NormalizedEvent) IdentityPolicy {
	for _, ev := range events {
		if ev.Kind == KindBoundary && ev.PredecessorID.Valid {
			return IdentityPolicy{Source: IdentityPredecessor}
		}
	}

	return IdentityPolicy{Source: IdentityGeneric}
}

// EntityOf returns the identity column selected by the policy.
func (p IdentityPolicy) EntityOf(ev NormalizedEvent) schedlog.Optional[string] {
	if p.Source == IdentityPredecessor {
		return ev.PredecessorID
	}

	return ev.EntityID
}

// TickIdentitySource names the column that identifies the woken entity.
type TickIdentitySource int

// Identity sources for wake ticks.
const (
	TickIdentityNone TickIdentitySource = iota
	TickIdentityGeneric
	TickIdentitySuccessor
)

// String returns the column name behind the source, or "none".
func (s TickIdentitySource) String() string {
	switch s {
	case TickIdentityGeneric:
		return schedlog.ColumnEntity
	case TickIdentitySuccessor:
		return schedlog.ColumnSuccessor
	default:
		return "none"
	}
}

// ResolveTickIdentity prefers the generic entity column, then the successor
// column, looking only at wake events. It returns TickIdentityNone when
// neither is populated anywhere in the batch.
func ResolveTickIdentity(events []NormalizedEvent) TickIdentitySource {
	successor := false

	for _, ev := range events {
		if ev.Kind != KindWake {
			continue
		}

		if ev.EntityID.Valid {
			return TickIdentityGeneric
		}

		if ev.SuccessorID.Valid {
			successor = true
		}
	}

	if successor {
		return TickIdentitySuccessor
	}

	return TickIdentityNone
}

// ParseEntityID coerces a raw id to an integer. Integral floats such as "7.0"
// are accepted because tabular tools often widen id columns with gaps.
func ParseEntityID(raw string) (int64, error) {
	s := strings.TrimSpace(raw)

	if id, err := strconv.ParseInt(s, 10, 64); err == nil {
		return id, nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnparseableID, raw)
	}

	id, ok := safeconv.FloatToInt64(f)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnparseableID, raw)
	}

	return id, nil
}
