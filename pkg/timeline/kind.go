package timeline

import (
	"strings"

	"github.com/Sumatoshi-tech/schedline/pkg/schedlog"
)

// Kind is the canonical classification of an event.
type Kind int

// Event classifications.
const (
	KindOther Kind = iota
	KindBoundary
	KindWake
	KindExec
	KindExit
)

// Substrings and exact tags recognized by ClassifyKind. Producers do not share
// a fixed vocabulary, so boundary and wake matching is by substring.
const (
	boundaryMarker = "switch"
	wakeMarker     = "wake"
	execTag        = "exec"
	exitTag        = "exit"
)

var kindNames = map[Kind]string{
	KindOther:    "OTHER",
	KindBoundary: "BOUNDARY",
	KindWake:     "WAKE",
	KindExec:     "EXEC",
	KindExit:     "EXIT",
}

// String returns the upper-case tag name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return kindNames[KindOther]
}

// ClassifyKind maps a raw event kind to its canonical tag, case-insensitively.
// An absent kind is OTHER.
func ClassifyKind(raw schedlog.Optional[string]) Kind {
	value, ok := raw.Get()
	if !ok {
		return KindOther
	}

	lc := strings.ToLower(strings.TrimSpace(value))

	switch {
	case strings.Contains(lc, boundaryMarker):
		return KindBoundary
	case strings.Contains(lc, wakeMarker):
		return KindWake
	case lc == execTag:
		return KindExec
	case lc == exitTag:
		return KindExit
	default:
		return KindOther
	}
}
