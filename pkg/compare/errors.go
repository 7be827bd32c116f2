package compare

import (
	"errors"
	"fmt"
)

// ErrDuplicateLabel is returned when two inputs share a label; per-label
// outputs and the alignment view are keyed by label.
var ErrDuplicateLabel = errors.New("duplicate label")

// ErrInvalidLabel is returned for labels that cannot name output files: empty
// labels, labels with path separators or dot segments, and [AlignmentLabel].
var ErrInvalidLabel = errors.New("invalid label")

// LabelMismatchError reports that the number of labels differs from the
// number of input sources. It aborts the whole invocation.
type LabelMismatchError struct {
	Labels int
	Inputs int
}

func (e *LabelMismatchError) Error() string {
	return fmt.Sprintf("got %d label(s) for %d input(s): labels must match inputs one to one", e.Labels, e.Inputs)
}

// BatchError wraps the fatal error of one labeled batch.
type BatchError struct {
	Label string
	Err   error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("batch %q: %v", e.Label, e.Err)
}

func (e *BatchError) Unwrap() error {
	return e.Err
}
