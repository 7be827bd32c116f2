package schedlog

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is the cause of a [SchemaError] for an input with no header row.
var ErrEmptyInput = errors.New("empty input")

// SchemaError reports that a batch lacks its mandatory time column.
// It is fatal for the affected batch only.
type SchemaError struct {
	Source string
	Column string
	// Err is the underlying cause, if any.
	Err error
}

func (e *SchemaError) Error() string {
	msg := "schema error: missing " + e.Column + " column"
	if e.Source != "" {
		msg = fmt.Sprintf("schema error: %s missing %s column", e.Source, e.Column)
	}

	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}
