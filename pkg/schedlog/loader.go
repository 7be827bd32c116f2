package schedlog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/Sumatoshi-tech/schedline/pkg/safeconv"
)

// missingTokens are cell values treated as absent in addition to the empty string.
var missingTokens = map[string]struct{}{
	"nan":  {},
	"na":   {},
	"null": {},
	"none": {},
	"<na>": {},
}

// columnIndex maps known column names to their position in the header; -1 when absent.
type columnIndex struct {
	time, entity, predecessor, successor, kind, wait, priorRun int
}

// ReadCSV parses a scheduler log from r. The source name only decorates errors.
// It fails with [*SchemaError] when the header lacks the time column.
func ReadCSV(r io.Reader, source string) ([]RawEvent, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &SchemaError{Source: source, Column: ColumnTime, Err: ErrEmptyInput}
	}

	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", source, err)
	}

	idx := indexColumns(header)
	if idx.time < 0 {
		return nil, &SchemaError{Source: source, Column: ColumnTime}
	}

	var events []RawEvent

	for {
		record, readErr := reader.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}

		if readErr != nil {
			return nil, fmt.Errorf("read %s: %w", source, readErr)
		}

		events = append(events, parseRecord(record, idx))
	}

	return events, nil
}

func indexColumns(header []string) columnIndex {
	idx := columnIndex{-1, -1, -1, -1, -1, -1, -1}

	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))) {
		case ColumnTime:
			idx.time = i
		case ColumnEntity:
			idx.entity = i
		case ColumnPredecessor:
			idx.predecessor = i
		case ColumnSuccessor:
			idx.successor = i
		case ColumnKind:
			idx.kind = i
		case ColumnWait:
			idx.wait = i
		case ColumnPriorRun:
			idx.priorRun = i
		}
	}

	return idx
}

func parseRecord(record []string, idx columnIndex) RawEvent {
	return RawEvent{
		TimeNs:        parseTimestamp(cell(record, idx.time)),
		EntityID:      parseText(cell(record, idx.entity)),
		PredecessorID: parseText(cell(record, idx.predecessor)),
		SuccessorID:   parseText(cell(record, idx.successor)),
		Kind:          parseText(cell(record, idx.kind)),
		WaitNs:        parseNumber(cell(record, idx.wait)),
		PriorRunNs:    parseNumber(cell(record, idx.priorRun)),
	}
}

func cell(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}

	return strings.TrimSpace(record[i])
}

func isMissing(s string) bool {
	if s == "" {
		return true
	}

	_, ok := missingTokens[strings.ToLower(s)]

	return ok
}

func parseText(s string) Optional[string] {
	if isMissing(s) {
		return None[string]()
	}

	return Some(s)
}

func parseNumber(s string) Optional[float64] {
	if isMissing(s) {
		return None[float64]()
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return None[float64]()
	}

	return Some(v)
}

// parseTimestamp accepts plain integers and integral floats such as "1.7e18".
func parseTimestamp(s string) Optional[int64] {
	if isMissing(s) {
		return None[int64]()
	}

	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Some(v)
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return None[int64]()
	}

	v, ok := safeconv.FloatToInt64(f)
	if !ok {
		return None[int64]()
	}

	return Some(v)
}
