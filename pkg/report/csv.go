package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Sumatoshi-tech/schedline/pkg/compare"
	"github.com/Sumatoshi-tech/schedline/pkg/timeline"
)

// CompareSummaryFileName is the cross-label summary CSV name.
const CompareSummaryFileName = "timeline_compare_summary.csv"

// SummaryColumns is the exact header of the per-label summary CSV.
var SummaryColumns = []string{"pid", "run_ms", "num_runs", "avg_run_ms", "wakes"}

// SummaryFileName is the per-label summary CSV name.
func SummaryFileName(label string) string {
	return fmt.Sprintf("timeline_%s_summary.csv", label)
}

func formatMs(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// WriteSummaryCSV writes one row per summary in the given order. Extended
// statistics are left out; the column set is fixed.
func WriteSummaryCSV(w io.Writer, summaries []timeline.EntitySummary) error {
	cw := csv.NewWriter(w)

	err := cw.Write(SummaryColumns)
	if err != nil {
		return fmt.Errorf("write summary header: %w", err)
	}

	for _, s := range summaries {
		err = cw.Write([]string{
			strconv.FormatInt(s.EntityID, 10),
			formatMs(s.TotalRunMs),
			strconv.Itoa(s.IntervalCount),
			formatMs(s.MeanIntervalMs),
			strconv.Itoa(s.TickCount),
		})
		if err != nil {
			return fmt.Errorf("write summary row %d: %w", s.EntityID, err)
		}
	}

	cw.Flush()

	err = cw.Error()
	if err != nil {
		return fmt.Errorf("flush summary: %w", err)
	}

	return nil
}

// AlignmentColumns returns pid followed by run_ms_<label> and wakes_<label>
// for every label in order.
func AlignmentColumns(labels []string) []string {
	cols := make([]string, 0, 1+2*len(labels))
	cols = append(cols, "pid")

	for _, label := range labels {
		cols = append(cols, "run_ms_"+label, "wakes_"+label)
	}

	return cols
}

// WriteAlignmentCSV writes the cross-label view, zero-filling entities a label
// never saw.
func WriteAlignmentCSV(w io.Writer, al compare.Alignment) error {
	cw := csv.NewWriter(w)

	err := cw.Write(AlignmentColumns(al.Labels))
	if err != nil {
		return fmt.Errorf("write alignment header: %w", err)
	}

	for _, row := range al.Rows {
		record := make([]string, 0, 1+2*len(al.Labels))
		record = append(record, strconv.FormatInt(row.EntityID, 10))

		for _, label := range al.Labels {
			s := row.Get(label)
			record = append(record, formatMs(s.TotalRunMs), strconv.Itoa(s.TickCount))
		}

		err = cw.Write(record)
		if err != nil {
			return fmt.Errorf("write alignment row %d: %w", row.EntityID, err)
		}
	}

	cw.Flush()

	err = cw.Error()
	if err != nil {
		return fmt.Errorf("flush alignment: %w", err)
	}

	return nil
}

// WriteSummaryFile writes a label's summary CSV into dir and returns its path.
func WriteSummaryFile(dir, label string, summaries []timeline.EntitySummary) (string, error) {
	var buf bytes.Buffer

	err := WriteSummaryCSV(&buf, summaries)
	if err != nil {
		return "", err
	}

	return writeFile(filepath.Join(dir, SummaryFileName(label)), buf.Bytes())
}

// WriteAlignmentFile writes the cross-label CSV into dir and returns its path.
func WriteAlignmentFile(dir string, al compare.Alignment) (string, error) {
	var buf bytes.Buffer

	err := WriteAlignmentCSV(&buf, al)
	if err != nil {
		return "", err
	}

	return writeFile(filepath.Join(dir, CompareSummaryFileName), buf.Bytes())
}

func writeFile(path string, data []byte) (string, error) {
	err := os.WriteFile(path, data, 0o644) //nolint:gosec // reports are meant to be shared.
	if err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	return path, nil
}
