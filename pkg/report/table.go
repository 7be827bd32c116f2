package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/Sumatoshi-tech/schedline/pkg/compare"
	"github.com/Sumatoshi-tech/schedline/pkg/timeline"
)

const (
	msDigits     = 3
	percentScale = 100
)

func newTable() table.Writer {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Options.DrawBorder = false

	return tbl
}

// SummaryTable renders the summaries of one label for a terminal.
func SummaryTable(label string, summaries []timeline.EntitySummary) string {
	tbl := newTable()
	tbl.SetTitle("timeline " + label)
	tbl.AppendHeader(table.Row{"pid", "run_ms", "num_runs", "avg_run_ms", "median_run_ms", "max_run_ms", "share", "wakes"})

	var runMs float64

	for _, s := range summaries {
		runMs += s.TotalRunMs

		tbl.AppendRow(table.Row{
			s.EntityID,
			humanize.CommafWithDigits(s.TotalRunMs, msDigits),
			humanize.Comma(int64(s.IntervalCount)),
			humanize.CommafWithDigits(s.MeanIntervalMs, msDigits),
			humanize.CommafWithDigits(s.MedianIntervalMs, msDigits),
			humanize.CommafWithDigits(s.MaxIntervalMs, msDigits),
			fmt.Sprintf("%.1f%%", s.RunShare*percentScale),
			humanize.Comma(int64(s.TickCount)),
		})
	}

	tbl.AppendFooter(table.Row{
		fmt.Sprintf("%d entities", len(summaries)),
		humanize.CommafWithDigits(runMs, msDigits),
	})

	return tbl.Render()
}

// AlignmentTable renders total run time per entity with one column per label.
func AlignmentTable(al compare.Alignment) string {
	tbl := newTable()
	tbl.SetTitle("timeline comparison")

	header := table.Row{"pid"}
	for _, label := range al.Labels {
		header = append(header, "run_ms "+label, "wakes "+label)
	}

	tbl.AppendHeader(header)

	for _, row := range al.Rows {
		r := table.Row{strconv.FormatInt(row.EntityID, 10)}

		for _, label := range al.Labels {
			s := row.Get(label)
			r = append(r, humanize.CommafWithDigits(s.TotalRunMs, msDigits), humanize.Comma(int64(s.TickCount)))
		}

		tbl.AppendRow(r)
	}

	return tbl.Render()
}

// WriteSummaryTable writes SummaryTable followed by a newline.
func WriteSummaryTable(w io.Writer, label string, summaries []timeline.EntitySummary) error {
	_, err := fmt.Fprintln(w, SummaryTable(label, summaries))
	if err != nil {
		return fmt.Errorf("write summary table: %w", err)
	}

	return nil
}
