package render

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/Sumatoshi-tech/schedline/pkg/compare"
	"github.com/Sumatoshi-tech/schedline/pkg/plotpage"
	"github.com/Sumatoshi-tech/schedline/pkg/timeline"
)

const (
	xAxisName = "Time since start (ms)"
	ticksName = "wakes"
	msDigits  = 3
)

// GanttFileName is the per-label Gantt page name.
func GanttFileName(label string) string {
	return fmt.Sprintf("timeline_%s_gantt.html", label)
}

// CompareFileName is the cross-label comparison page name.
const CompareFileName = "timeline_compare.html"

func laneName(id int64) string {
	return "pid " + strconv.FormatInt(id, 10)
}

func lane(track Track) plotpage.TimelineLane {
	spans := make([]plotpage.Span, len(track.Segments))
	for i, seg := range track.Segments {
		spans[i] = plotpage.Span{Start: seg.StartMs, End: seg.EndMs()}
	}

	return plotpage.TimelineLane{Name: laneName(track.EntityID), Spans: spans, Marks: track.Ticks}
}

// GanttPage draws a combined chart of every track followed by one section per
// track. summaries supplies the per-entity table; entities without a summary
// are drawn without one.
func GanttPage(set Set, summaries []timeline.EntitySummary, theme plotpage.Theme) *plotpage.Page {
	cOpts := plotpage.NewChartOpts(theme)
	palette := plotpage.GetChartPalette(theme)

	page := plotpage.NewPage(
		fmt.Sprintf("Timeline Gantt (%s)", set.Label),
		"Reconstructed run intervals of the selected entities. Markers are wake events.",
	).WithTheme(theme)

	lanes := make([]plotpage.TimelineLane, len(set.Tracks))
	for i, track := range set.Tracks {
		lanes[i] = lane(track)
	}

	page.Add(plotpage.Section{
		Title:    "Selected entities",
		Subtitle: fmt.Sprintf("%d entities, label %s", len(set.Tracks), set.Label),
		Chart:    plotpage.WrapChart(plotpage.BuildTimelineChart(cOpts, palette, lanes, xAxisName, ticksName)),
		Table:    summaryTable(summaries),
		Hint: plotpage.Hint{
			Title: "Reading the chart",
			Items: []string{
				"Each bar is one run, ending at the context switch that took the entity off the CPU.",
				"Overlapping bars are shown as reconstructed; they are not merged.",
			},
		},
	})

	bySummary := make(map[int64]timeline.EntitySummary, len(summaries))
	for _, s := range summaries {
		bySummary[s.EntityID] = s
	}

	for i, track := range set.Tracks {
		lanePalette := plotpage.ChartPalette{Primary: []string{palette.Color(i)}, Marker: palette.Marker}
		chart := plotpage.BuildTimelineChart(cOpts, lanePalette, []plotpage.TimelineLane{lanes[i]}, xAxisName, ticksName)

		section := plotpage.Section{
			Title:    laneName(track.EntityID),
			Subtitle: trackSubtitle(track),
			Chart:    plotpage.WrapChart(chart),
		}

		if s, ok := bySummary[track.EntityID]; ok {
			section.Table = summaryTable([]timeline.EntitySummary{s})
		}

		page.Add(section)
	}

	return page
}

func trackSubtitle(track Track) string {
	subtitle := fmt.Sprintf("%s runs, %s wakes",
		humanize.Comma(int64(track.Total)), humanize.Comma(int64(len(track.Ticks))))

	if track.Downsampled() {
		subtitle += fmt.Sprintf(" (drawing %s of %s runs)",
			humanize.Comma(int64(len(track.Segments))), humanize.Comma(int64(track.Total)))
	}

	return subtitle
}

func summaryTable(summaries []timeline.EntitySummary) *plotpage.Table {
	if len(summaries) == 0 {
		return nil
	}

	table := &plotpage.Table{
		Headers: []string{"pid", "run_ms", "num_runs", "avg_run_ms", "median_run_ms", "max_run_ms", "run_share", "wakes"},
	}

	for _, s := range summaries {
		table.Rows = append(table.Rows, []string{
			strconv.FormatInt(s.EntityID, 10),
			humanize.CommafWithDigits(s.TotalRunMs, msDigits),
			humanize.Comma(int64(s.IntervalCount)),
			humanize.CommafWithDigits(s.MeanIntervalMs, msDigits),
			humanize.CommafWithDigits(s.MedianIntervalMs, msDigits),
			humanize.CommafWithDigits(s.MaxIntervalMs, msDigits),
			fmt.Sprintf("%.1f%%", s.RunShare*100), //nolint:mnd // percent.
			humanize.Comma(int64(s.TickCount)),
		})
	}

	return table
}

// ComparePage draws total run time and wake counts per entity, one bar
// series per label.
func ComparePage(al compare.Alignment, theme plotpage.Theme) *plotpage.Page {
	cOpts := plotpage.NewChartOpts(theme)
	palette := plotpage.GetChartPalette(theme)

	page := plotpage.NewPage(
		"Timeline comparison",
		"Per-entity totals side by side. Entity ids are compared as-is across labels.",
	).WithTheme(theme)

	categories := make([]string, len(al.Rows))
	for i, row := range al.Rows {
		categories[i] = strconv.FormatInt(row.EntityID, 10)
	}

	runSeries := make([]plotpage.BarSeries, len(al.Labels))
	wakeSeries := make([]plotpage.BarSeries, len(al.Labels))

	for li, label := range al.Labels {
		runs := make([]plotpage.SeriesData, len(al.Rows))
		wakes := make([]plotpage.SeriesData, len(al.Rows))

		for ri, row := range al.Rows {
			s := row.Get(label)
			runs[ri] = s.TotalRunMs
			wakes[ri] = s.TickCount
		}

		color := palette.Color(li)
		runSeries[li] = plotpage.BarSeries{Name: label, Data: runs, Color: color}
		wakeSeries[li] = plotpage.BarSeries{Name: label, Data: wakes, Color: color}
	}

	page.Add(
		plotpage.Section{
			Title:    "Total run time",
			Subtitle: fmt.Sprintf("%d labels, %d entities", len(al.Labels), len(al.Rows)),
			Chart:    plotpage.WrapChart(plotpage.BuildBarChart(cOpts, categories, runSeries, "pid", "run_ms")),
		},
		plotpage.Section{
			Title: "Wake events",
			Chart: plotpage.WrapChart(plotpage.BuildBarChart(cOpts, categories, wakeSeries, "pid", "wakes")),
		},
	)

	return page
}

// WriteGantt renders a label's Gantt page into dir and returns its path.
func WriteGantt(dir string, set Set, summaries []timeline.EntitySummary, theme plotpage.Theme) (string, error) {
	path := filepath.Join(dir, GanttFileName(set.Label))

	err := GanttPage(set, summaries, theme).WriteFile(path)
	if err != nil {
		return "", err
	}

	return path, nil
}

// WriteCompare renders the comparison page into dir and returns its path.
func WriteCompare(dir string, al compare.Alignment, theme plotpage.Theme) (string, error) {
	path := filepath.Join(dir, CompareFileName)

	err := ComparePage(al, theme).WriteFile(path)
	if err != nil {
		return "", err
	}

	return path, nil
}
