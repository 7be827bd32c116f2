package plotpage

import (
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const (
	laneWidth     = 10
	laneMinHeight = 120
	lanePixels    = 48
	gapValue      = "-"
)

// SeriesData represents a single numeric value in a chart series.
type SeriesData any

// BarSeries defines the properties and data for a single bar chart series.
type BarSeries struct {
	Name  string
	Data  []SeriesData
	Color string // Optional, uses theme if empty.
	Stack string // Optional, stack grouping.
}

// BuildBarChart constructs a fully configured go-echarts Bar chart using ChartOpts.
// If cOpts is nil, DefaultChartOpts() is used.
func BuildBarChart(cOpts *ChartOpts, labels []string, series []BarSeries, xAxisLabel, yAxisLabel string) *charts.Bar {
	if cOpts == nil {
		cOpts = DefaultChartOpts()
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(cOpts.Init("100%", "500px")),
		charts.WithTooltipOpts(cOpts.Tooltip("axis")),
		charts.WithDataZoomOpts(cOpts.DataZoom()...),
		charts.WithXAxisOpts(cOpts.XAxis(xAxisLabel)),
		charts.WithYAxisOpts(cOpts.YAxis(yAxisLabel)),
		charts.WithLegendOpts(cOpts.Legend()),
		charts.WithGridOpts(cOpts.Grid()),
	)

	bar.SetXAxis(labels)

	for _, s := range series {
		barData := make([]opts.BarData, len(s.Data))
		for i, v := range s.Data {
			barData[i] = opts.BarData{Value: v}
		}

		var seriesOpts []charts.SeriesOpts
		if s.Color != "" {
			seriesOpts = append(seriesOpts, charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}))
		}

		if s.Stack != "" {
			seriesOpts = append(seriesOpts, charts.WithBarChartOpts(opts.BarChart{Stack: s.Stack}))
		}

		bar.AddSeries(s.Name, barData, seriesOpts...)
	}

	return bar
}

// Span is a half-open [Start, End) range on a timeline lane.
type Span struct {
	Start float64
	End   float64
}

// TimelineLane is one horizontal row of a timeline chart: spans drawn as
// thick bars and point marks drawn as symbols.
type TimelineLane struct {
	Name  string
	Spans []Span
	Marks []float64
}

// BuildTimelineChart draws lanes as horizontal bars against a numeric x-axis.
// Each lane is its own series; spans are separated by gap points so echarts
// does not join them. Marks of every lane share one symbol-only series.
func BuildTimelineChart(cOpts *ChartOpts, palette ChartPalette, lanes []TimelineLane, xAxisLabel, markName string) *charts.Line {
	if cOpts == nil {
		cOpts = DefaultChartOpts()
	}

	names := make([]string, len(lanes))
	for i, lane := range lanes {
		names[i] = lane.Name
	}

	height := laneMinHeight + lanePixels*len(lanes)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(cOpts.Init("100%", pixels(height))),
		charts.WithTooltipOpts(cOpts.Tooltip("item")),
		charts.WithDataZoomOpts(cOpts.DataZoom()...),
		charts.WithXAxisOpts(cOpts.ValueXAxis(xAxisLabel)),
		charts.WithYAxisOpts(cOpts.CategoryYAxis("", names)),
		charts.WithLegendOpts(cOpts.Legend()),
		charts.WithGridOpts(cOpts.Grid()),
	)

	var marks []opts.LineData

	for i, lane := range lanes {
		data := make([]opts.LineData, 0, 3*len(lane.Spans))

		for _, sp := range lane.Spans {
			data = append(data,
				opts.LineData{Value: []any{sp.Start, lane.Name}, Symbol: "none"},
				opts.LineData{Value: []any{sp.End, lane.Name}, Symbol: "none"},
				opts.LineData{Value: gapValue},
			)
		}

		color := palette.Color(i)
		line.AddSeries(lane.Name, data,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: color}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: color, Width: laneWidth}),
		)

		for _, m := range lane.Marks {
			marks = append(marks, opts.LineData{Value: []any{m, lane.Name}, Symbol: "circle"})
		}
	}

	if len(marks) > 0 {
		line.AddSeries(markName, marks,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: palette.Marker}),
			charts.WithLineStyleOpts(opts.LineStyle{Width: 0, Opacity: opts.Float(0)}),
		)
	}

	return line
}
