package plotpage_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/schedline/pkg/plotpage"
)

func TestBuildBarChart(t *testing.T) {
	t.Parallel()

	series := []plotpage.BarSeries{
		{Name: "light", Data: []plotpage.SeriesData{12.5, 3.0}, Color: "#ff0000"},
		{Name: "heavy", Data: []plotpage.SeriesData{40.0, 0.0}, Stack: "run"},
	}

	chart := plotpage.BuildBarChart(plotpage.DefaultChartOpts(), []string{"7", "9"}, series, "pid", "ms")
	require.NotNil(t, chart)
	require.Len(t, chart.MultiSeries, 2)
	assert.Equal(t, "light", chart.MultiSeries[0].Name)
	assert.Equal(t, "heavy", chart.MultiSeries[1].Name)
	assert.Equal(t, "run", chart.MultiSeries[1].Stack)
}

func TestBuildBarChart_NilOpts(t *testing.T) {
	t.Parallel()

	chart := plotpage.BuildBarChart(nil, []string{"1"}, []plotpage.BarSeries{
		{Name: "only", Data: []plotpage.SeriesData{1}},
	}, "", "count")
	require.Len(t, chart.MultiSeries, 1)
}

func TestBuildTimelineChart(t *testing.T) {
	t.Parallel()

	lanes := []plotpage.TimelineLane{
		{Name: "pid 7", Spans: []plotpage.Span{{Start: 0, End: 5}, {Start: 8, End: 9}}, Marks: []float64{4}},
		{Name: "pid 9", Marks: []float64{5}},
	}

	chart := plotpage.BuildTimelineChart(nil, plotpage.GetChartPalette(plotpage.ThemeDark), lanes, "ms", "wakes")

	require.Len(t, chart.MultiSeries, 3, "one series per lane plus the marks")
	assert.Len(t, chart.MultiSeries[0].Data, 6, "two points and a gap per span")
	assert.Equal(t, "wakes", chart.MultiSeries[2].Name)
}

func TestBuildTimelineChart_NoMarks(t *testing.T) {
	t.Parallel()

	lanes := []plotpage.TimelineLane{{Name: "a", Spans: []plotpage.Span{{Start: 1, End: 2}}}}

	chart := plotpage.BuildTimelineChart(nil, plotpage.GetChartPalette(plotpage.ThemeLight), lanes, "ms", "wakes")
	assert.Len(t, chart.MultiSeries, 1)
}

func TestPageRender(t *testing.T) {
	t.Parallel()

	page := plotpage.NewPage("Timeline <light>", "Run intervals").WithTheme(plotpage.ThemeLight)
	page.Add(plotpage.Section{
		Title:    "Totals",
		Subtitle: "per entity",
		Chart: plotpage.WrapChart(plotpage.BuildBarChart(nil, []string{"1"}, []plotpage.BarSeries{
			{Name: "run", Data: []plotpage.SeriesData{3}},
		}, "", "ms")),
		Table: &plotpage.Table{Headers: []string{"pid", "run_ms"}, Rows: [][]string{{"1", "3"}}},
		Hint:  plotpage.Hint{Title: "Reading", Items: []string{"Longer bars ran longer."}},
	})

	var buf bytes.Buffer
	require.NoError(t, page.Render(&buf))

	html := buf.String()
	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, "Timeline &lt;light&gt;", "titles are escaped")
	assert.Contains(t, html, `class="echart-box"`)
	assert.Contains(t, html, "echarts.min.js")
	assert.Contains(t, html, "<th>run_ms</th>")
	assert.Contains(t, html, "Longer bars ran longer.")
	assert.NotContains(t, html, `class="dark"`)
	assert.Equal(t, 1, strings.Count(html, "<!DOCTYPE"), "chart pages are reduced to fragments")
}

func TestPageWriteFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "page.html")

	page := plotpage.NewPage("Empty", "")
	require.NoError(t, page.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<h1>Empty</h1>")
	assert.Contains(t, string(data), `class="dark"`)
}

func TestParseTheme(t *testing.T) {
	t.Parallel()

	assert.Equal(t, plotpage.ThemeLight, plotpage.ParseTheme(" Light "))
	assert.Equal(t, plotpage.ThemeDark, plotpage.ParseTheme("dark"))
	assert.Equal(t, plotpage.ThemeDark, plotpage.ParseTheme("neon"))
}

func TestChartPaletteCycles(t *testing.T) {
	t.Parallel()

	palette := plotpage.GetChartPalette(plotpage.ThemeDark)
	assert.Equal(t, palette.Color(0), palette.Color(len(palette.Primary)))
	assert.Empty(t, plotpage.ChartPalette{}.Color(3))
}
