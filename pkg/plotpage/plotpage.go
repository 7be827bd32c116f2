// Package plotpage assembles go-echarts charts into standalone themed HTML pages.
package plotpage

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"os"
	"strconv"
	"strings"
)

const styleTagLen = len("</style>")

// Hint contains interpretive guidance for a chart section.
type Hint struct {
	Title string
	Items []string
}

// Table is a small data table rendered below a section's chart.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Section represents a chart section within a page.
type Section struct {
	Title    string
	Subtitle string
	Hint     Hint
	Chart    Renderable
	Table    *Table
}

// Page represents a complete visualization page.
type Page struct {
	Title           string
	Description     string
	ProjectName     string
	ProjectSubtitle string
	Theme           Theme
	Sections        []Section
}

// NewPage creates a new visualization page.
func NewPage(title, description string) *Page {
	return &Page{
		Title:           title,
		Description:     description,
		ProjectName:     "schedline",
		ProjectSubtitle: "Scheduler Timeline",
		Theme:           ThemeDark,
	}
}

// WithTheme sets the theme for the page.
func (p *Page) WithTheme(theme Theme) *Page {
	p.Theme = theme

	return p
}

// Add appends sections to the page.
func (p *Page) Add(sections ...Section) {
	p.Sections = append(p.Sections, sections...)
}

// Render writes the page as HTML.
func (p *Page) Render(w io.Writer) error {
	return HTMLRenderer{}.Render(w, p)
}

// WriteFile renders the page into a file, replacing it if present.
func (p *Page) WriteFile(path string) error {
	var buf bytes.Buffer

	err := p.Render(&buf)
	if err != nil {
		return err
	}

	err = os.WriteFile(path, buf.Bytes(), 0o644) //nolint:gosec // reports are meant to be shared.
	if err != nil {
		return fmt.Errorf("write page %s: %w", path, err)
	}

	return nil
}

// Renderable is the interface for chart components.
type Renderable interface {
	Render(w io.Writer) error
}

// HTMLRenderer renders pages as HTML.
type HTMLRenderer struct {
	ExtraCSS string
}

// Render writes the page as HTML to the writer.
func (r HTMLRenderer) Render(w io.Writer, page *Page) error {
	var sectionsHTML bytes.Buffer

	for _, section := range page.Sections {
		sectionHTML, err := r.renderSection(section)
		if err != nil {
			return fmt.Errorf("render section %q: %w", section.Title, err)
		}

		sectionsHTML.WriteString(string(sectionHTML))
	}

	darkClass := ""
	if page.Theme == ThemeDark {
		darkClass = "dark"
	}

	html, err := renderTemplate("page.html", pageData{
		Title:           page.Title,
		Description:     page.Description,
		ProjectName:     page.ProjectName,
		ProjectSubtitle: page.ProjectSubtitle,
		DarkClass:       darkClass,
		EChartsAsset:    echartsAsset,
		Theme:           GetThemeConfig(page.Theme),
		ExtraCSS:        template.CSS(r.ExtraCSS), //nolint:gosec // caller-supplied stylesheet.
		Content:         template.HTML(sectionsHTML.String()), //nolint:gosec // sections are rendered templates.
	})
	if err != nil {
		return fmt.Errorf("render page: %w", err)
	}

	_, err = io.WriteString(w, string(html))
	if err != nil {
		return fmt.Errorf("writing page: %w", err)
	}

	return nil
}

func (r HTMLRenderer) renderSection(section Section) (template.HTML, error) {
	chartHTML, err := renderChart(section.Chart)
	if err != nil {
		return "", err
	}

	var hint *Hint
	if len(section.Hint.Items) > 0 {
		hint = &section.Hint
	}

	return renderTemplate("section.html", sectionData{
		Title:    section.Title,
		Subtitle: section.Subtitle,
		Chart:    template.HTML(chartHTML), //nolint:gosec // go-echarts output.
		Table:    section.Table,
		Hint:     hint,
	})
}

// ChartWrapper wraps an echarts chart and renders only the chart content.
type ChartWrapper struct {
	chart Renderable
}

// WrapChart wraps an echarts chart to render only the div and script (no full HTML page).
func WrapChart(chart Renderable) *ChartWrapper {
	return &ChartWrapper{chart: chart}
}

// Render writes the chart element and script without a full HTML page.
func (cw *ChartWrapper) Render(w io.Writer) error {
	content, err := renderChart(cw.chart)
	if err != nil {
		return err
	}

	_, err = io.WriteString(w, content)
	if err != nil {
		return fmt.Errorf("writing chart content: %w", err)
	}

	return nil
}

func renderChart(chart Renderable) (string, error) {
	if chart == nil {
		return "", nil
	}

	var buf bytes.Buffer

	err := chart.Render(&buf)
	if err != nil {
		return "", fmt.Errorf("rendering chart: %w", err)
	}

	return extractChartContent(buf.String()), nil
}

// extractChartContent cuts the chart container and its script out of a full
// go-echarts page. Fragments pass through unchanged.
func extractChartContent(html string) string {
	trimmed := strings.TrimSpace(html)
	if !strings.HasPrefix(trimmed, "<!DOCTYPE") && !strings.HasPrefix(trimmed, "<html") {
		return html
	}

	start := strings.Index(html, `<div class="container">`)
	if start == -1 {
		return html
	}

	end := strings.Index(html, `</body>`)
	if end == -1 {
		return html
	}

	content := html[start:end]
	content = strings.ReplaceAll(content, `class="container"`, `class="echart-box"`)

	return removeStyleTags(content)
}

func removeStyleTags(content string) string {
	for {
		i := strings.Index(content, `<style>`)
		if i == -1 {
			return content
		}

		j := strings.Index(content[i:], `</style>`)
		if j == -1 {
			return content
		}

		content = content[:i] + content[i+j+styleTagLen:]
	}
}

func pixels(n int) string {
	return strconv.Itoa(n) + "px"
}
