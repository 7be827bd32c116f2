package plotpage

import (
	"bytes"
	"fmt"
	"html/template"
	"sync"
)

// echartsAsset is the script the extracted chart fragments expect on the page.
const echartsAsset = "https://go-echarts.github.io/go-echarts-assets/assets/echarts.min.js"

const pageTemplates = `
{{- define "page.html" -}}
<!DOCTYPE html>
<html lang="en" class="{{ .DarkClass }}">
<head>
<meta charset="utf-8">
<title>{{ .Title }}</title>
<script src="{{ .EChartsAsset }}"></script>
<style>
body { margin: 0; padding: 24px 32px; font-family: ui-sans-serif, system-ui, sans-serif;
  background: {{ .Theme.Background }}; color: {{ .Theme.TextPrimary }}; }
header { border-bottom: 1px solid {{ .Theme.Border }}; margin-bottom: 24px; }
header .project { color: {{ .Theme.Accent }}; font-weight: 600; letter-spacing: .04em; }
header p { color: {{ .Theme.TextMuted }}; }
section { background: {{ .Theme.Surface }}; border: 1px solid {{ .Theme.Border }};
  border-radius: 8px; padding: 16px 20px; margin-bottom: 24px; }
section h2 { margin: 0 0 4px; font-size: 1.1rem; }
section .subtitle { color: {{ .Theme.TextMuted }}; margin: 0 0 12px; }
.hint { color: {{ .Theme.TextSecondary }}; font-size: .9rem; }
table { border-collapse: collapse; margin-top: 12px; font-variant-numeric: tabular-nums; }
th, td { border-bottom: 1px solid {{ .Theme.Border }}; padding: 4px 12px; text-align: right; }
th:first-child, td:first-child { text-align: left; }
.echart-box { width: 100%; }
{{ .ExtraCSS }}
</style>
</head>
<body>
<header>
<div class="project">{{ .ProjectName }}{{ if .ProjectSubtitle }} &middot; {{ .ProjectSubtitle }}{{ end }}</div>
<h1>{{ .Title }}</h1>
{{ if .Description }}<p>{{ .Description }}</p>{{ end }}
</header>
<main>
{{ .Content }}
</main>
</body>
</html>
{{- end -}}

{{- define "section.html" -}}
<section>
<h2>{{ .Title }}</h2>
{{ if .Subtitle }}<p class="subtitle">{{ .Subtitle }}</p>{{ end }}
{{ .Chart }}
{{ with .Table }}
<table>
<thead><tr>{{ range .Headers }}<th>{{ . }}</th>{{ end }}</tr></thead>
<tbody>
{{ range .Rows }}<tr>{{ range . }}<td>{{ . }}</td>{{ end }}</tr>
{{ end }}</tbody>
</table>
{{ end }}
{{ with .Hint }}
<div class="hint"><strong>{{ .Title }}</strong>
<ul>{{ range .Items }}<li>{{ . }}</li>{{ end }}</ul>
</div>
{{ end }}
</section>
{{- end -}}
`

var (
	templates     *template.Template
	templatesOnce sync.Once
	errTemplates  error
)

func getTemplates() (*template.Template, error) {
	templatesOnce.Do(func() {
		var parseErr error

		templates, parseErr = template.New("").Parse(pageTemplates)
		if parseErr != nil {
			errTemplates = fmt.Errorf("parsing templates: %w", parseErr)
		}
	})

	return templates, errTemplates
}

// renderTemplate renders a named template with the given data.
func renderTemplate(name string, data any) (template.HTML, error) {
	tmpl, err := getTemplates()
	if err != nil {
		return "", fmt.Errorf("loading templates: %w", err)
	}

	var buf bytes.Buffer

	err = tmpl.ExecuteTemplate(&buf, name, data)
	if err != nil {
		return "", fmt.Errorf("executing template %s: %w", name, err)
	}

	return template.HTML(buf.String()), nil //nolint:gosec // output of html/template is already escaped.
}

type pageData struct {
	Title           string
	Description     string
	ProjectName     string
	ProjectSubtitle string
	DarkClass       string
	EChartsAsset    string
	Theme           ThemeConfig
	ExtraCSS        template.CSS
	Content         template.HTML
}

type sectionData struct {
	Title    string
	Subtitle string
	Chart    template.HTML
	Table    *Table
	Hint     *Hint
}
