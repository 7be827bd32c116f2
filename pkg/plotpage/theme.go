package plotpage

import "strings"

// Theme represents a color theme for visualizations.
type Theme string

const (
	// ThemeLight is the light color theme.
	ThemeLight Theme = "light"
	// ThemeDark is the dark color theme.
	ThemeDark Theme = "dark"
)

// ParseTheme maps a configured theme name to a Theme. Unknown names yield ThemeDark.
func ParseTheme(name string) Theme {
	if strings.EqualFold(strings.TrimSpace(name), string(ThemeLight)) {
		return ThemeLight
	}

	return ThemeDark
}

// ThemeConfig holds all theme-specific styling values.
type ThemeConfig struct {
	Background    string
	Surface       string
	Border        string
	TextPrimary   string
	TextSecondary string
	TextMuted     string
	Accent        string

	// Chart-specific.
	ChartBackground string
	ChartGrid       string
	ChartAxis       string
	ChartText       string
	ChartTextMuted  string
}

// ChartPalette is a consistent series color palette.
type ChartPalette struct {
	Primary []string
	Marker  string
}

// Color returns the i-th primary color, cycling through the palette.
func (p ChartPalette) Color(i int) string {
	if len(p.Primary) == 0 {
		return ""
	}

	return p.Primary[i%len(p.Primary)]
}

// GetThemeConfig returns the configuration for a given theme.
func GetThemeConfig(theme Theme) ThemeConfig {
	if theme == ThemeLight {
		return lightTheme
	}

	return darkTheme
}

// GetChartPalette returns the chart color palette for a given theme.
func GetChartPalette(theme Theme) ChartPalette {
	if theme == ThemeLight {
		return lightChartPalette
	}

	return darkChartPalette
}

var lightTheme = ThemeConfig{
	Background:    "#fafaf9", // stone-50.
	Surface:       "#ffffff",
	Border:        "#e7e5e4", // stone-200.
	TextPrimary:   "#1c1917", // stone-900.
	TextSecondary: "#44403c", // stone-700.
	TextMuted:     "#78716c", // stone-500.
	Accent:        "#a16207", // amber-700.

	ChartBackground: "transparent",
	ChartGrid:       "#e7e5e4",
	ChartAxis:       "#a8a29e", // stone-400.
	ChartText:       "#44403c",
	ChartTextMuted:  "#78716c",
}

var darkTheme = ThemeConfig{
	Background:    "#0c0a09", // stone-950.
	Surface:       "#1c1917", // stone-900.
	Border:        "#44403c", // stone-700.
	TextPrimary:   "#fafaf9",
	TextSecondary: "#d6d3d1", // stone-300.
	TextMuted:     "#a8a29e",
	Accent:        "#d97706", // amber-600.

	ChartBackground: "transparent",
	ChartGrid:       "#44403c",
	ChartAxis:       "#57534e", // stone-600.
	ChartText:       "#d6d3d1",
	ChartTextMuted:  "#a8a29e",
}

var lightChartPalette = ChartPalette{
	Primary: []string{
		"#a16207", "#0369a1", "#4d7c0f", "#7c3aed", "#be185d",
		"#0891b2", "#c2410c", "#4338ca", "#15803d", "#b91c1c",
	},
	Marker: "#dc2626",
}

var darkChartPalette = ChartPalette{
	Primary: []string{
		"#fbbf24", "#38bdf8", "#a3e635", "#a78bfa", "#f472b6",
		"#22d3ee", "#fb923c", "#818cf8", "#4ade80", "#f87171",
	},
	Marker: "#ef4444",
}
