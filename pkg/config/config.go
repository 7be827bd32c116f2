// Package config provides configuration loading and validation for schedline.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"
)

// Sentinel validation errors.
var (
	ErrInvalidTop         = errors.New("selection top must not be negative")
	ErrInvalidParallelism = errors.New("pipeline parallelism must be positive")
	ErrInvalidMaxSegments = errors.New("render max segments must not be negative")
	ErrUnknownFormat      = errors.New("unknown output format")
	ErrUnknownTheme       = errors.New("unknown render theme")
	ErrUnknownLogFormat   = errors.New("unknown logging format")
)

// Output formats.
const (
	FormatCSV  = "csv"
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Render themes.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Default configuration values.
const (
	DefaultTop         = 4
	DefaultOutputDir   = "."
	DefaultParallelism = 4
	DefaultMaxSegments = 0
	DefaultTheme       = ThemeDark
	DefaultLogLevel    = "info"
	DefaultLogFormat   = LogFormatText

	envPrefix      = "SCHEDLINE"
	configFileName = "schedline"
)

// DefaultFormats lists the outputs written when none are configured.
func DefaultFormats() []string { return []string{FormatCSV, FormatText} }

// Config holds all configuration for schedline.
type Config struct {
	Selection SelectionConfig `mapstructure:"selection"`
	Output    OutputConfig    `mapstructure:"output"`
	Render    RenderConfig    `mapstructure:"render"`
	Pipeline  PipelineConfig  `mapstructure:"pipeline"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// SelectionConfig controls the entity selector.
type SelectionConfig struct {
	Top int `mapstructure:"top"`
}

// OutputConfig controls where and how reports are written.
type OutputConfig struct {
	Dir     string   `mapstructure:"dir"`
	Formats []string `mapstructure:"formats"`
}

// RenderConfig controls HTML chart rendering.
type RenderConfig struct {
	Theme       string `mapstructure:"theme"`
	MaxSegments int    `mapstructure:"max_segments"`
	Enabled     bool   `mapstructure:"enabled"`
}

// PipelineConfig controls multi-source processing.
type PipelineConfig struct {
	Parallelism int `mapstructure:"parallelism"`
}

// LoggingConfig holds logging-specific configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// TelemetryConfig holds OpenTelemetry and metrics export settings.
type TelemetryConfig struct {
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	MetricsFile  string `mapstructure:"metrics_file"`
	OTLPInsecure bool   `mapstructure:"otlp_insecure"`
}

// HasFormat reports whether the given output format is enabled.
func (c *Config) HasFormat(format string) bool {
	return slices.Contains(c.Output.Formats, format)
}

// LoadConfig loads configuration from defaults, an optional file and
// SCHEDLINE_* environment variables. An empty configPath searches the
// working directory, ./config and $HOME/.config/schedline; a missing file
// there is not an error.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(configFileName)
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
		viperCfg.AddConfigPath("./config")
		viperCfg.AddConfigPath(filepath.Join("$HOME", ".config", "schedline"))
	}

	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.AutomaticEnv()
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("read config: %w", readErr)
		}
	}

	var config Config

	unmarshalErr := viperCfg.Unmarshal(&config)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("unmarshal config: %w", unmarshalErr)
	}

	normalize(&config)

	validateErr := Validate(&config)
	if validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}

	return &config, nil
}

// Default returns the configuration produced by LoadConfig when no file or
// environment overrides exist.
func Default() *Config {
	return &Config{
		Selection: SelectionConfig{Top: DefaultTop},
		Output:    OutputConfig{Dir: DefaultOutputDir, Formats: DefaultFormats()},
		Render:    RenderConfig{Enabled: true, Theme: DefaultTheme, MaxSegments: DefaultMaxSegments},
		Pipeline:  PipelineConfig{Parallelism: DefaultParallelism},
		Logging:   LoggingConfig{Level: DefaultLogLevel, Format: DefaultLogFormat},
	}
}

func setDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("selection.top", DefaultTop)

	viperCfg.SetDefault("output.dir", DefaultOutputDir)
	viperCfg.SetDefault("output.formats", DefaultFormats())

	viperCfg.SetDefault("render.enabled", true)
	viperCfg.SetDefault("render.max_segments", DefaultMaxSegments)
	viperCfg.SetDefault("render.theme", DefaultTheme)

	viperCfg.SetDefault("pipeline.parallelism", DefaultParallelism)

	viperCfg.SetDefault("logging.level", DefaultLogLevel)
	viperCfg.SetDefault("logging.format", DefaultLogFormat)

	viperCfg.SetDefault("telemetry.otlp_endpoint", "")
	viperCfg.SetDefault("telemetry.otlp_insecure", false)
	viperCfg.SetDefault("telemetry.metrics_file", "")
}

// normalize lower-cases enumerations and splits comma-joined format lists,
// which is how a SCHEDLINE_OUTPUT_FORMATS value arrives.
func normalize(config *Config) {
	var formats []string

	for _, entry := range config.Output.Formats {
		for part := range strings.SplitSeq(entry, ",") {
			part = strings.ToLower(strings.TrimSpace(part))
			if part != "" && !slices.Contains(formats, part) {
				formats = append(formats, part)
			}
		}
	}

	config.Output.Formats = formats
	config.Render.Theme = strings.ToLower(strings.TrimSpace(config.Render.Theme))
	config.Logging.Format = strings.ToLower(strings.TrimSpace(config.Logging.Format))
}

// Validate checks a configuration, including one assembled by flag overrides.
func Validate(config *Config) error {
	if config.Selection.Top < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidTop, config.Selection.Top)
	}

	if config.Pipeline.Parallelism < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidParallelism, config.Pipeline.Parallelism)
	}

	if config.Render.MaxSegments < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxSegments, config.Render.MaxSegments)
	}

	for _, format := range config.Output.Formats {
		switch format {
		case FormatCSV, FormatText, FormatJSON, FormatYAML:
		default:
			return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
		}
	}

	switch config.Render.Theme {
	case ThemeDark, ThemeLight:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownTheme, config.Render.Theme)
	}

	switch config.Logging.Format {
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownLogFormat, config.Logging.Format)
	}

	return nil
}
