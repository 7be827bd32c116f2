// Package observability wires structured logging, tracing and pipeline metrics
// for schedline.
package observability

import "log/slog"

// AppMode identifies how the process was started.
type AppMode string

const (
	// ModeCLI is a one-shot command line invocation.
	ModeCLI AppMode = "cli"
)

const (
	defaultServiceName        = "schedline"
	defaultShutdownTimeoutSec = 5
)

// Config controls observability initialization.
type Config struct {
	ServiceName    string
	ServiceVersion string
	Mode           AppMode

	// OTLPEndpoint enables OTLP gRPC export of traces and metrics when set.
	OTLPEndpoint string
	OTLPInsecure bool
	OTLPHeaders  map[string]string

	// SampleRatio is the parent-based trace sampling ratio. Zero samples everything.
	SampleRatio float64

	LogLevel slog.Level
	LogJSON  bool

	// MetricsFile, when set, receives a Prometheus text-format snapshot of the
	// pipeline metrics on shutdown.
	MetricsFile string

	ShutdownTimeoutSec int
}

// DefaultConfig returns a Config that produces no-op telemetry and text logs at INFO.
func DefaultConfig() Config {
	return Config{
		ServiceName:        defaultServiceName,
		Mode:               ModeCLI,
		LogLevel:           slog.LevelInfo,
		ShutdownTimeoutSec: defaultShutdownTimeoutSec,
	}
}

// ParseLevel maps a level name to an slog level. Unknown names yield INFO.
func ParseLevel(name string) slog.Level {
	var level slog.Level

	err := level.UnmarshalText([]byte(name))
	if err != nil {
		return slog.LevelInfo
	}

	return level
}
