// Package commands implements CLI command handlers for schedline.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Sumatoshi-tech/schedline/pkg/compare"
	"github.com/Sumatoshi-tech/schedline/pkg/config"
	"github.com/Sumatoshi-tech/schedline/pkg/observability"
	"github.com/Sumatoshi-tech/schedline/pkg/plotpage"
	"github.com/Sumatoshi-tech/schedline/pkg/render"
	"github.com/Sumatoshi-tech/schedline/pkg/report"
	"github.com/Sumatoshi-tech/schedline/pkg/schedlog"
	"github.com/Sumatoshi-tech/schedline/pkg/timeline"
	"github.com/Sumatoshi-tech/schedline/pkg/version"
)

const outDirPerm = 0o755

// TimelineCommand holds flags for the timeline command.
type TimelineCommand struct {
	configPath  string
	labels      []string
	pids        string
	top         int
	outDir      string
	formats     []string
	maxSegments int
	theme       string
	noRender    bool
	parallelism int
	logLevel    string
	logJSON     bool
	metricsFile string
	noColor     bool
}

// NewTimelineCommand creates the timeline command.
func NewTimelineCommand() *cobra.Command {
	tc := &TimelineCommand{}

	cmd := &cobra.Command{
		Use:   "timeline <trace.csv>...",
		Short: "Reconstruct per-entity run timelines from scheduler event logs",
		Long: `Reconstruct run intervals and wake events per entity from one or more
scheduler event logs and write summaries and Gantt charts.

Each input is processed independently under its own label. Labels default to
the file stem; when given, there must be exactly one --label per input.

Examples:
  schedline timeline light.csv heavy.csv
  schedline timeline --label base --label patched a.csv b.csv.lz4 --top 8
  schedline timeline trace.csv --pids 1203,1207 --format csv,json`,
		Args: cobra.MinimumNArgs(1),
		RunE: tc.run,
	}

	flags := cmd.Flags()
	flags.StringVar(&tc.configPath, "config", "", "Path to a schedline.yaml configuration file")
	flags.StringArrayVar(&tc.labels, "label", nil, "Label for each input, in order (repeatable)")
	flags.StringVar(&tc.pids, "pids", "", "Comma-separated entity ids to report (overrides --top)")
	flags.IntVar(&tc.top, "top", config.DefaultTop, "Report the N entities with the most run time")
	flags.StringVar(&tc.outDir, "outdir", config.DefaultOutputDir, "Output directory (created if missing)")
	flags.StringSliceVar(&tc.formats, "format", config.DefaultFormats(), "Outputs: csv, text, json, yaml")
	flags.IntVar(&tc.maxSegments, "max-segments", config.DefaultMaxSegments,
		"Draw at most N run segments per entity (0 = all)")
	flags.StringVar(&tc.theme, "theme", config.DefaultTheme, "Chart theme: dark, light")
	flags.BoolVar(&tc.noRender, "no-render", false, "Skip HTML chart pages")
	flags.IntVar(&tc.parallelism, "parallelism", config.DefaultParallelism, "Inputs processed concurrently")
	flags.StringVar(&tc.logLevel, "log-level", config.DefaultLogLevel, "Log level: debug, info, warn, error")
	flags.BoolVar(&tc.logJSON, "log-json", false, "Write logs as JSON")
	flags.StringVar(&tc.metricsFile, "metrics-file", "", "Write a Prometheus text snapshot of pipeline metrics here")
	flags.BoolVar(&tc.noColor, "no-color", false, "Disable colored output")

	return cmd
}

// applyFlags overrides configuration values with explicitly set flags.
func (tc *TimelineCommand) applyFlags(flags *pflag.FlagSet, cfg *config.Config) {
	if flags.Changed("top") {
		cfg.Selection.Top = tc.top
	}

	if flags.Changed("outdir") {
		cfg.Output.Dir = tc.outDir
	}

	if flags.Changed("format") {
		cfg.Output.Formats = tc.formats
	}

	if flags.Changed("max-segments") {
		cfg.Render.MaxSegments = tc.maxSegments
	}

	if flags.Changed("theme") {
		cfg.Render.Theme = tc.theme
	}

	if tc.noRender {
		cfg.Render.Enabled = false
	}

	if flags.Changed("parallelism") {
		cfg.Pipeline.Parallelism = tc.parallelism
	}

	if flags.Changed("log-level") {
		cfg.Logging.Level = tc.logLevel
	}

	if tc.logJSON {
		cfg.Logging.Format = config.LogFormatJSON
	}

	if flags.Changed("metrics-file") {
		cfg.Telemetry.MetricsFile = tc.metricsFile
	}
}

func observabilityConfig(cfg *config.Config) observability.Config {
	obsCfg := observability.DefaultConfig()
	obsCfg.ServiceVersion = version.Version
	obsCfg.LogLevel = observability.ParseLevel(cfg.Logging.Level)
	obsCfg.LogJSON = cfg.Logging.Format == config.LogFormatJSON
	obsCfg.OTLPEndpoint = cfg.Telemetry.OTLPEndpoint
	obsCfg.OTLPInsecure = cfg.Telemetry.OTLPInsecure
	obsCfg.MetricsFile = cfg.Telemetry.MetricsFile

	return obsCfg
}

func (tc *TimelineCommand) run(cmd *cobra.Command, args []string) error {
	if tc.noColor {
		color.NoColor = true //nolint:reassign // intentional override of library global
	}

	cfg, err := config.LoadConfig(tc.configPath)
	if err != nil {
		return err
	}

	tc.applyFlags(cmd.Flags(), cfg)

	err = config.Validate(cfg)
	if err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	providers, err := observability.InitWithWriter(observabilityConfig(cfg), cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("init observability: %w", err)
	}

	defer func() {
		shutdownErr := providers.Shutdown(context.Background())
		if shutdownErr != nil {
			providers.Logger.Warn("observability shutdown failed", "error", shutdownErr)
		}
	}()

	metrics, err := observability.NewPipelineMetrics(providers.Meter)
	if err != nil {
		return err
	}

	labels := tc.labels
	if len(labels) == 0 {
		labels = compare.DefaultLabels(args)
	}

	explicit, rejected := timeline.ParseIDList(tc.pids)
	if len(rejected) > 0 {
		providers.Logger.Warn("ignoring entity ids that are not non-negative integers", "rejected", rejected)
	}

	err = os.MkdirAll(cfg.Output.Dir, outDirPerm)
	if err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	sources := make([]schedlog.Source, len(args))
	for i, path := range args {
		sources[i] = schedlog.NewFileSource(path, providers.Logger)
	}

	ctx, span := providers.Tracer.Start(cmd.Context(), "schedline.timeline", trace.WithAttributes(
		attribute.Int("inputs", len(args)),
	))
	defer span.End()

	outcome, err := compare.Run(ctx, labels, sources, compare.Options{
		Timeline:    timeline.Options{TopN: cfg.Selection.Top, ExplicitIDs: explicit},
		Parallelism: cfg.Pipeline.Parallelism,
		Logger:      providers.Logger,
		Tracer:      providers.Tracer,
		Metrics:     metrics,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return err
	}

	out := cmd.OutOrStdout()
	w := &writer{out: out, cfg: cfg, logger: providers.Logger}

	for _, lr := range outcome.Results {
		if !lr.OK() {
			color.New(color.FgRed).Fprintf(out, "[%s] failed: %v\n", lr.Label, lr.Err)

			continue
		}

		w.label(lr)
	}

	if succeeded := outcome.Succeeded(); len(succeeded) >= 2 { //nolint:mnd // comparison needs two labels.
		w.comparison(outcome.Alignment(), compare.SelectedUnion(succeeded))
	}

	err = errors.Join(outcome.Err(), w.err())

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	return err
}

// writer emits outputs and remembers the first write failure while carrying
// on with the remaining outputs.
type writer struct {
	out    io.Writer
	cfg    *config.Config
	logger *slog.Logger
	first  error
}

func (w *writer) err() error {
	return w.first
}

func (w *writer) fail(label string, err error) {
	color.New(color.FgRed).Fprintf(w.out, "[%s] %v\n", label, err)
	w.logger.Error("write output", "label", label, "error", err)

	if w.first == nil {
		w.first = err
	}
}

func (w *writer) label(lr compare.LabelResult) {
	res := lr.Result
	dir := w.cfg.Output.Dir

	fmt.Fprintf(w.out, "[%s] Selected PIDs: %v\n", lr.Label, res.Selection.IDs)

	var written []string

	if w.cfg.HasFormat(config.FormatCSV) {
		path, err := report.WriteSummaryFile(dir, lr.Label, res.Summaries)
		if err != nil {
			w.fail(lr.Label, err)
		} else {
			written = append(written, path)
		}
	}

	for _, format := range []string{config.FormatJSON, config.FormatYAML} {
		if !w.cfg.HasFormat(format) {
			continue
		}

		path, err := w.document(lr, format)
		if err != nil {
			w.fail(lr.Label, err)
		} else {
			written = append(written, path)
		}
	}

	if w.cfg.Render.Enabled {
		set := render.BuildSet(lr.Label, res, res.Selection.IDs, w.cfg.Render.MaxSegments)

		path, err := render.WriteGantt(dir, set, res.SelectedSummaries(), plotpage.ParseTheme(w.cfg.Render.Theme))
		if err != nil {
			w.fail(lr.Label, err)
		} else {
			written = append(written, path)
		}
	}

	if len(written) > 0 {
		color.New(color.FgGreen).Fprintf(w.out, "[%s] Wrote:\n", lr.Label)

		for _, path := range written {
			fmt.Fprintf(w.out, " - %s\n", path)
		}
	}

	if w.cfg.HasFormat(config.FormatText) {
		err := report.WriteSummaryTable(w.out, lr.Label, res.SelectedSummaries())
		if err != nil {
			w.fail(lr.Label, err)
		}
	}
}

func (w *writer) document(lr compare.LabelResult, format string) (string, error) {
	doc, err := report.NewDocument(lr.Label, lr.Source, lr.Result)
	if err != nil {
		return "", err
	}

	return report.WriteDocument(w.cfg.Output.Dir, doc, format)
}

// comparison writes the full alignment as CSV and charts only the entities
// some label selected.
func (w *writer) comparison(al compare.Alignment, selected []int64) {
	label := compare.AlignmentLabel

	var written []string

	if w.cfg.HasFormat(config.FormatCSV) {
		path, err := report.WriteAlignmentFile(w.cfg.Output.Dir, al)
		if err != nil {
			w.fail(label, err)
		} else {
			written = append(written, path)
		}
	}

	if w.cfg.Render.Enabled {
		path, err := render.WriteCompare(w.cfg.Output.Dir, al.Restrict(selected), plotpage.ParseTheme(w.cfg.Render.Theme))
		if err != nil {
			w.fail(label, err)
		} else {
			written = append(written, path)
		}
	}

	if len(written) > 0 {
		color.New(color.FgGreen).Fprintf(w.out, "[%s] Wrote:\n", label)

		for _, path := range written {
			fmt.Fprintf(w.out, " - %s\n", path)
		}
	}

	if w.cfg.HasFormat(config.FormatText) {
		fmt.Fprintln(w.out, report.AlignmentTable(al))
	}
}
