package report

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	sdk "github.com/reportforge/sdk"
	"github.com/reportforge/sdk/evidence"
	"github.com/reportforge/sdk/graph"
)

// Compiler renders linearized snapshots into output artifacts.
//
// A compiler runs one compilation at a time: a second call while a run
// is in flight is refused with sdk.ErrCompileInProgress rather than
// queued, matching the exporting-guard behavior of the interactive
// editor.
type Compiler struct {
	registry *evidence.Registry
	logger   *slog.Logger
	clock    func() time.Time
	pageSize string

	otelTracer  trace.Tracer
	otelMeter   metric.Meter
	otelMetrics *otelMetrics

	rendering atomic.Bool
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithRegistry attaches the evidence registry used to resolve file
// bytes for the HTML and archive targets. Without one, compiling a
// snapshot that references evidence fails.
func WithRegistry(registry *evidence.Registry) Option {
	return func(c *Compiler) {
		c.registry = registry
	}
}

// WithLogger sets the logger for compile diagnostics and timings.
// Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Compiler) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock overrides the time source used for the generated-on footer
// and header date. Intended for tests.
func WithClock(clock func() time.Time) Option {
	return func(c *Compiler) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithPageSize sets the print preset of the HTML target, "A4" or
// "Letter". Defaults to A4.
func WithPageSize(size string) Option {
	return func(c *Compiler) {
		if size != "" {
			c.pageSize = size
		}
	}
}

// WithOTel enables OpenTelemetry instrumentation of compile runs: a
// span per run plus duration and count metrics. Either provider may be
// nil to enable only the other.
func WithOTel(tp trace.TracerProvider, mp metric.MeterProvider) Option {
	return func(c *Compiler) {
		if tp != nil {
			c.otelTracer = tp.Tracer("github.com/reportforge/sdk/report")
		}
		if mp != nil {
			c.otelMeter = mp.Meter("github.com/reportforge/sdk/report")
			metrics, err := c.initOTelMetrics()
			if err != nil {
				c.logger.Warn("otel metrics disabled", "error", err)
				return
			}
			c.otelMetrics = metrics
		}
	}
}

// New creates a Compiler.
func New(opts ...Option) *Compiler {
	c := &Compiler{
		logger:   slog.Default(),
		clock:    time.Now,
		pageSize: "A4",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Markdown compiles the snapshot into a UTF-8 Markdown document.
// Compiling the same snapshot twice returns byte-identical output
// except for the dated footer, which is stable within a clock tick.
func (c *Compiler) Markdown(ctx context.Context, snap graph.Snapshot) (string, error) {
	var out string
	err := c.run(ctx, TargetMarkdown, snap, func(components []graph.Component) error {
		out = renderMarkdown(components, c.clock())
		return nil
	})
	return out, err
}

// Preview compiles the snapshot into the in-memory block tree used by
// interactive previews.
func (c *Compiler) Preview(ctx context.Context, snap graph.Snapshot) (Preview, error) {
	var out Preview
	err := c.run(ctx, TargetPreview, snap, func(components []graph.Component) error {
		out = renderPreview(components)
		return nil
	})
	return out, err
}

// HTML compiles the snapshot into the print-oriented HTML document.
// Evidence images are embedded as data URIs from already-registered
// bytes; nothing is fetched.
func (c *Compiler) HTML(ctx context.Context, snap graph.Snapshot) (string, error) {
	var out string
	err := c.run(ctx, TargetHTML, snap, func(components []graph.Component) error {
		doc, err := renderHTML(components, c.registry, c.clock(), c.pageSize)
		if err != nil {
			return err
		}
		out = doc
		return nil
	})
	return out, err
}

// Archive compiles the snapshot into a ZIP bundle and writes it to w.
// The bundle holds report.md plus an evidence/ directory with every
// referenced file, so each path the document links resolves inside the
// archive. The archive is built in memory first; on error nothing is
// written to w.
func (c *Compiler) Archive(ctx context.Context, snap graph.Snapshot, w io.Writer) error {
	return c.run(ctx, TargetArchive, snap, func(components []graph.Component) error {
		buf, err := renderArchive(components, c.registry, c.clock())
		if err != nil {
			return err
		}
		_, err = w.Write(buf)
		if err != nil {
			return sdk.NewRenderingError("report.Archive", err)
		}
		return nil
	})
}

// run wraps one compile: re-entrancy guard, linearization, telemetry,
// timing log.
func (c *Compiler) run(ctx context.Context, target Target, snap graph.Snapshot, render func([]graph.Component) error) error {
	if !c.rendering.CompareAndSwap(false, true) {
		return sdk.NewRenderingError("report.Compile", sdk.ErrCompileInProgress)
	}
	defer c.rendering.Store(false)

	components := graph.Linearize(snap)
	ctx, span := c.startCompileSpan(ctx, target, len(components))

	start := time.Now()
	err := render(components)
	duration := time.Since(start)

	c.recordOTelCompile(ctx, span, target, duration, err)
	if err != nil {
		c.logger.Error("compile failed", "target", target, "duration", duration, "error", err)
		return err
	}
	c.logger.Debug("compiled report", "target", target, "components", len(components), "duration", duration)
	return nil
}
