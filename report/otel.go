package report

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// otelMetrics holds the OpenTelemetry metric instruments for the
// compiler. They are created once during WithOTel configuration and
// reused for every compile run.
type otelMetrics struct {
	// durationHistogram records compile duration in milliseconds
	durationHistogram metric.Float64Histogram

	// countCounter increments for each compile run
	countCounter metric.Int64Counter
}

// initOTelMetrics creates the metric instruments. Called once when
// WithOTel is invoked with a valid MeterProvider.
func (c *Compiler) initOTelMetrics() (*otelMetrics, error) {
	if c.otelMeter == nil {
		return nil, nil
	}

	metrics := &otelMetrics{}
	var err error

	metrics.durationHistogram, err = c.otelMeter.Float64Histogram(
		"report.compile.duration",
		metric.WithDescription("Report compile duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("create duration histogram: %w", err)
	}

	metrics.countCounter, err = c.otelMeter.Int64Counter(
		"report.compile.count",
		metric.WithDescription("Number of compile runs"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create count counter: %w", err)
	}

	return metrics, nil
}

// startCompileSpan opens the per-run span when a tracer is configured.
// Callers must handle the nil span it returns otherwise.
func (c *Compiler) startCompileSpan(ctx context.Context, target Target, components int) (context.Context, trace.Span) {
	if c.otelTracer == nil {
		return ctx, nil
	}
	ctx, span := c.otelTracer.Start(ctx, "report.compile")
	span.SetAttributes(
		attribute.String("report.target", target.String()),
		attribute.Int("report.component_count", components),
	)
	return ctx, span
}

// recordOTelCompile finishes the span and records metrics for one
// compile run. If OTel is not configured it returns silently.
func (c *Compiler) recordOTelCompile(ctx context.Context, span trace.Span, target Target, duration time.Duration, compileErr error) {
	if span != nil {
		if compileErr != nil {
			span.RecordError(compileErr)
			span.SetStatus(codes.Error, compileErr.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()
	}

	if c.otelMetrics == nil {
		return
	}

	opts := metric.WithAttributes(
		attribute.String("report.target", target.String()),
		attribute.Bool("report.success", compileErr == nil),
	)
	if c.otelMetrics.durationHistogram != nil {
		c.otelMetrics.durationHistogram.Record(ctx, float64(duration.Milliseconds()), opts)
	}
	if c.otelMetrics.countCounter != nil {
		c.otelMetrics.countCounter.Add(ctx, 1, opts)
	}
}
