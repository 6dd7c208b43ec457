package engine

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MeterName is the instrumentation scope of the engine metrics
const MeterName = "github.com/aescanero/dago-template-engine"

// MetricsRecorder records engine metrics.
// Use NewMetricsRecorder for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordCompile records a compile with its duration, whether the cache served it and its error.
	RecordCompile(ctx context.Context, duration time.Duration, cached bool, err error)

	// RecordRender records a render through Engine.Render.
	RecordRender(ctx context.Context, duration time.Duration, err error)
}

// NoopMetrics is a MetricsRecorder that does nothing.
type NoopMetrics struct{}

// Compile-time interface check.
var _ MetricsRecorder = NoopMetrics{}

// RecordCompile does nothing.
func (NoopMetrics) RecordCompile(_ context.Context, _ time.Duration, _ bool, _ error) {}

// RecordRender does nothing.
func (NoopMetrics) RecordRender(_ context.Context, _ time.Duration, _ error) {}

type otelMetrics struct {
	compiles       metric.Int64Counter
	compileErrors  metric.Int64Counter
	compileLatency metric.Float64Histogram
	renders        metric.Int64Counter
	renderErrors   metric.Int64Counter
	renderLatency  metric.Float64Histogram
}

// NewMetricsRecorder returns a MetricsRecorder using meter.
// A nil meter selects the global OTel meter provider.
func NewMetricsRecorder(meter metric.Meter) (MetricsRecorder, error) {
	if meter == nil {
		meter = otel.Meter(MeterName)
	}

	compiles, err := meter.Int64Counter("template.compiles",
		metric.WithDescription("Number of template compiles"),
	)
	if err != nil {
		return nil, err
	}

	compileErrors, err := meter.Int64Counter("template.compile.errors",
		metric.WithDescription("Number of failed template compiles"),
	)
	if err != nil {
		return nil, err
	}

	compileLatency, err := meter.Float64Histogram("template.compile.latency_ms",
		metric.WithDescription("Template compile latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	renders, err := meter.Int64Counter("template.renders",
		metric.WithDescription("Number of template renders"),
	)
	if err != nil {
		return nil, err
	}

	renderErrors, err := meter.Int64Counter("template.render.errors",
		metric.WithDescription("Number of failed template renders"),
	)
	if err != nil {
		return nil, err
	}

	renderLatency, err := meter.Float64Histogram("template.render.latency_ms",
		metric.WithDescription("Template render latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		compiles:       compiles,
		compileErrors:  compileErrors,
		compileLatency: compileLatency,
		renders:        renders,
		renderErrors:   renderErrors,
		renderLatency:  renderLatency,
	}, nil
}

// RecordCompile records a compile.
func (m *otelMetrics) RecordCompile(ctx context.Context, duration time.Duration, cached bool, err error) {
	attrs := metric.WithAttributes(attribute.Bool("cached", cached))

	m.compiles.Add(ctx, 1, attrs)
	m.compileLatency.Record(ctx, float64(duration.Microseconds())/1000, attrs)

	if err != nil {
		m.compileErrors.Add(ctx, 1)
	}
}

// RecordRender records a render.
func (m *otelMetrics) RecordRender(ctx context.Context, duration time.Duration, err error) {
	m.renders.Add(ctx, 1)
	m.renderLatency.Record(ctx, float64(duration.Microseconds())/1000)

	if err != nil {
		m.renderErrors.Add(ctx, 1)
	}
}
