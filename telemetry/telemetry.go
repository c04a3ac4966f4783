// Package telemetry initializes OpenTelemetry tracing and metrics with
// file-based exporters.
package telemetry

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// Init sets up tracing and metrics. Traces and metrics are exported to
// rotated files under logDir so they can be inspected without a collector;
// a collector can still pick them up via the SDK.
func Init(ctx context.Context, logDir string) (trace.Tracer, metric.Meter, func(), error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName("paperchat"),
			semconv.ServiceVersion("0.1.0"),
		),
	)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create resource: %w", err)
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	traceFile := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, "paperchat_traces.log"),
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}
	traceExporter, err := stdouttrace.New(
		stdouttrace.WithWriter(traceFile),
	)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	metricsFile := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, "paperchat_metrics.log"),
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}
	metricExporter, err := stdoutmetric.New(
		stdoutmetric.WithWriter(metricsFile),
	)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create metric exporter: %w", err)
	}
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(
			sdkmetric.NewPeriodicReader(
				metricExporter,
				sdkmetric.WithInterval(30*time.Second),
			),
		),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	tracer := tp.Tracer("paperchat")
	meter := mp.Meter("paperchat")

	cleanup := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = tp.Shutdown(shutdownCtx)
		_ = mp.Shutdown(shutdownCtx)
	}

	return tracer, meter, cleanup, nil
}

// ChatMetrics holds the conversation subsystem's instruments. A nil
// ChatMetrics is valid and records nothing.
type ChatMetrics struct {
	Turns              metric.Int64Counter
	CompletionFailures metric.Int64Counter
	CompletionLatency  metric.Float64Histogram
}

// NewChatMetrics registers the chat instruments on meter.
func NewChatMetrics(meter metric.Meter) (*ChatMetrics, error) {
	turns, err := meter.Int64Counter("chat.turns",
		metric.WithDescription("Committed conversation turns"))
	if err != nil {
		return nil, err
	}
	failures, err := meter.Int64Counter("chat.completion_failures",
		metric.WithDescription("Completion calls that returned no usable text"))
	if err != nil {
		return nil, err
	}
	latency, err := meter.Float64Histogram("chat.completion_latency_ms",
		metric.WithDescription("Completion round-trip latency in milliseconds"))
	if err != nil {
		return nil, err
	}
	return &ChatMetrics{
		Turns:              turns,
		CompletionFailures: failures,
		CompletionLatency:  latency,
	}, nil
}

// RecordTurn increments the committed-turn counter.
func (m *ChatMetrics) RecordTurn(ctx context.Context, n int64) {
	if m == nil {
		return
	}
	m.Turns.Add(ctx, n)
}

// RecordCompletionFailure increments the failed-completion counter.
func (m *ChatMetrics) RecordCompletionFailure(ctx context.Context) {
	if m == nil {
		return
	}
	m.CompletionFailures.Add(ctx, 1)
}

// RecordCompletionLatency observes one completion round trip.
func (m *ChatMetrics) RecordCompletionLatency(ctx context.Context, d time.Duration) {
	if m == nil {
		return
	}
	m.CompletionLatency.Record(ctx, float64(d.Milliseconds()))
}
