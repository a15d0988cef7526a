// Package telemetry wraps a simulation run in an OpenTelemetry span. Spans
// are exported through the stdout exporter, either to os.Stdout or to a file.
package telemetry

import (
	"context"
	"io"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/inference-sim/feedback-sim/sim"
)

const serviceName = "feedback-sim"

// Tracer exports one span per simulation run.
type Tracer struct {
	provider *sdktrace.TracerProvider
	tracer   trace.Tracer
}

// New creates a Tracer writing spans to w. The caller must Shutdown it to
// flush pending spans.
func New(w io.Writer, runID string) (*Tracer, error) {
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		return nil, errors.Wrap(err, "creating span exporter")
	}
	res := resource.NewSchemaless(
		attribute.String("service.name", serviceName),
		attribute.String("run.id", runID),
	)
	provider := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(sdktrace.NewSimpleSpanProcessor(exporter)),
		sdktrace.WithResource(res),
	)
	return &Tracer{provider: provider, tracer: provider.Tracer(serviceName)}, nil
}

// Run executes s inside a span annotated with the configuration and the
// outcome of the run.
func (t *Tracer) Run(ctx context.Context, s *sim.Simulator) (*sim.Result, error) {
	_, span := t.tracer.Start(ctx, "simulation.run", trace.WithAttributes(
		attribute.Int("sim.servers", s.Config.Servers),
		attribute.Int("sim.threshold", s.Config.Threshold),
	))
	defer span.End()

	result, err := s.Run()
	span.SetAttributes(attribute.Int("sim.events", s.EventCount()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(
		attribute.Int("sim.records", len(result.Records)),
		attribute.Int("sim.jobs_departed", len(result.Departed)),
		attribute.Float64("sim.makespan", result.Metrics.Makespan),
		attribute.Float64("sim.mean_response_time", result.Metrics.MeanResponseTime()),
	)
	span.SetStatus(codes.Ok, "")
	return result, nil
}

// Shutdown flushes and stops the exporter.
func (t *Tracer) Shutdown(ctx context.Context) error {
	return t.provider.Shutdown(ctx)
}
