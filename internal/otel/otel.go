package otel

import (
	"context"
	"sync"

	"github.com/driftcheck/specdiff/internal/diffevents"
	"github.com/driftcheck/specdiff/internal/eventbus"
	"github.com/driftcheck/specdiff/internal/reqid"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
)

// Setup configures OpenTelemetry and attaches eventbus subscribers.
// If endpoint is empty, no telemetry is configured.
func Setup(endpoint, service string) (func(context.Context) error, error) {
	if endpoint == "" {
		return func(context.Context) error { return nil }, nil
	}
	exp, err := otlptracegrpc.New(context.Background(),
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithDialOption(grpc.WithInsecure()))
	if err != nil {
		return nil, err
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(service),
		)),
	)
	otel.SetTracerProvider(tp)

	sub := &subscriber{tracer: otel.Tracer("specdiff")}
	sub.register()

	return tp.Shutdown, nil
}

type subscriber struct {
	tracer         trace.Tracer
	chunkLoadSpans sync.Map // rid -> trace.Span
	projBuildSpans sync.Map // rid -> trace.Span
	diffRunSpans   sync.Map // rid -> trace.Span
}

func (s *subscriber) register() {
	eventbus.Subscribe(func(ctx context.Context, e diffevents.ChunkLoadStart) {
		rid, _ := reqid.FromContext(ctx)
		_, span := s.tracer.Start(ctx, "chunk.load")
		span.SetAttributes(attribute.String("chunk.source", e.SourceName))
		s.chunkLoadSpans.Store(rid, span)
	})

	eventbus.Subscribe(func(ctx context.Context, e diffevents.ChunkLoadFinish) {
		rid, _ := reqid.FromContext(ctx)
		v, ok := s.chunkLoadSpans.LoadAndDelete(rid)
		if !ok {
			return
		}
		span := v.(trace.Span)
		span.SetAttributes(attribute.Int("chunk.count", e.ChunkCount))
		if e.Err != nil {
			span.RecordError(e.Err)
		}
		span.End()
	})

	eventbus.Subscribe(func(ctx context.Context, e diffevents.ProjectionBuildStart) {
		rid, _ := reqid.FromContext(ctx)
		parent := ctx
		if v, ok := s.chunkLoadSpans.Load(rid); ok {
			parent = trace.ContextWithSpan(ctx, v.(trace.Span))
		}
		_, span := s.tracer.Start(parent, "projection.build")
		span.SetAttributes(attribute.Int("chunk.count", e.ChunkCount))
		s.projBuildSpans.Store(rid, span)
	})

	eventbus.Subscribe(func(ctx context.Context, e diffevents.ProjectionBuildFinish) {
		rid, _ := reqid.FromContext(ctx)
		v, ok := s.projBuildSpans.LoadAndDelete(rid)
		if !ok {
			return
		}
		span := v.(trace.Span)
		span.SetAttributes(
			attribute.Int("projection.shape_warnings", e.ShapeWarnings),
			attribute.Int("projection.endpoint_warnings", e.EndpointWarnings),
		)
		if e.Err != nil {
			span.RecordError(e.Err)
		}
		span.End()
	})

	eventbus.Subscribe(func(ctx context.Context, e diffevents.DiffRunStart) {
		rid, _ := reqid.FromContext(ctx)
		_, span := s.tracer.Start(ctx, "diff.run")
		span.SetAttributes(
			semconv.HTTPMethodKey.String(e.Method),
			attribute.String("http.target", e.Path),
		)
		s.diffRunSpans.Store(rid, span)
	})

	eventbus.Subscribe(func(ctx context.Context, e diffevents.DiffRunFinish) {
		rid, _ := reqid.FromContext(ctx)
		v, ok := s.diffRunSpans.LoadAndDelete(rid)
		if !ok {
			return
		}
		span := v.(trace.Span)
		span.SetAttributes(attribute.Int("diff.result_count", e.ResultCount))
		span.End()
	})
}
