// Package tracing configures OpenTelemetry for the blog service.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// ServiceName is reported as the service.name resource attribute and names the tracer.
const ServiceName = "duo-blog"

// GetTracer returns the service tracer from the current global provider.
// It is resolved per call so a provider installed after package init,
// including the ones tests install, takes effect.
//
//	ctx, span := tracing.GetTracer().Start(ctx, "article.Create")
//	defer span.End()
func GetTracer() trace.Tracer {
	return otel.Tracer(ServiceName)
}

// Config controls the tracer provider.
type Config struct {
	ServiceVersion string
	// SampleRatio is the fraction of root spans recorded; values outside
	// (0, 1] fall back to always sampling.
	SampleRatio float64
	// Exporter receives finished spans. Nil keeps spans in-process only,
	// which is still enough for trace ID propagation and log correlation.
	Exporter sdktrace.SpanExporter
}

// Init installs a global SDK tracer provider and the W3C trace context and
// baggage propagators. The returned function flushes and shuts the provider down.
func Init(cfg Config) (func(context.Context) error, error) {
	res, err := resource.Merge(
		resource.Default(),
		resource.NewSchemaless(
			attribute.String("service.name", ServiceName),
			attribute.String("service.version", cfg.ServiceVersion),
		),
	)
	if err != nil {
		return nil, err
	}

	sampler := sdktrace.AlwaysSample()
	if cfg.SampleRatio > 0 && cfg.SampleRatio < 1 {
		sampler = sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))
	}

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler),
	}
	if cfg.Exporter != nil {
		opts = append(opts, sdktrace.WithBatcher(cfg.Exporter))
	}

	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return tp.Shutdown, nil
}
