package telemetry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aaravmahajanofficial/storefront/internal/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

type ShutdownFunc func(ctx context.Context) error

// Setup installs the global tracer provider and propagators. Without an
// exporter endpoint spans are still created, so trace ids reach the logs and
// outgoing headers, but nothing is exported.
func Setup(ctx context.Context, cfg config.Otel, version string) (*sdktrace.TracerProvider, ShutdownFunc, error) {

	res, err := resource.Merge(
		resource.Default(),
		resource.NewSchemaless(
			attribute.String("service.name", cfg.ServiceName),
			attribute.String("service.version", version),
		),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build otel resource: %w", err)
	}

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(samplerRatio(cfg.SamplerRatio)))),
	}

	if cfg.ExporterEndpoint != "" {
		exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(cfg.ExporterEndpoint))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create otlp exporter: %w", err)
		}
		opts = append(opts, sdktrace.WithBatcher(exporter))
		slog.Info("Tracing enabled", slog.String("endpoint", cfg.ExporterEndpoint))
	}

	provider := sdktrace.NewTracerProvider(opts...)

	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	return provider, provider.Shutdown, nil
}

func samplerRatio(ratio float64) float64 {
	switch {
	case ratio <= 0:
		return 0
	case ratio > 1:
		return 1
	default:
		return ratio
	}
}
