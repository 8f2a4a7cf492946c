package otel

import (
	"cmp"
	"context"

	"hotel/config"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"google.golang.org/grpc/credentials/insecure"
)

const defaultServiceName = "hotel"

type Otel interface {
	NewScope(ctx context.Context, scopeName, spanName string) (context.Context, Scope)
}

type otelImpl struct {
	TracerProvider *trace.TracerProvider
}

func (o *otelImpl) NewScope(ctx context.Context, scopeName, spanName string) (context.Context, Scope) {
	ctx, span := o.TracerProvider.Tracer(scopeName).Start(ctx, spanName)

	return ctx, NewScope(span)
}

// New exports spans over OTLP/gRPC to EXTERNAL_OTEL_ENDPOINT. Without an endpoint spans are
// recorded but never exported.
func New(config *config.Config) Otel {
	return NewWithOptions(config, exporterOptions(config)...)
}

// NewWithOptions builds the tracer provider with the hotel resource and extra options, e.g. a
// span recorder in tests.
func NewWithOptions(config *config.Config, opts ...trace.TracerProviderOption) Otel {
	opts = append([]trace.TracerProviderOption{trace.WithResource(serviceResource(config))}, opts...)

	traceProvider := trace.NewTracerProvider(opts...)

	otel.SetTracerProvider(traceProvider)

	return &otelImpl{
		TracerProvider: traceProvider,
	}
}

func exporterOptions(config *config.Config) []trace.TracerProviderOption {
	endpoint := config.External.Otel.Endpoint
	if endpoint == "" {
		log.Warn().Msg("EXTERNAL_OTEL_ENDPOINT not set, spans will not be exported")

		return nil
	}

	exporter, err := otlptracegrpc.New(context.Background(),
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithTLSCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create OTLP exporter")
	}

	return []trace.TracerProviderOption{trace.WithBatcher(exporter)}
}

func serviceResource(config *config.Config) *resource.Resource {
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(cmp.Or(config.App.Name, defaultServiceName)),
		semconv.DeploymentEnvironmentKey.String(cmp.Or(config.Server.Env, "local")),
	)
}
