package telemetry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

type Options struct {
	// Endpoint is the OTLP gRPC collector address. Empty keeps the global
	// no-op providers.
	Endpoint       string
	ServiceName    string
	ServiceVersion string
}

// InitOtel installs tracer and meter providers exporting to the collector and
// returns a shutdown function that flushes them.
func InitOtel(ctx context.Context, opts Options) (func(context.Context) error, error) {
	if opts.Endpoint == "" {
		slog.Info("[OTEL] No collector endpoint configured, telemetry stays in-process")
		return func(context.Context) error { return nil }, nil
	}

	var cleanup shutdownStack
	fail := func(err error) (func(context.Context) error, error) {
		return nil, errors.Join(err, cleanup.run(ctx))
	}

	conn, err := grpc.NewClient(opts.Endpoint,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gRPC connection to OTLP collector: %w", err)
	}
	cleanup.push(func(context.Context) error {
		if err := conn.Close(); err != nil {
			return fmt.Errorf("failed to close gRPC connection: %w", err)
		}
		return nil
	})

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(opts.ServiceName),
			semconv.ServiceVersion(opts.ServiceVersion),
		),
	)
	if err != nil {
		return fail(fmt.Errorf("failed to create resource: %w", err))
	}

	traceExporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
	if err != nil {
		return fail(fmt.Errorf("failed to create OTLP trace exporter: %w", err))
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
	)
	cleanup.push(func(ctx context.Context) error {
		if err := tp.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown TracerProvider: %w", err)
		}
		return nil
	})

	metricExporter, err := otlpmetricgrpc.New(ctx, otlpmetricgrpc.WithGRPCConn(conn))
	if err != nil {
		return fail(fmt.Errorf("failed to create OTLP metric exporter: %w", err))
	}
	mp := metric.NewMeterProvider(
		metric.WithReader(metric.NewPeriodicReader(metricExporter)),
		metric.WithResource(res),
	)
	cleanup.push(func(ctx context.Context) error {
		if err := mp.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown MeterProvider: %w", err)
		}
		return nil
	})

	// Globals are only installed once every piece exists, so a failed init
	// leaves the no-op providers in place.
	otel.SetTracerProvider(tp)
	otel.SetMeterProvider(mp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	slog.Info("[OTEL] Exporting traces and metrics", "endpoint", opts.Endpoint)

	shutdown := func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return cleanup.run(ctx)
	}

	return shutdown, nil
}

// shutdownStack releases resources in the reverse order they were acquired.
type shutdownStack []func(context.Context) error

func (s *shutdownStack) push(fn func(context.Context) error) {
	*s = append(*s, fn)
}

// run calls every function even when some fail and empties the stack.
func (s *shutdownStack) run(ctx context.Context) error {
	var errs []error
	for i := len(*s) - 1; i >= 0; i-- {
		if err := (*s)[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	*s = nil
	return errors.Join(errs...)
}
