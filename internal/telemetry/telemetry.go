// Package telemetry wires the OpenTelemetry tracer provider used by the
// pagination and loading paths.
package telemetry

import (
	"context"
	"fmt"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/strandtui/strand/internal/config"
	"github.com/strandtui/strand/internal/log"
)

// Init installs the global tracer provider per cfg and returns a shutdown
// function. When telemetry is disabled the returned shutdown is a no-op and
// spans go to the default no-op provider.
func Init(ctx context.Context, cfg config.Telemetry) (func(context.Context) error, error) {
	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil
	}

	var (
		exporter sdktrace.SpanExporter
		closer   func() error
		err      error
	)
	switch cfg.Exporter {
	case "otlp":
		exporter, err = otlptracegrpc.New(ctx,
			otlptracegrpc.WithEndpoint(cfg.Endpoint),
			otlptracegrpc.WithInsecure(),
		)
	case "stdout":
		w := os.Stderr
		if cfg.TracePath != "" {
			f, openErr := os.OpenFile(cfg.TracePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if openErr != nil {
				return nil, fmt.Errorf("opening trace file: %w", openErr)
			}
			w = f
			closer = f.Close
		}
		exporter, err = stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
	default:
		return nil, fmt.Errorf("unknown telemetry exporter %q", cfg.Exporter)
	}
	if err != nil {
		return nil, fmt.Errorf("creating %s exporter: %w", cfg.Exporter, err)
	}

	res := resource.NewSchemaless(
		attribute.String("service.name", "strand"),
	)
	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(provider)

	log.Info(log.CatTelemetry, "tracing enabled", "exporter", cfg.Exporter)
	return func(ctx context.Context) error {
		shutdownErr := provider.Shutdown(ctx)
		if closer != nil {
			if closeErr := closer(); shutdownErr == nil {
				shutdownErr = closeErr
			}
		}
		return shutdownErr
	}, nil
}
