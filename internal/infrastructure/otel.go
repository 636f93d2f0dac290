package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"

	"aeroreduce/internal/config"
	"aeroreduce/pkg/contracts"
)

const (
	ServiceName = "aeroreduce"
	MeterName   = "aeroreduce"
)

// OTelConfig holds OpenTelemetry configuration
type OTelConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	TraceExporter  string // "stdout", "none"
	MetricExporter string // "prometheus", "none"
	EnableMetrics  bool
	EnableTracing  bool
	SampleRatio    float64
}

// OTelProviders holds the OpenTelemetry providers
type OTelProviders struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Tracer         trace.Tracer
	Meter          metric.Meter
	PrometheusHTTP http.Handler
	Logger         *slog.Logger
}

// DefaultOTelConfig returns a default OpenTelemetry configuration
func DefaultOTelConfig() *OTelConfig {
	return OTelConfigFrom(config.Default().Telemetry)
}

// OTelConfigFrom maps the telemetry section of the application config
func OTelConfigFrom(t config.TelemetryConfig) *OTelConfig {
	env := t.Environment
	if env == "" {
		env = "development"
	}
	return &OTelConfig{
		ServiceName:    ServiceName,
		ServiceVersion: contracts.Version,
		Environment:    env,
		TraceExporter:  t.TraceExporter,
		MetricExporter: t.MetricExporter,
		EnableMetrics:  t.EnableMetrics,
		EnableTracing:  t.EnableTracing,
		SampleRatio:    t.SampleRatio,
	}
}

// InitializeOTel initializes tracing and metrics. Disabled signals fall back to
// the global no-op providers, so Tracer and Meter are always usable.
func InitializeOTel(cfg *OTelConfig, logger *slog.Logger) (*OTelProviders, error) {
	if cfg == nil {
		cfg = DefaultOTelConfig()
	}
	if logger == nil {
		logger = GetLogger()
	}
	ctx := context.Background()

	res, err := createResource(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	providers := &OTelProviders{
		Tracer: otel.Tracer(MeterName),
		Meter:  otel.Meter(MeterName),
		Logger: logger,
	}

	if cfg.EnableTracing {
		if err := initializeTracing(ctx, cfg, res, providers); err != nil {
			return nil, fmt.Errorf("failed to initialize tracing: %w", err)
		}
	}
	if cfg.EnableMetrics {
		if err := initializeMetrics(ctx, cfg, res, providers); err != nil {
			return nil, fmt.Errorf("failed to initialize metrics: %w", err)
		}
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	logger.InfoContext(ctx, "OpenTelemetry initialized",
		slog.String("service", cfg.ServiceName),
		slog.String("version", cfg.ServiceVersion),
		slog.Bool("tracing_enabled", cfg.EnableTracing),
		slog.Bool("metrics_enabled", cfg.EnableMetrics))

	return providers, nil
}

func createResource(cfg *OTelConfig) (*resource.Resource, error) {
	hostname, _ := os.Hostname()
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.ServiceVersion),
		semconv.DeploymentEnvironmentName(cfg.Environment),
		attribute.String("service.instance.id", fmt.Sprintf("%s-%d", hostname, time.Now().Unix())),
	), nil
}

func initializeTracing(ctx context.Context, cfg *OTelConfig, res *resource.Resource, providers *OTelProviders) error {
	var exporter sdktrace.SpanExporter
	var err error

	switch cfg.TraceExporter {
	case "stdout":
		exporter, err = stdouttrace.New(
			stdouttrace.WithWriter(os.Stderr),
			stdouttrace.WithPrettyPrint(),
		)
	case "none", "":
		return nil
	default:
		return fmt.Errorf("unsupported trace exporter: %s", cfg.TraceExporter)
	}
	if err != nil {
		return fmt.Errorf("failed to create trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.TraceIDRatioBased(cfg.SampleRatio)),
	)
	providers.TracerProvider = tp
	providers.Tracer = tp.Tracer(MeterName, trace.WithInstrumentationVersion(cfg.ServiceVersion))
	otel.SetTracerProvider(tp)

	providers.Logger.DebugContext(ctx, "Tracing initialized",
		slog.String("exporter", cfg.TraceExporter),
		slog.Float64("sample_ratio", cfg.SampleRatio))
	return nil
}

func initializeMetrics(ctx context.Context, cfg *OTelConfig, res *resource.Resource, providers *OTelProviders) error {
	switch cfg.MetricExporter {
	case "prometheus":
		// private registry: InitializeOTel may run more than once per process
		registry := promclient.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		exporter, err := prometheus.New(prometheus.WithRegisterer(registry))
		if err != nil {
			return fmt.Errorf("failed to create prometheus exporter: %w", err)
		}
		providers.PrometheusHTTP = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

		mp := sdkmetric.NewMeterProvider(
			sdkmetric.WithResource(res),
			sdkmetric.WithReader(exporter),
		)
		providers.MeterProvider = mp
		providers.Meter = mp.Meter(MeterName, metric.WithInstrumentationVersion(cfg.ServiceVersion))
		otel.SetMeterProvider(mp)
	case "none", "":
		return nil
	default:
		return fmt.Errorf("unsupported metric exporter: %s", cfg.MetricExporter)
	}

	providers.Logger.DebugContext(ctx, "Metrics initialized",
		slog.String("exporter", cfg.MetricExporter))
	return nil
}

// Metrics holds the application metrics
type Metrics struct {
	HTTPRequestsTotal   metric.Int64Counter
	HTTPRequestDuration metric.Float64Histogram
	HTTPActiveRequests  metric.Int64UpDownCounter

	CasesTotal   metric.Int64Counter
	CaseDuration metric.Float64Histogram
	SweepsTotal  metric.Int64Counter
	SweepCases   metric.Int64Histogram
	ActiveSweeps metric.Int64UpDownCounter
}

// CreateMetrics registers the application instruments on meter
func CreateMetrics(meter metric.Meter) (*Metrics, error) {
	var m Metrics
	var errs []error
	collect := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	var err error
	m.HTTPRequestsTotal, err = meter.Int64Counter("http_requests_total",
		metric.WithDescription("Total number of HTTP requests"))
	collect(err)
	m.HTTPRequestDuration, err = meter.Float64Histogram("http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"))
	collect(err)
	m.HTTPActiveRequests, err = meter.Int64UpDownCounter("http_active_requests",
		metric.WithDescription("Number of active HTTP requests"))
	collect(err)

	m.CasesTotal, err = meter.Int64Counter("reduction_cases_total",
		metric.WithDescription("Angle-of-attack cases reduced, by outcome"))
	collect(err)
	m.CaseDuration, err = meter.Float64Histogram("reduction_case_duration_seconds",
		metric.WithDescription("Time to reduce one case"),
		metric.WithUnit("s"))
	collect(err)
	m.SweepsTotal, err = meter.Int64Counter("reduction_sweeps_total",
		metric.WithDescription("Sweeps run, by outcome"))
	collect(err)
	m.SweepCases, err = meter.Int64Histogram("reduction_sweep_cases",
		metric.WithDescription("Number of cases per sweep"))
	collect(err)
	m.ActiveSweeps, err = meter.Int64UpDownCounter("reduction_active_sweeps",
		metric.WithDescription("Sweeps currently running"))
	collect(err)

	if len(errs) > 0 {
		return nil, fmt.Errorf("create metrics: %w", errors.Join(errs...))
	}
	return &m, nil
}

// RecordCase records the outcome of one case. Kind is empty on success.
func (m *Metrics) RecordCase(ctx context.Context, kind string, duration time.Duration) {
	if m == nil {
		return
	}
	status := "success"
	if kind != "" {
		status = "failure"
	}
	attrs := metric.WithAttributes(
		attribute.String("status", status),
		attribute.String("error.kind", kind),
	)
	m.CasesTotal.Add(ctx, 1, attrs)
	m.CaseDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordSweep records a finished sweep
func (m *Metrics) RecordSweep(ctx context.Context, cases, failed int) {
	if m == nil {
		return
	}
	status := "success"
	switch {
	case failed == cases && cases > 0:
		status = "failure"
	case failed > 0:
		status = "partial"
	}
	m.SweepsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
	m.SweepCases.Record(ctx, int64(cases))
}

// Shutdown flushes and stops the providers
func (p *OTelProviders) Shutdown(ctx context.Context) error {
	var errs []error
	if p.TracerProvider != nil {
		if err := p.TracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider shutdown: %w", err))
		}
	}
	if p.MeterProvider != nil {
		if err := p.MeterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider shutdown: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("opentelemetry shutdown: %w", errors.Join(errs...))
	}
	p.Logger.DebugContext(ctx, "OpenTelemetry shutdown complete")
	return nil
}

// TraceIDFromContext extracts the span trace ID for logging correlation
func TraceIDFromContext(ctx context.Context) string {
	spanCtx := trace.SpanContextFromContext(ctx)
	if spanCtx.IsValid() {
		return spanCtx.TraceID().String()
	}
	return ""
}

// RecordError records an error on the current span
func RecordError(ctx context.Context, err error, options ...trace.EventOption) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.RecordError(err, options...)
	span.SetStatus(codes.Error, err.Error())
}
