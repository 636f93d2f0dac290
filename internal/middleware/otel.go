package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"

	"aeroreduce/internal/infrastructure"
)

// OTelMiddleware traces every HTTP request and records the HTTP instruments
type OTelMiddleware struct {
	tracer  trace.Tracer
	metrics *infrastructure.Metrics
	logger  *slog.Logger
}

// NewOTelMiddleware creates the middleware from initialised providers
func NewOTelMiddleware(providers *infrastructure.OTelProviders, metrics *infrastructure.Metrics) *OTelMiddleware {
	return &OTelMiddleware{
		tracer:  providers.Tracer,
		metrics: metrics,
		logger:  providers.Logger,
	}
}

// Handler returns the middleware handler function
func (m *OTelMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

		ctx, span := m.tracer.Start(ctx, fmt.Sprintf("%s %s", r.Method, r.URL.Path),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				semconv.HTTPRequestMethodKey.String(r.Method),
				semconv.URLPathKey.String(r.URL.Path),
				semconv.ServerAddressKey.String(r.Host),
				semconv.UserAgentOriginalKey.String(r.UserAgent()),
				semconv.HTTPRequestBodySizeKey.Int64(r.ContentLength),
			),
		)
		defer span.End()

		if sc := span.SpanContext(); sc.IsValid() {
			ctx = infrastructure.WithTraceID(ctx, sc.TraceID().String())
		}
		r = r.WithContext(ctx)

		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		if m.metrics != nil {
			m.metrics.HTTPActiveRequests.Add(ctx, 1)
			defer m.metrics.HTTPActiveRequests.Add(ctx, -1)
		}

		start := time.Now()
		next.ServeHTTP(ww, r)
		duration := time.Since(start)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := routePattern(r)

		if m.metrics != nil {
			attrs := metric.WithAttributes(
				attribute.String("method", r.Method),
				attribute.String("route", route),
				attribute.Int("status_code", status),
			)
			m.metrics.HTTPRequestsTotal.Add(ctx, 1, attrs)
			m.metrics.HTTPRequestDuration.Record(ctx, duration.Seconds(), attrs)
		}

		span.SetName(fmt.Sprintf("%s %s", r.Method, route))
		span.SetAttributes(
			semconv.HTTPRouteKey.String(route),
			semconv.HTTPResponseStatusCodeKey.Int(status),
			semconv.HTTPResponseBodySizeKey.Int(ww.BytesWritten()),
		)
		if status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}

		m.logger.DebugContext(ctx, "request traced",
			slog.String("route", route),
			slog.Int("status_code", status),
			slog.Duration("duration", duration),
		)
	})
}

// routePattern prefers the matched chi pattern to keep metric cardinality low
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
		return rctx.RoutePattern()
	}
	return r.URL.Path
}
