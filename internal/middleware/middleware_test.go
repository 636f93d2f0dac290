package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "aeroreduce/internal/errors"
	"aeroreduce/internal/infrastructure"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRequestID(t *testing.T) {
	var gotReqID, gotTraceID string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReqID = chimw.GetReqID(r.Context())
		gotTraceID = infrastructure.GetTraceID(r.Context())
	}))

	t.Run("generated", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Len(t, gotReqID, 36)
		assert.Equal(t, gotReqID, gotTraceID)
		assert.Equal(t, gotReqID, w.Header().Get(chimw.RequestIDHeader))
	})

	t.Run("propagated", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set(chimw.RequestIDHeader, "run-42")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		assert.Equal(t, "run-42", gotReqID)
		assert.Equal(t, "run-42", w.Header().Get(chimw.RequestIDHeader))
	})
}

func TestGetRequestIDFallsBackToTraceID(t *testing.T) {
	ctx := infrastructure.WithTraceID(context.Background(), "trace-only")
	assert.Equal(t, "trace-only", GetRequestID(ctx))
}

func TestStructuredLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := infrastructure.NewLogger(&buf, "info")

	handler := RequestID(StructuredLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	})))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/v1/cases/reduce", nil))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "request completed", entry["msg"])
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, float64(422), entry["status"])
	assert.NotEmpty(t, entry["trace_id"])
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(0.001, 2, discardLogger(), apierrors.NewErrorHandler(discardLogger(), false))
	handler := rl.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	codes := make([]int, 3)
	for i := range codes {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		codes[i] = w.Code
		if w.Code == http.StatusTooManyRequests {
			assert.Equal(t, "1", w.Header().Get("Retry-After"))
		}
	}
	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)
}

func TestTimeoutSetsDeadline(t *testing.T) {
	var hasDeadline bool
	handler := Timeout(time.Second)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasDeadline = r.Context().Deadline()
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, hasDeadline)

	Timeout(0)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasDeadline = r.Context().Deadline()
	})).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, hasDeadline)
}

func TestMaxBodySize(t *testing.T) {
	var readErr error
	handler := MaxBodySize(8)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, readErr = io.ReadAll(r.Body)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader("0123456789")))

	var maxBytes *http.MaxBytesError
	assert.ErrorAs(t, readErr, &maxBytes)
}

func TestSecurityHeaders(t *testing.T) {
	w := httptest.NewRecorder()
	SecurityHeaders(http.NotFoundHandler()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Empty(t, w.Header().Get("Strict-Transport-Security"))
}

func TestOTelMiddlewareRecordsRoute(t *testing.T) {
	providers, err := infrastructure.InitializeOTel(&infrastructure.OTelConfig{
		ServiceName:    infrastructure.ServiceName,
		EnableMetrics:  true,
		MetricExporter: "prometheus",
	}, discardLogger())
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	metrics, err := infrastructure.CreateMetrics(providers.Meter)
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Use(NewOTelMiddleware(providers, metrics).Handler)
	r.Get("/api/v1/things/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/things/7", nil))
	require.Equal(t, http.StatusOK, w.Code)

	rec := httptest.NewRecorder()
	providers.PrometheusHTTP.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), `route="/api/v1/things/{id}"`)
	assert.Contains(t, rec.Body.String(), `status_code="200"`)
}
