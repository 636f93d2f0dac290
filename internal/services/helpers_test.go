package services

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"aeroreduce/internal/config"
	"aeroreduce/internal/infrastructure"
	"aeroreduce/internal/shared/testutil"
	api "aeroreduce/pkg/contracts/api/v1"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() *config.Config {
	cfg := testutil.WithSection(config.Default())
	cfg.Sweep.MaxConcurrency = 2
	cfg.Sweep.Summary = true
	return cfg
}

func caseRequest(id string, alpha float64) api.CaseRequest {
	return testutil.CaseRequest(id, alpha)
}

func newTestService(t *testing.T, cfg *config.Config, metrics *infrastructure.Metrics) (*ReductionService, *tracetest.SpanRecorder) {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	svc, err := NewReductionService(cfg, tp.Tracer("test"), metrics, discardLogger())
	require.NoError(t, err)
	return svc, recorder
}
