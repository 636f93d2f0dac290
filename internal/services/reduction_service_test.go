package services

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"

	"aeroreduce/internal/aero"
	"aeroreduce/internal/config"
	"aeroreduce/internal/infrastructure"
	api "aeroreduce/pkg/contracts/api/v1"
)

func TestNewReductionServiceRequiresGeometry(t *testing.T) {
	_, err := NewReductionService(config.Default(), nil, nil, discardLogger())
	assert.ErrorIs(t, err, config.ErrNoGeometry)
}

func TestReduceCase(t *testing.T) {
	svc, recorder := newTestService(t, testConfig(), nil)

	resp, err := svc.ReduceCase(context.Background(), caseRequest("a4", 4))
	require.NoError(t, err)

	assert.Equal(t, "a4", resp.ID)
	assert.Equal(t, config.DefaultTunnel().AlphaErr, resp.Alpha.Err, "configured alpha uncertainty applies")
	assert.Greater(t, resp.Coefficients.Lift.Value, 0.0)
	assert.Greater(t, resp.Coefficients.WakeDrag.Value, 0.0)
	assert.Len(t, resp.Coefficients.CpTop, 5)
	assert.Len(t, resp.Coefficients.CpBottom, 5)
	assert.Greater(t, resp.Reynolds.Value, 0.0)
	assert.Empty(t, resp.Wake, "wake profile is off by default")

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "reduce.case", spans[0].Name())
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
}

func TestReduceCaseAlphaErrOverride(t *testing.T) {
	cfg := testConfig()
	cfg.Sweep.IncludeWake = true
	svc, _ := newTestService(t, cfg, nil)

	req := caseRequest("", 8)
	override := 0.25
	req.AlphaErr = &override

	resp, err := svc.ReduceCase(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 0.25, resp.Alpha.Err)
	assert.Len(t, resp.Wake, 34)
	for i := 1; i < len(resp.Wake); i++ {
		assert.LessOrEqual(t, resp.Wake[i-1].Y, resp.Wake[i].Y)
	}
}

func TestReduceCaseErrors(t *testing.T) {
	svc, recorder := newTestService(t, testConfig(), nil)

	t.Run("precondition", func(t *testing.T) {
		req := caseRequest("short", 4)
		req.Pressures.Top = req.Pressures.Top[:3]
		_, err := svc.ReduceCase(context.Background(), req)
		assert.ErrorIs(t, err, aero.ErrPrecondition)
		assert.Equal(t, KindPrecondition, FailureKind(err))
	})

	t.Run("domain", func(t *testing.T) {
		req := caseRequest("negative", 4)
		req.Rake.Config1[3].Value = -5
		_, err := svc.ReduceCase(context.Background(), req)
		assert.ErrorIs(t, err, aero.ErrDomain)
		assert.Equal(t, KindDomain, FailureKind(err))

		spans := recorder.Ended()
		last := spans[len(spans)-1]
		assert.Equal(t, codes.Error, last.Status().Code)
		assert.Equal(t, KindDomain, last.Status().Description)
	})
}

func TestRunSweepContinueOnError(t *testing.T) {
	svc, recorder := newTestService(t, testConfig(), nil)

	bad := caseRequest("bad", 6)
	bad.Rake.Config2[0].Value = -1
	req := api.SweepRequest{
		Name:  "polar",
		Cases: []api.CaseRequest{caseRequest("a0", 0), bad, caseRequest("a4", 4), caseRequest("a8", 8)},
	}

	run, err := svc.RunSweep(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, run.RunID, 36)
	assert.Equal(t, "polar", run.Name)
	require.Len(t, run.Result.Results, 3)
	require.Len(t, run.Result.Failures, 1)
	assert.Equal(t, 1, run.Result.Failures[0].Index)
	require.NotNil(t, run.Summary)
	assert.Equal(t, 3, run.Summary.Cases)

	resp := svc.SweepResponse(run)
	assert.Equal(t, []string{"a0", "a4", "a8"}, []string{resp.Results[0].ID, resp.Results[1].ID, resp.Results[2].ID})
	require.Len(t, resp.Failures, 1)
	assert.Equal(t, KindDomain, resp.Failures[0].Kind)
	assert.Equal(t, "bad", resp.Failures[0].ID)
	require.NotNil(t, resp.Summary)

	var sweepSpans int
	for _, s := range recorder.Ended() {
		if s.Name() == "reduce.sweep" {
			sweepSpans++
		}
	}
	assert.Equal(t, 1, sweepSpans)
}

func TestRunSweepFailFast(t *testing.T) {
	cfg := testConfig()
	cfg.Sweep.MaxConcurrency = 1
	svc, _ := newTestService(t, cfg, nil)

	bad := caseRequest("bad", 0)
	bad.Pressures.Bottom = bad.Pressures.Bottom[:2]
	req := api.SweepRequest{FailFast: true, Cases: []api.CaseRequest{bad, caseRequest("a4", 4)}}

	run, err := svc.RunSweep(context.Background(), req)
	require.Error(t, err)
	var caseErr *aero.CaseError
	require.True(t, errors.As(err, &caseErr))
	assert.Equal(t, 0, caseErr.Index)
	assert.ErrorIs(t, err, aero.ErrPrecondition)
	require.NotNil(t, run)

	_, err = svc.ReduceSweep(context.Background(), req)
	assert.Error(t, err)
}

func TestReduceSweepWithoutSummary(t *testing.T) {
	cfg := testConfig()
	cfg.Sweep.Summary = false
	svc, _ := newTestService(t, cfg, nil)

	resp, err := svc.ReduceSweep(context.Background(), api.SweepRequest{Cases: []api.CaseRequest{caseRequest("", 4)}})
	require.NoError(t, err)
	assert.Nil(t, resp.Summary)
	assert.Len(t, resp.Results, 1)
	assert.Empty(t, resp.Failures)
}

func TestReductionServiceRecordsMetrics(t *testing.T) {
	providers, err := infrastructure.InitializeOTel(&infrastructure.OTelConfig{
		ServiceName:    infrastructure.ServiceName,
		EnableMetrics:  true,
		MetricExporter: "prometheus",
	}, discardLogger())
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())
	metrics, err := infrastructure.CreateMetrics(providers.Meter)
	require.NoError(t, err)

	svc, _ := newTestService(t, testConfig(), metrics)
	_, err = svc.ReduceSweep(context.Background(), api.SweepRequest{Cases: []api.CaseRequest{caseRequest("", 4), caseRequest("", 8)}})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	providers.PrometheusHTTP.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body := rec.Body.String()
	assert.Contains(t, body, "reduction_cases_total")
	assert.Contains(t, body, "reduction_sweeps_total")
	assert.Contains(t, body, `status="success"`)
}

func TestFailureKind(t *testing.T) {
	assert.Empty(t, FailureKind(nil))
	assert.Equal(t, KindCancelled, FailureKind(context.Canceled))
	assert.Equal(t, KindInternal, FailureKind(errors.New("boom")))
	assert.Equal(t, KindPrecondition, FailureKind(&aero.CaseError{Err: &aero.PreconditionError{Op: "x"}}))
}

func TestHealthService(t *testing.T) {
	svc, _ := newTestService(t, testConfig(), nil)
	hs := NewHealthService(svc, discardLogger())
	ctx := context.Background()

	assert.Equal(t, "ok", hs.HealthCheck(ctx).Status)
	assert.Equal(t, "alive", hs.LivenessCheck(ctx).Status)

	ready := hs.ReadinessCheck(ctx)
	assert.Equal(t, "ready", ready.Status)
	assert.Equal(t, "5 top taps, 5 bottom taps, 17 rake ports", ready.Services["reduction"].Message)

	assert.Equal(t, "not_ready", NewHealthService(nil, nil).ReadinessCheck(ctx).Status)
	assert.NotEmpty(t, hs.Version().GoVersion)
}
