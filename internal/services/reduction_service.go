package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"aeroreduce/internal/aero"
	"aeroreduce/internal/config"
	"aeroreduce/internal/infrastructure"
	api "aeroreduce/pkg/contracts/api/v1"
)

// ReductionService reduces cases and sweeps for every transport
type ReductionService struct {
	reducer  *aero.Reducer
	sweep    config.SweepConfig
	alphaErr float64
	tracer   trace.Tracer
	metrics  *infrastructure.Metrics
	logger   *slog.Logger
}

// SweepRun is the domain-level outcome of a sweep, used by exporters
type SweepRun struct {
	RunID   string
	Name    string
	Result  aero.SweepResult
	Summary *aero.SweepSummary
}

// NewReductionService builds the reducer from the tunnel configuration. A nil
// tracer uses the global provider; nil metrics disable recording.
func NewReductionService(cfg *config.Config, tracer trace.Tracer, metrics *infrastructure.Metrics, logger *slog.Logger) (*ReductionService, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if tracer == nil {
		tracer = otel.Tracer(infrastructure.ServiceName)
	}
	logger = infrastructure.WithComponent(logger, "reduction_service")

	aeroCfg, err := cfg.Tunnel.AeroConfig()
	if err != nil {
		return nil, fmt.Errorf("tunnel configuration: %w", err)
	}
	reducer, err := aero.NewReducer(aeroCfg, logger, aero.WithObserver(&caseObserver{tracer: tracer, metrics: metrics}))
	if err != nil {
		return nil, err
	}

	logger.Info("reduction service initialized",
		slog.Float64("chord", aeroCfg.Chord),
		slog.Int("top_taps", len(aeroCfg.Layout.Top)),
		slog.Int("bottom_taps", len(aeroCfg.Layout.Bottom)),
		slog.Int("rake_ports", len(aeroCfg.Rake.Ports)),
		slog.Int("max_concurrency", cfg.Sweep.MaxConcurrency),
	)

	return &ReductionService{
		reducer:  reducer,
		sweep:    cfg.Sweep,
		alphaErr: cfg.Tunnel.AlphaErr,
		tracer:   tracer,
		metrics:  metrics,
		logger:   logger,
	}, nil
}

// AeroConfig returns the resolved reduction configuration
func (s *ReductionService) AeroConfig() aero.Config {
	return s.reducer.Config()
}

// ReduceCase reduces a single case request
func (s *ReductionService) ReduceCase(ctx context.Context, req api.CaseRequest) (*api.CaseResponse, error) {
	result, err := s.reducer.Reduce(ctx, ToCase(req, s.alphaErr))
	if err != nil {
		return nil, err
	}
	resp := ToCaseResponse(result, s.sweep.IncludeWake)
	return &resp, nil
}

// RunSweep reduces every case of the request. Failures of individual cases are
// reported in the run; the error is non-nil only when a fail-fast sweep aborts
// or ctx ends, and the partial run is returned alongside it.
func (s *ReductionService) RunSweep(ctx context.Context, req api.SweepRequest) (*SweepRun, error) {
	run := &SweepRun{RunID: uuid.New().String(), Name: req.Name}

	policy := aero.ContinueOnError
	if req.FailFast || s.sweep.FailFast {
		policy = aero.FailFast
	}

	ctx, span := s.tracer.Start(ctx, "reduce.sweep",
		trace.WithAttributes(
			attribute.String("sweep.run_id", run.RunID),
			attribute.String("sweep.name", req.Name),
			attribute.Int("sweep.cases", len(req.Cases)),
			attribute.String("sweep.policy", policy.String()),
		),
	)
	defer span.End()

	if s.metrics != nil {
		s.metrics.ActiveSweeps.Add(ctx, 1)
		defer s.metrics.ActiveSweeps.Add(ctx, -1)
	}

	cases := make([]aero.Case, len(req.Cases))
	for i, c := range req.Cases {
		cases[i] = ToCase(c, s.alphaErr)
	}

	result, err := s.reducer.Sweep(ctx, cases, aero.SweepOptions{
		MaxConcurrency: s.sweep.MaxConcurrency,
		Policy:         policy,
	})
	run.Result = result
	s.metrics.RecordSweep(ctx, len(cases), len(result.Failures))

	if s.sweep.Summary && len(result.Results) > 0 {
		summary, serr := aero.Summarize(result.Results)
		if serr != nil {
			s.logger.WarnContext(ctx, "sweep summary failed", slog.String("error", serr.Error()))
		} else {
			run.Summary = &summary
		}
	}

	span.SetAttributes(
		attribute.Int("sweep.succeeded", len(result.Results)),
		attribute.Int("sweep.failed", len(result.Failures)),
	)
	s.logger.InfoContext(ctx, "sweep reduced",
		slog.String("run_id", run.RunID),
		slog.String("name", req.Name),
		slog.Int("succeeded", len(result.Results)),
		slog.Int("failed", len(result.Failures)),
		slog.Duration("duration", result.Duration),
	)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return run, err
	}
	return run, nil
}

// ReduceSweep runs a sweep and converts it to the API response
func (s *ReductionService) ReduceSweep(ctx context.Context, req api.SweepRequest) (*api.SweepResponse, error) {
	run, err := s.RunSweep(ctx, req)
	if err != nil {
		return nil, err
	}
	resp := s.SweepResponse(run)
	return &resp, nil
}

// SweepResponse converts a finished run
func (s *ReductionService) SweepResponse(run *SweepRun) api.SweepResponse {
	resp := api.SweepResponse{
		RunID:      run.RunID,
		Name:       run.Name,
		Results:    make([]api.CaseResponse, len(run.Result.Results)),
		DurationMS: run.Result.Duration.Milliseconds(),
	}
	for i, r := range run.Result.Results {
		resp.Results[i] = ToCaseResponse(r, s.sweep.IncludeWake)
	}
	for _, f := range run.Result.Failures {
		resp.Failures = append(resp.Failures, ToCaseFailure(f))
	}
	if run.Summary != nil {
		resp.Summary = ToSummary(*run.Summary)
	}
	return resp
}

// caseObserver wraps every case in a span and records the case metrics
type caseObserver struct {
	tracer  trace.Tracer
	metrics *infrastructure.Metrics
}

func (o *caseObserver) CaseStarted(ctx context.Context, c aero.Case) context.Context {
	ctx, _ = o.tracer.Start(ctx, "reduce.case",
		trace.WithAttributes(
			attribute.String("case.id", c.ID),
			attribute.Float64("case.alpha", c.Alpha.Value),
		),
	)
	return ctx
}

func (o *caseObserver) CaseFinished(ctx context.Context, _ aero.Case, result *aero.CaseResult, err error, elapsed time.Duration) {
	span := trace.SpanFromContext(ctx)
	defer span.End()

	kind := FailureKind(err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, kind)
	} else if result != nil {
		span.SetAttributes(
			attribute.Float64("case.cl", result.Coefficients.Lift.Value),
			attribute.Float64("case.cdt", result.Coefficients.WakeDrag.Value),
		)
	}
	o.metrics.RecordCase(ctx, kind, elapsed)
}
