package aero

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"aeroreduce/internal/measure"
)

// Observer is notified around every case a Reducer processes. It lets outer
// layers attach tracing and metrics without the core depending on them.
type Observer interface {
	CaseStarted(ctx context.Context, c Case) context.Context
	CaseFinished(ctx context.Context, c Case, result *CaseResult, err error, elapsed time.Duration)
}

type nopObserver struct{}

func (nopObserver) CaseStarted(ctx context.Context, _ Case) context.Context { return ctx }
func (nopObserver) CaseFinished(context.Context, Case, *CaseResult, error, time.Duration) {}

// Reducer runs the full reduction pipeline for single cases
type Reducer struct {
	cfg      Config
	logger   *slog.Logger
	observer Observer
}

// Option configures a Reducer
type Option func(*Reducer)

// WithObserver installs a case observer
func WithObserver(o Observer) Option {
	return func(r *Reducer) {
		if o != nil {
			r.observer = o
		}
	}
}

// NewReducer validates the configuration and returns a reducer for it
func NewReducer(cfg Config, logger *slog.Logger, opts ...Option) (*Reducer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid reducer config: %w", err)
	}
	r := &Reducer{
		cfg:      cfg,
		logger:   logger,
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(r)
	}
	if cfg.Rake.BadPort != NoTap {
		logger.Info("bad rake port is interpolated in every case", "port", cfg.Rake.BadPort)
	}
	return r, nil
}

// Config returns the configuration the reducer was built with
func (r *Reducer) Config() Config {
	return r.cfg
}

// Reduce processes one angle-of-attack case. Errors are scoped to the case.
func (r *Reducer) Reduce(ctx context.Context, c Case) (CaseResult, error) {
	start := time.Now()
	ctx = r.observer.CaseStarted(ctx, c)

	r.logger.DebugContext(ctx, "reducing case",
		"case_id", c.ID,
		"alpha", c.Alpha.Value,
	)

	result, err := r.reduce(ctx, c)
	elapsed := time.Since(start)
	if err != nil {
		r.logger.WarnContext(ctx, "case reduction failed",
			"case_id", c.ID,
			"alpha", c.Alpha.Value,
			"error", err,
		)
		r.observer.CaseFinished(ctx, c, nil, err, elapsed)
		return CaseResult{}, err
	}

	r.logger.DebugContext(ctx, "case reduced",
		"case_id", c.ID,
		"alpha", c.Alpha.Value,
		"cl", result.Coefficients.Lift.Value,
		"cdt", result.Coefficients.WakeDrag.Value,
		"duration", elapsed,
	)
	r.observer.CaseFinished(ctx, c, &result, nil, elapsed)
	return result, nil
}

func (r *Reducer) reduce(ctx context.Context, c Case) (CaseResult, error) {
	cfg := r.cfg
	if !c.Alpha.IsFinite() {
		return CaseResult{}, domain("reduce", "alpha", -1, c.Alpha.Value, errNotFinite)
	}

	surface, err := IntegrateSurfaces(cfg.Layout, c.Pressures, cfg.Corrections)
	if err != nil {
		return CaseResult{}, fmt.Errorf("surface forces: %w", err)
	}

	wake, err := ResolveWake(cfg.Rake, c.Rake, cfg.RhoBernoulli)
	if err != nil {
		return CaseResult{}, fmt.Errorf("wake: %w", err)
	}

	lift, drag := ResolveForces(surface.Normal, surface.Axial, c.Alpha)

	wakeDrag, err := WakeDrag(wake.Profile, wake.FreeStream, cfg.RhoWake)
	if err != nil {
		return CaseResult{}, fmt.Errorf("wake drag: %w", err)
	}

	q := wake.DynamicPressure
	coeffs, err := r.coefficients(c.Pressures, q, lift, drag, surface.Moment, wakeDrag)
	if err != nil {
		return CaseResult{}, fmt.Errorf("coefficients: %w", err)
	}

	re, err := Reynolds(wake.FreeStream, cfg.Chord, cfg.RhoWake, cfg.Viscosity)
	if err != nil {
		return CaseResult{}, fmt.Errorf("reynolds: %w", err)
	}

	return CaseResult{
		ID:              c.ID,
		Alpha:           c.Alpha,
		FreeStream:      wake.FreeStream,
		DynamicPressure: q,
		Reynolds:        re,
		Forces: Forces{
			Normal:   surface.Normal,
			Axial:    surface.Axial,
			Moment:   surface.Moment,
			Lift:     lift,
			Drag:     drag,
			WakeDrag: wakeDrag,
		},
		Coefficients: coeffs,
		Wake:         wake.Profile,
	}, nil
}

func (r *Reducer) coefficients(dist PressureDistribution, q, lift, drag, moment, wakeDrag measure.Quantity) (Coefficients, error) {
	chord := r.cfg.Chord
	var out Coefficients
	var err error
	if out.Lift, err = Coefficient(lift, q, chord); err != nil {
		return Coefficients{}, err
	}
	if out.Drag, err = Coefficient(drag, q, chord); err != nil {
		return Coefficients{}, err
	}
	if out.Moment, err = MomentCoefficient(moment, q, chord); err != nil {
		return Coefficients{}, err
	}
	if out.WakeDrag, err = Coefficient(wakeDrag, q, chord); err != nil {
		return Coefficients{}, err
	}
	if out.CpTop, out.CpBottom, err = PressureCoefficients(dist, q, r.cfg.Corrections); err != nil {
		return Coefficients{}, err
	}
	return out, nil
}
