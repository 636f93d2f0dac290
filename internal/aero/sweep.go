package aero

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

// FailurePolicy decides what a sweep does after a case fails
type FailurePolicy int

const (
	// ContinueOnError records the failure and reduces the remaining cases
	ContinueOnError FailurePolicy = iota
	// FailFast cancels the cases that have not started yet
	FailFast
)

// String returns the policy name
func (p FailurePolicy) String() string {
	switch p {
	case ContinueOnError:
		return "continue"
	case FailFast:
		return "fail-fast"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// SweepOptions controls a sweep run
type SweepOptions struct {
	// MaxConcurrency bounds the number of cases reduced at once. Zero uses GOMAXPROCS.
	MaxConcurrency int
	Policy         FailurePolicy
}

// SweepResult holds the successful results in input order and one CaseError
// per failed case, also in input order.
type SweepResult struct {
	Results  []CaseResult
	Failures []*CaseError
	Duration time.Duration
}

// Succeeded reports whether at least one case was reduced
func (s SweepResult) Succeeded() bool {
	return len(s.Results) > 0
}

// Sweep reduces every case independently. A failing case never corrupts the
// others. Under FailFast the first failure is returned as an error together
// with whatever completed; otherwise the error is nil and failures are listed
// in the result. Cancellation is checked between cases.
func (r *Reducer) Sweep(ctx context.Context, cases []Case, opts SweepOptions) (SweepResult, error) {
	start := time.Now()
	limit := opts.MaxConcurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	r.logger.InfoContext(ctx, "starting sweep",
		"cases", len(cases),
		"max_concurrency", limit,
		"policy", opts.Policy.String(),
	)

	results := make([]*CaseResult, len(cases))
	failures := make([]*CaseError, len(cases))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i := range cases {
		i, c := i, cases[i]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				failures[i] = &CaseError{Index: i, ID: c.ID, Alpha: c.Alpha.Value, Err: err}
				return nil
			}
			res, err := r.Reduce(gctx, c)
			if err != nil {
				failures[i] = &CaseError{Index: i, ID: c.ID, Alpha: c.Alpha.Value, Err: err}
				if opts.Policy == FailFast {
					return failures[i]
				}
				return nil
			}
			results[i] = &res
			return nil
		})
	}
	groupErr := g.Wait()

	out := SweepResult{Duration: time.Since(start)}
	for i := range cases {
		if results[i] != nil {
			out.Results = append(out.Results, *results[i])
		}
		if failures[i] != nil {
			out.Failures = append(out.Failures, failures[i])
		}
	}

	r.logger.InfoContext(ctx, "sweep completed",
		"succeeded", len(out.Results),
		"failed", len(out.Failures),
		"duration", out.Duration,
	)

	if groupErr != nil {
		return out, fmt.Errorf("sweep aborted: %w", groupErr)
	}
	if err := ctx.Err(); err != nil {
		return out, fmt.Errorf("sweep cancelled: %w", err)
	}
	return out, nil
}
