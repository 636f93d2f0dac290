package http

import (
	"context"

	api "aeroreduce/pkg/contracts/api/v1"
)

// ReductionService is the part of services.ReductionService the handlers use
type ReductionService interface {
	ReduceCase(ctx context.Context, req api.CaseRequest) (*api.CaseResponse, error)
	ReduceSweep(ctx context.Context, req api.SweepRequest) (*api.SweepResponse, error)
}
