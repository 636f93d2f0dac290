package services

import (
	"context"
	"errors"

	"aeroreduce/internal/aero"
)

// Failure kinds reported for cases that could not be reduced
const (
	KindPrecondition = "precondition"
	KindDomain       = "domain"
	KindCancelled    = "cancelled"
	KindInternal     = "internal"
)

// FailureKind classifies a case error. It returns "" for nil.
func FailureKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, aero.ErrPrecondition):
		return KindPrecondition
	case errors.Is(err, aero.ErrDomain):
		return KindDomain
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCancelled
	default:
		return KindInternal
	}
}
