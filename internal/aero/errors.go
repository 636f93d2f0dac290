package aero

import (
	"errors"
	"fmt"
)

var (
	// ErrPrecondition classifies shape and wiring errors
	ErrPrecondition = errors.New("precondition violation")
	// ErrDomain classifies numerical domain errors caused by bad sensor data
	ErrDomain = errors.New("numerical domain error")
)

// PreconditionError reports mismatched or malformed inputs
type PreconditionError struct {
	Op      string `json:"op"`
	Field   string `json:"field"`
	Message string `json:"message"`
	Want    int    `json:"want,omitempty"`
	Got     int    `json:"got,omitempty"`
}

// Error implements the error interface
func (e *PreconditionError) Error() string {
	if e.Want != 0 || e.Got != 0 {
		return fmt.Sprintf("%s: %s: %s (want %d, got %d)", e.Op, e.Field, e.Message, e.Want, e.Got)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Field, e.Message)
}

// Unwrap returns ErrPrecondition
func (e *PreconditionError) Unwrap() error {
	return ErrPrecondition
}

// DomainError reports a value outside the domain of a formula
type DomainError struct {
	Op    string  `json:"op"`
	Field string  `json:"field"`
	Index int     `json:"index"`
	Value float64 `json:"value"`
	Err   error   `json:"-"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%s: %s[%d] = %g: %v", e.Op, e.Field, e.Index, e.Value, e.Err)
	}
	return fmt.Sprintf("%s: %s = %g: %v", e.Op, e.Field, e.Value, e.Err)
}

// Unwrap returns ErrDomain and the underlying cause
func (e *DomainError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrDomain}
	}
	return []error{ErrDomain, e.Err}
}

// CaseError wraps the failure of one case in a sweep
type CaseError struct {
	Index int
	ID    string
	Alpha float64
	Err   error
}

// Error implements the error interface
func (e *CaseError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("case %d (%s, alpha=%g): %v", e.Index, e.ID, e.Alpha, e.Err)
	}
	return fmt.Sprintf("case %d (alpha=%g): %v", e.Index, e.Alpha, e.Err)
}

// Unwrap returns the case failure
func (e *CaseError) Unwrap() error {
	return e.Err
}

func lengthMismatch(op, field string, want, got int) error {
	return &PreconditionError{Op: op, Field: field, Message: "length mismatch", Want: want, Got: got}
}

func precondition(op, field, format string, args ...any) error {
	return &PreconditionError{Op: op, Field: field, Message: fmt.Sprintf(format, args...)}
}

func domain(op, field string, index int, value float64, err error) error {
	return &DomainError{Op: op, Field: field, Index: index, Value: value, Err: err}
}
