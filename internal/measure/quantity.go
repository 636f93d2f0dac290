// Package measure implements first-order uncertainty arithmetic for measured
// physical quantities.
//
// A Quantity pairs a nominal value with a one-sigma (or confidence interval)
// uncertainty. The combinators propagate uncertainty with the linear
// approximation and assume that the operands are independent:
//
//	σ_f² = Σ (∂f/∂x_i · σ_i)²
//
// Correlated inputs are not modelled. Callers that reuse the same measurement
// in several terms get the independent-variable result, which is the documented
// behaviour of the reduction pipeline.
package measure

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNegativeRadicand is returned when a square root is taken of a negative value
	ErrNegativeRadicand = errors.New("square root of negative value")
	// ErrDivisionByZero is returned when dividing by a zero-valued quantity
	ErrDivisionByZero = errors.New("division by zero")
	// ErrUndefinedPropagation is returned when the first-order derivative is infinite
	ErrUndefinedPropagation = errors.New("uncertainty propagation undefined")
)

// Quantity is a value with an associated uncertainty
type Quantity struct {
	Value float64 `json:"value"`
	Err   float64 `json:"err"`
}

// New creates a quantity. The uncertainty is stored as a magnitude.
func New(value, err float64) Quantity {
	return Quantity{Value: value, Err: math.Abs(err)}
}

// Exact creates a quantity with zero uncertainty
func Exact(value float64) Quantity {
	return Quantity{Value: value}
}

// String formats the quantity as "value ± err"
func (q Quantity) String() string {
	return fmt.Sprintf("%g ± %g", q.Value, q.Err)
}

// IsFinite reports whether both the value and the uncertainty are finite
func (q Quantity) IsFinite() bool {
	return !math.IsNaN(q.Value) && !math.IsInf(q.Value, 0) &&
		!math.IsNaN(q.Err) && !math.IsInf(q.Err, 0)
}

// Add returns q + o
func (q Quantity) Add(o Quantity) Quantity {
	return Quantity{Value: q.Value + o.Value, Err: math.Hypot(q.Err, o.Err)}
}

// Scale multiplies by an exact constant
func (q Quantity) Scale(k float64) Quantity {
	return Quantity{Value: k * q.Value, Err: math.Abs(k) * q.Err}
}

// Mul returns q · o
func (q Quantity) Mul(o Quantity) Quantity {
	return Quantity{
		Value: q.Value * o.Value,
		Err:   math.Hypot(o.Value*q.Err, q.Value*o.Err),
	}
}

// Div returns q / o. A zero divisor is an error.
func (q Quantity) Div(o Quantity) (Quantity, error) {
	if o.Value == 0 {
		return Quantity{}, ErrDivisionByZero
	}
	return Quantity{
		Value: q.Value / o.Value,
		Err:   math.Hypot(q.Err/o.Value, o.Err*q.Value/(o.Value*o.Value)),
	}, nil
}

// Square returns q², with σ = |2q|·σ_q
func (q Quantity) Square() Quantity {
	return Quantity{Value: q.Value * q.Value, Err: math.Abs(2*q.Value) * q.Err}
}

// Sqrt returns √q, with σ = 0.5·√q·(σ_q/q).
//
// Negative values are rejected. At zero the derivative is infinite, so an
// exact zero maps to an exact zero and an uncertain zero is rejected.
func (q Quantity) Sqrt() (Quantity, error) {
	switch {
	case q.Value < 0:
		return Quantity{}, ErrNegativeRadicand
	case q.Value == 0 && q.Err == 0:
		return Quantity{}, nil
	case q.Value == 0:
		return Quantity{}, ErrUndefinedPropagation
	}
	root := math.Sqrt(q.Value)
	return Quantity{Value: root, Err: 0.5 * root * (q.Err / q.Value)}, nil
}

// Midpoint returns (a + b)/2
func Midpoint(a, b Quantity) Quantity {
	return a.Add(b).Scale(0.5)
}

// Sum adds quantities, combining uncertainties in quadrature
func Sum(qs ...Quantity) Quantity {
	var acc Accumulator
	for _, q := range qs {
		acc.Add(q.Value)
		acc.Term(1, q.Err)
	}
	return acc.Quantity()
}
