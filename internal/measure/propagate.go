package measure

import "math"

// Partial is one term of a first-order propagation: the partial derivative of
// the output with respect to an input, and that input's uncertainty.
type Partial struct {
	Derivative float64
	Err        float64
}

// Contribution returns the term's variance contribution (∂f/∂x · σ_x)²
func (p Partial) Contribution() float64 {
	c := p.Derivative * p.Err
	return c * c
}

// Propagate builds a quantity from a nominal value and its partials
func Propagate(value float64, partials ...Partial) Quantity {
	var variance float64
	for _, p := range partials {
		variance += p.Contribution()
	}
	return Quantity{Value: value, Err: math.Sqrt(variance)}
}

// Accumulator sums a nominal value and a variance over many independent
// contributions, such as the panels of a quadrature.
//
// The zero value is ready to use.
type Accumulator struct {
	value    float64
	variance float64
}

// Add adds to the nominal value
func (a *Accumulator) Add(v float64) {
	a.value += v
}

// Term adds one (∂f/∂x · σ_x)² contribution to the variance
func (a *Accumulator) Term(derivative, err float64) {
	c := derivative * err
	a.variance += c * c
}

// Terms adds several contributions
func (a *Accumulator) Terms(partials ...Partial) {
	for _, p := range partials {
		a.variance += p.Contribution()
	}
}

// Quantity returns the accumulated value with σ = sqrt(variance)
func (a *Accumulator) Quantity() Quantity {
	return Quantity{Value: a.value, Err: math.Sqrt(a.variance)}
}
