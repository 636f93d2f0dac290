package aero

import (
	"errors"
	"math"

	"aeroreduce/internal/measure"
)

var errZeroDynamicPressure = errors.New("dynamic pressure is zero")

// Coefficient nondimensionalizes a force per unit span: C = F/(q·c)
func Coefficient(force, q measure.Quantity, chord float64) (measure.Quantity, error) {
	return normalize("coefficient", force, q, chord, chord)
}

// MomentCoefficient nondimensionalizes a moment per unit span: C = M/(q·c²)
func MomentCoefficient(moment, q measure.Quantity, chord float64) (measure.Quantity, error) {
	return normalize("moment coefficient", moment, q, chord, chord*chord)
}

// normalize divides by q·ref with dC = sqrt((dF/(q·ref))² + (dq·F/(q²·ref))²)
func normalize(op string, f, q measure.Quantity, chord, ref float64) (measure.Quantity, error) {
	if !(chord > 0) || math.IsInf(chord, 0) {
		return measure.Quantity{}, precondition(op, "chord", "must be positive, got %g", chord)
	}
	if err := checkDynamicPressure(op, q); err != nil {
		return measure.Quantity{}, err
	}
	c, err := f.Scale(1 / ref).Div(q)
	if err != nil {
		return measure.Quantity{}, domain(op, "dynamic pressure", -1, q.Value, err)
	}
	return c, nil
}

func checkDynamicPressure(op string, q measure.Quantity) error {
	if !q.IsFinite() {
		return domain(op, "dynamic pressure", -1, q.Value, errNotFinite)
	}
	if q.Value == 0 {
		return domain(op, "dynamic pressure", -1, q.Value, errZeroDynamicPressure)
	}
	return nil
}

// PressureCoefficients returns Cp = p/q for both surfaces, then applies the
// bad-tap corrections to the Cp arrays.
func PressureCoefficients(dist PressureDistribution, q measure.Quantity, corr TapCorrections) (top, bottom []measure.Quantity, err error) {
	const op = "pressure coefficients"
	if err := checkDynamicPressure(op, q); err != nil {
		return nil, nil, err
	}
	cp := func(ps []measure.Quantity) ([]measure.Quantity, error) {
		out := make([]measure.Quantity, len(ps))
		for i, p := range ps {
			c, err := p.Div(q)
			if err != nil {
				return nil, domain(op, "dynamic pressure", -1, q.Value, err)
			}
			out[i] = c
		}
		return out, nil
	}

	if top, err = cp(dist.Top); err != nil {
		return nil, nil, err
	}
	if bottom, err = cp(dist.Bottom); err != nil {
		return nil, nil, err
	}
	if top, err = InterpolateBadPort(top, corr.Top); err != nil {
		return nil, nil, err
	}
	if bottom, err = InterpolateBadPort(bottom, corr.Bottom); err != nil {
		return nil, nil, err
	}
	return top, bottom, nil
}
