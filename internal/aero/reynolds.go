package aero

import "aeroreduce/internal/measure"

// Reynolds returns Re = ρ·U∞·c/μ with dRe = ρ·c·dU∞/μ
func Reynolds(uInf measure.Quantity, chord, rho, mu float64) (measure.Quantity, error) {
	const op = "reynolds"
	if !(chord > 0) {
		return measure.Quantity{}, precondition(op, "chord", "must be positive, got %g", chord)
	}
	if !(mu > 0) {
		return measure.Quantity{}, precondition(op, "viscosity", "must be positive, got %g", mu)
	}
	return uInf.Scale(rho * chord / mu), nil
}
