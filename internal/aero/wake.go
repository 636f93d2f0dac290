package aero

import "aeroreduce/internal/measure"

// WakeDrag integrates the momentum deficit ρ·v·(U∞−v) across the wake with
// the trapezoidal rule.
//
// Each panel contributes the partials of both endpoint velocities and of U∞.
// U∞ is counted once per panel, so its share of the variance grows with the
// number of panels.
func WakeDrag(profile WakeProfile, uInf measure.Quantity, rho float64) (measure.Quantity, error) {
	const op = "wake drag"
	if len(profile) < 2 {
		return measure.Quantity{}, precondition(op, "profile", "at least 2 wake points required, got %d", len(profile))
	}
	if !uInf.IsFinite() {
		return measure.Quantity{}, domain(op, "free stream", -1, uInf.Value, errNotFinite)
	}
	for i := range profile {
		if !profile[i].Velocity.IsFinite() {
			return measure.Quantity{}, domain(op, "velocity", i, profile[i].Velocity.Value, errNotFinite)
		}
		if i > 0 && profile[i].Y < profile[i-1].Y {
			return measure.Quantity{}, precondition(op, "profile", "y decreases at index %d", i)
		}
	}

	u := uInf.Value
	deficit := func(v float64) float64 { return v * (u - v) }

	var acc measure.Accumulator
	for i := 0; i+1 < len(profile); i++ {
		a, b := profile[i].Velocity, profile[i+1].Velocity
		dy := profile[i+1].Y - profile[i].Y
		half := 0.5 * rho * dy

		acc.Add(half * (deficit(a.Value) + deficit(b.Value)))
		acc.Terms(
			measure.Partial{Derivative: half * (u - 2*a.Value), Err: a.Err},
			measure.Partial{Derivative: half * (u - 2*b.Value), Err: b.Err},
			measure.Partial{Derivative: half * (a.Value + b.Value), Err: uInf.Err},
		)
	}
	return acc.Quantity(), nil
}
