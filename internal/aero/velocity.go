package aero

import (
	"math"
	"sort"

	"aeroreduce/internal/measure"
)

// WakeSolution is the resolved rake data of one case
type WakeSolution struct {
	Profile WakeProfile
	// Config1 and Config2 are the corrected per-port velocities in port order
	Config1         []measure.Quantity
	Config2         []measure.Quantity
	FreeStream      measure.Quantity
	DynamicPressure measure.Quantity
}

// PortVelocity converts a stagnation-minus-static pressure into a velocity with
// v = sqrt(2p/ρ) and dv = 0.5·v·dp/p.
func PortVelocity(p measure.Quantity, rho float64) (measure.Quantity, error) {
	if !p.IsFinite() {
		return measure.Quantity{}, errNotFinite
	}
	return p.Scale(2 / rho).Sqrt()
}

// RakeVelocities converts one probe configuration into port velocities and
// applies the bad-port correction.
func RakeVelocities(pressures []measure.Quantity, rho float64, badPort int) ([]measure.Quantity, error) {
	const op = "rake velocities"
	v := make([]measure.Quantity, len(pressures))
	for i, p := range pressures {
		q, err := PortVelocity(p, rho)
		if err != nil {
			return nil, domain(op, "pressure", i, p.Value, err)
		}
		v[i] = q
	}
	return InterpolateBadPort(v, badPort)
}

// FreeStreamVelocity averages the first and second-to-last port of both
// configurations. The uncertainty is 0.5·sqrt(Σdv²) over the four ports.
func FreeStreamVelocity(config1, config2 []measure.Quantity) (measure.Quantity, error) {
	const op = "free stream"
	if len(config1) != len(config2) {
		return measure.Quantity{}, lengthMismatch(op, "config2", len(config1), len(config2))
	}
	n := len(config1)
	if n < 2 {
		return measure.Quantity{}, precondition(op, "config1", "at least 2 ports required, got %d", n)
	}

	sum := measure.Sum(config1[0], config1[n-2], config2[0], config2[n-2])
	return measure.Quantity{Value: sum.Value / 4, Err: 0.5 * sum.Err}, nil
}

// DynamicPressure returns q = 0.5ρU² with dq = ρ·U·dU
func DynamicPressure(u measure.Quantity, rho float64) measure.Quantity {
	return u.Square().Scale(0.5 * rho)
}

// MergeProfiles interleaves two probe configurations into one profile ordered
// by true y-position. Ties keep configuration 1 first.
func MergeProfiles(rake RakeGeometry, in RakeInput, v1, v2 []measure.Quantity) (WakeProfile, error) {
	const op = "merge profiles"
	n := len(rake.Ports)
	for _, s := range []struct {
		field string
		got   int
	}{
		{"config1", len(in.Config1)},
		{"config2", len(in.Config2)},
		{"config1 velocities", len(v1)},
		{"config2 velocities", len(v2)},
	} {
		if s.got != n {
			return nil, lengthMismatch(op, s.field, n, s.got)
		}
	}

	profile := make(WakeProfile, 0, 2*n)
	for j, y := range rake.Ports {
		profile = append(profile, WakePoint{Y: in.Offset1 + y, Pressure: in.Config1[j], Velocity: v1[j], Config: 1, Port: j})
	}
	for j, y := range rake.Ports {
		profile = append(profile, WakePoint{Y: in.Offset2 + y, Pressure: in.Config2[j], Velocity: v2[j], Config: 2, Port: j})
	}
	sort.SliceStable(profile, func(a, b int) bool {
		return profile[a].Y < profile[b].Y
	})
	return profile, nil
}

// ResolveWake runs the rake half of the pipeline: port velocities, bad-port
// correction, free-stream estimate, merged profile and dynamic pressure.
func ResolveWake(rake RakeGeometry, in RakeInput, rho float64) (WakeSolution, error) {
	const op = "resolve wake"
	if err := rake.validate(op); err != nil {
		return WakeSolution{}, err
	}
	if len(in.Config1) != len(in.Config2) {
		return WakeSolution{}, lengthMismatch(op, "config2", len(in.Config1), len(in.Config2))
	}
	if len(in.Config1) != len(rake.Ports) {
		return WakeSolution{}, lengthMismatch(op, "config1", len(rake.Ports), len(in.Config1))
	}
	for _, off := range []struct {
		field string
		value float64
	}{{"offset1", in.Offset1}, {"offset2", in.Offset2}} {
		if math.IsNaN(off.value) || math.IsInf(off.value, 0) {
			return WakeSolution{}, precondition(op, off.field, "must be finite, got %g", off.value)
		}
	}
	if in.Offset1 == in.Offset2 {
		return WakeSolution{}, precondition(op, "offset2", "must differ from offset1, both are %g", in.Offset1)
	}

	v1, err := RakeVelocities(in.Config1, rho, rake.BadPort)
	if err != nil {
		return WakeSolution{}, err
	}
	v2, err := RakeVelocities(in.Config2, rho, rake.BadPort)
	if err != nil {
		return WakeSolution{}, err
	}
	u, err := FreeStreamVelocity(v1, v2)
	if err != nil {
		return WakeSolution{}, err
	}
	profile, err := MergeProfiles(rake, in, v1, v2)
	if err != nil {
		return WakeSolution{}, err
	}

	return WakeSolution{
		Profile:         profile,
		Config1:         v1,
		Config2:         v2,
		FreeStream:      u,
		DynamicPressure: DynamicPressure(u, rho),
	}, nil
}
