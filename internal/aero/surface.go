package aero

import (
	"math"

	"aeroreduce/internal/measure"
)

// Surface identifies one side of the airfoil
type Surface int

const (
	// Top is the suction side
	Top Surface = iota
	// Bottom is the pressure side
	Bottom
)

// String returns the surface name
func (s Surface) String() string {
	switch s {
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	default:
		return "unknown"
	}
}

// normalSign is the sign of a surface's pressure contribution to the normal
// force for taps ordered leading edge to trailing edge.
func (s Surface) normalSign() float64 {
	if s == Top {
		return -1
	}
	return 1
}

// SurfaceForces are the integrated pressure loads on the airfoil
type SurfaceForces struct {
	Normal measure.Quantity `json:"normal"`
	Axial  measure.Quantity `json:"axial"`
	// Moment is taken about the leading edge
	Moment measure.Quantity `json:"moment"`
}

// Add combines the loads of two independent surfaces
func (f SurfaceForces) Add(o SurfaceForces) SurfaceForces {
	return SurfaceForces{
		Normal: f.Normal.Add(o.Normal),
		Axial:  f.Axial.Add(o.Axial),
		Moment: f.Moment.Add(o.Moment),
	}
}

// IntegrateSurface integrates one surface's pressures over its panels with the
// trapezoidal rule. Each panel's variance is the sum of the squared endpoint
// partials times the endpoint uncertainties; panel variances add.
func IntegrateSurface(s Surface, points []Point, pressures []measure.Quantity) (SurfaceForces, error) {
	const op = "integrate surface"
	field := s.String()
	if len(pressures) != len(points) {
		return SurfaceForces{}, lengthMismatch(op, field+" pressures", len(points), len(pressures))
	}
	if err := checkSurfaceOrder(op, field+" taps", points); err != nil {
		return SurfaceForces{}, err
	}
	panels, err := Panels(points)
	if err != nil {
		return SurfaceForces{}, err
	}
	for i, p := range pressures {
		if !p.IsFinite() {
			return SurfaceForces{}, domain(op, field+" pressures", i, p.Value, errNotFinite)
		}
	}

	sign := s.normalSign()
	var normal, axial, moment measure.Accumulator
	for i, panel := range panels {
		a, b := pressures[i], pressures[i+1]
		sum := a.Value + b.Value
		cos, sin := math.Cos(panel.Theta), math.Sin(panel.Theta)

		// Partial of each panel term with respect to either endpoint pressure.
		dn := sign * 0.5 * cos * panel.Length
		da := -sign * 0.5 * sin * panel.Length
		dm := 0.5 * (cos*panel.Start.X - sin*panel.Start.Y) * panel.Length

		normal.Add(dn * sum)
		normal.Term(dn, a.Err)
		normal.Term(dn, b.Err)

		axial.Add(da * sum)
		axial.Term(da, a.Err)
		axial.Term(da, b.Err)

		moment.Add(dm * sum)
		moment.Term(dm, a.Err)
		moment.Term(dm, b.Err)
	}

	return SurfaceForces{
		Normal: normal.Quantity(),
		Axial:  axial.Quantity(),
		Moment: moment.Quantity(),
	}, nil
}

// IntegrateSurfaces applies the bad-tap corrections and sums both surfaces
func IntegrateSurfaces(layout TapLayout, dist PressureDistribution, corr TapCorrections) (SurfaceForces, error) {
	const op = "integrate surfaces"
	if len(dist.Top) != len(layout.Top) {
		return SurfaceForces{}, lengthMismatch(op, "top pressures", len(layout.Top), len(dist.Top))
	}
	if len(dist.Bottom) != len(layout.Bottom) {
		return SurfaceForces{}, lengthMismatch(op, "bottom pressures", len(layout.Bottom), len(dist.Bottom))
	}
	top, err := InterpolateBadPort(dist.Top, corr.Top)
	if err != nil {
		return SurfaceForces{}, err
	}
	bottom, err := InterpolateBadPort(dist.Bottom, corr.Bottom)
	if err != nil {
		return SurfaceForces{}, err
	}

	upper, err := IntegrateSurface(Top, layout.Top, top)
	if err != nil {
		return SurfaceForces{}, err
	}
	lower, err := IntegrateSurface(Bottom, layout.Bottom, bottom)
	if err != nil {
		return SurfaceForces{}, err
	}
	return upper.Add(lower), nil
}
