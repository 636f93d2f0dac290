package aero

import (
	"errors"
	"math"
)

var (
	errZeroPanel = errors.New("zero-length panel")
	errNotFinite = errors.New("value is not finite")
)

// Panel is the straight segment between two adjacent taps
type Panel struct {
	// Start is the upstream tap, the moment arm of the panel
	Start Point
	// Theta is the inclination atan2(Δy, Δx) in radians
	Theta float64
	// Length is the arc length element ds
	Length float64
}

// Panels computes the n-1 panels of an ordered tap sequence.
func Panels(points []Point) ([]Panel, error) {
	const op = "panels"
	if len(points) < 2 {
		return nil, precondition(op, "points", "at least 2 points required, got %d", len(points))
	}

	panels := make([]Panel, len(points)-1)
	for i := range panels {
		dx := points[i+1].X - points[i].X
		dy := points[i+1].Y - points[i].Y
		ds := math.Hypot(dx, dy)
		if ds == 0 {
			return nil, domain(op, "points", i, ds, errZeroPanel)
		}
		panels[i] = Panel{
			Start:  points[i],
			Theta:  math.Atan2(dy, dx),
			Length: ds,
		}
	}
	return panels, nil
}
