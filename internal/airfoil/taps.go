// Package airfoil loads the pressure-tap geometry of the wind-tunnel model.
//
// Tap positions are given in chord fractions. Coordinates are looked up in an
// airfoil coordinate table, scaled by the chord and returned as an
// aero.TapLayout ordered from leading edge to trailing edge.
package airfoil

import (
	"fmt"
	"sort"

	"aeroreduce/internal/aero"
)

// tolerance for matching tap chord fractions against coordinate rows
const matchTolerance = 1e-9

// Taps lists the tapped chord fractions of each surface
type Taps struct {
	Top    []float64 `json:"top" yaml:"top"`
	Bottom []float64 `json:"bottom" yaml:"bottom"`
}

// DefaultTaps returns the tap stations of the Clark Y tunnel model
func DefaultTaps() Taps {
	return Taps{
		Top:    []float64{0, 0.03, 0.06, 0.10, 0.15, 0.20, 0.30, 0.40, 0.55, 0.70, 0.85, 1.00},
		Bottom: []float64{0.05, 0.10, 0.20, 0.30, 0.40, 0.60, 0.90},
	}
}

// DefaultAlphas are the angles of attack (deg) of the reference sweep
func DefaultAlphas() []float64 {
	return []float64{0, 4, 6, 8, 9, 10, 11, 12, 14, 15, 17}
}

// Validate checks that every station lies on the chord and appears once
func (t Taps) Validate() error {
	for _, s := range []struct {
		name string
		xs   []float64
	}{{"top", t.Top}, {"bottom", t.Bottom}} {
		if len(s.xs) < 2 {
			return fmt.Errorf("%s taps: at least 2 stations required, got %d", s.name, len(s.xs))
		}
		seen := make(map[float64]bool, len(s.xs))
		for _, x := range s.xs {
			if x < 0 || x > 1 {
				return fmt.Errorf("%s taps: station %g outside [0, 1]", s.name, x)
			}
			if seen[x] {
				return fmt.Errorf("%s taps: duplicate station %g", s.name, x)
			}
			seen[x] = true
		}
	}
	return nil
}

// FromOffsets builds a chord-fraction layout from explicit ordinates, one per
// station. Stations are sorted leading edge to trailing edge.
func FromOffsets(taps Taps, top, bottom []float64) (aero.TapLayout, error) {
	if err := taps.Validate(); err != nil {
		return aero.TapLayout{}, err
	}
	if len(top) != len(taps.Top) {
		return aero.TapLayout{}, fmt.Errorf("top ordinates: want %d, got %d", len(taps.Top), len(top))
	}
	if len(bottom) != len(taps.Bottom) {
		return aero.TapLayout{}, fmt.Errorf("bottom ordinates: want %d, got %d", len(taps.Bottom), len(bottom))
	}
	return aero.TapLayout{
		Top:    zipSorted(taps.Top, top),
		Bottom: zipSorted(taps.Bottom, bottom),
	}, nil
}

func zipSorted(xs, ys []float64) []aero.Point {
	pts := make([]aero.Point, len(xs))
	for i := range xs {
		pts[i] = aero.Point{X: xs[i], Y: ys[i]}
	}
	sortByX(pts)
	return pts
}

func sortByX(pts []aero.Point) {
	sort.SliceStable(pts, func(i, j int) bool { return pts[i].X < pts[j].X })
}
