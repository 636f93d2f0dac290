package aero

import (
	"errors"
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// ErrNoResults is returned when a summary is requested for an empty sweep
var ErrNoResults = errors.New("no case results to summarize")

// SweepSummary condenses the polar of a sweep
type SweepSummary struct {
	Cases int `json:"cases"`
	// MaxLift is the largest Cl and StallAlpha the angle where it occurs
	MaxLift    float64 `json:"max_cl"`
	StallAlpha float64 `json:"stall_alpha"`
	// LiftSlope is fitted over the cases up to and including the stall angle
	LiftSlopePerDeg float64 `json:"lift_slope_per_deg"`
	LiftSlopePerRad float64 `json:"lift_slope_per_rad"`
	ZeroLiftAlpha   float64 `json:"zero_lift_alpha"`
	SlopeRSquared   float64 `json:"slope_r_squared"`
	SlopePoints     int     `json:"slope_points"`

	MinWakeDrag      float64 `json:"min_cdt"`
	MinWakeDragAlpha float64 `json:"min_cdt_alpha"`
	MeanWakeDrag     float64 `json:"mean_cdt"`

	MaxLiftToDrag      float64 `json:"max_l_over_d"`
	MaxLiftToDragAlpha float64 `json:"max_l_over_d_alpha"`
}

// Summarize computes the polar summary of a sweep. A lift slope needs at
// least two distinct pre-stall angles; otherwise the slope fields stay zero.
func Summarize(results []CaseResult) (SweepSummary, error) {
	if len(results) == 0 {
		return SweepSummary{}, ErrNoResults
	}
	sorted := make([]CaseResult, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Alpha.Value < sorted[j].Alpha.Value
	})

	alphas := make(stats.Float64Data, len(sorted))
	cl := make(stats.Float64Data, len(sorted))
	cdt := make(stats.Float64Data, len(sorted))
	for i, r := range sorted {
		alphas[i] = r.Alpha.Value
		cl[i] = r.Coefficients.Lift.Value
		cdt[i] = r.Coefficients.WakeDrag.Value
	}

	s := SweepSummary{Cases: len(sorted)}
	var err error
	if s.MaxLift, err = stats.Max(cl); err != nil {
		return SweepSummary{}, err
	}
	if s.MinWakeDrag, err = stats.Min(cdt); err != nil {
		return SweepSummary{}, err
	}
	if s.MeanWakeDrag, err = stats.Mean(cdt); err != nil {
		return SweepSummary{}, err
	}

	stall := indexOf(cl, s.MaxLift)
	s.StallAlpha = alphas[stall]
	s.MinWakeDragAlpha = alphas[indexOf(cdt, s.MinWakeDrag)]

	s.MaxLiftToDrag = math.Inf(-1)
	for i := range sorted {
		if cdt[i] == 0 {
			continue
		}
		if ld := cl[i] / cdt[i]; ld > s.MaxLiftToDrag {
			s.MaxLiftToDrag = ld
			s.MaxLiftToDragAlpha = alphas[i]
		}
	}
	if math.IsInf(s.MaxLiftToDrag, -1) {
		s.MaxLiftToDrag = 0
	}

	x, y := alphas[:stall+1], cl[:stall+1]
	if distinct(x) >= 2 {
		intercept, slope := stat.LinearRegression(x, y, nil, false)
		s.LiftSlopePerDeg = slope
		s.LiftSlopePerRad = slope * 180 / math.Pi
		s.SlopeRSquared = stat.RSquared(x, y, nil, intercept, slope)
		s.SlopePoints = len(x)
		if slope != 0 {
			s.ZeroLiftAlpha = -intercept / slope
		}
	}
	return s, nil
}

func indexOf(xs []float64, v float64) int {
	for i, x := range xs {
		if x == v {
			return i
		}
	}
	return 0
}

func distinct(xs []float64) int {
	seen := make(map[float64]struct{}, len(xs))
	for _, x := range xs {
		seen[x] = struct{}{}
	}
	return len(seen)
}
