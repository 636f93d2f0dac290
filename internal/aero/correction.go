package aero

import "aeroreduce/internal/measure"

// InterpolateBadPort returns a copy of values with the sample at index
// replaced by the midpoint of its two neighbours. NoTap returns an unchanged copy.
//
// This is a measurement-correction policy for one known-bad sensor, not a
// smoothing step.
func InterpolateBadPort(values []measure.Quantity, index int) ([]measure.Quantity, error) {
	if err := checkCorrectionIndex("interpolate", "index", index, len(values)); err != nil {
		return nil, err
	}
	out := make([]measure.Quantity, len(values))
	copy(out, values)
	if index != NoTap {
		out[index] = measure.Midpoint(values[index-1], values[index+1])
	}
	return out, nil
}
