package aero

import (
	"math"

	"aeroreduce/internal/measure"
)

// ResolveForces rotates body-axis forces into the wind axes.
//
//	L = N·cosα − A·sinα
//	D = N·sinα + A·cosα
//
// Alpha is in degrees; its uncertainty is converted to radians before it is
// multiplied by the angle partials.
func ResolveForces(normal, axial, alpha measure.Quantity) (lift, drag measure.Quantity) {
	a := alpha.Value * math.Pi / 180
	da := alpha.Err * math.Pi / 180
	sin, cos := math.Sincos(a)

	liftValue := normal.Value*cos - axial.Value*sin
	dragValue := normal.Value*sin + axial.Value*cos

	lift = measure.Propagate(liftValue,
		measure.Partial{Derivative: cos, Err: normal.Err},
		measure.Partial{Derivative: -sin, Err: axial.Err},
		measure.Partial{Derivative: -dragValue, Err: da},
	)
	drag = measure.Propagate(dragValue,
		measure.Partial{Derivative: sin, Err: normal.Err},
		measure.Partial{Derivative: cos, Err: axial.Err},
		measure.Partial{Derivative: liftValue, Err: da},
	)
	return lift, drag
}
