package aero

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"aeroreduce/internal/measure"
)

func TestResolveForces(t *testing.T) {
	n, a := measure.New(12, 0.3), measure.New(0.8, 0.05)

	tests := []struct {
		name      string
		alpha     float64
		lift      float64
		drag      float64
		liftErrSq float64
	}{
		{"zero incidence", 0, 12, 0.8, 0.3 * 0.3},
		{"right angle", 90, -0.8, 12, 0.05 * 0.05},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lift, drag := ResolveForces(n, a, measure.Exact(tt.alpha))
			assert.InDelta(t, tt.lift, lift.Value, 1e-12)
			assert.InDelta(t, tt.drag, drag.Value, 1e-12)
			assert.InDelta(t, math.Sqrt(tt.liftErrSq), lift.Err, 1e-12)
		})
	}

	t.Run("angle uncertainty in radians", func(t *testing.T) {
		alpha := measure.New(10, 0.1)
		r := 10 * math.Pi / 180
		dr := 0.1 * math.Pi / 180
		sin, cos := math.Sin(r), math.Cos(r)

		lift, drag := ResolveForces(n, a, alpha)

		dL := -n.Value*sin - a.Value*cos
		wantL := math.Sqrt(math.Pow(cos*n.Err, 2) + math.Pow(sin*a.Err, 2) + math.Pow(dL*dr, 2))
		dD := n.Value*cos - a.Value*sin
		wantD := math.Sqrt(math.Pow(sin*n.Err, 2) + math.Pow(cos*a.Err, 2) + math.Pow(dD*dr, 2))

		assert.InEpsilon(t, n.Value*cos-a.Value*sin, lift.Value, 1e-12)
		assert.InEpsilon(t, n.Value*sin+a.Value*cos, drag.Value, 1e-12)
		assert.InEpsilon(t, wantL, lift.Err, 1e-12)
		assert.InEpsilon(t, wantD, drag.Err, 1e-12)
	})

	t.Run("exact inputs stay exact", func(t *testing.T) {
		lift, drag := ResolveForces(measure.Exact(3), measure.Exact(1), measure.Exact(7))
		assert.Zero(t, lift.Err)
		assert.Zero(t, drag.Err)
	})
}
