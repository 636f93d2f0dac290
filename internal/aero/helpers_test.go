package aero

import (
	"bytes"
	"log/slog"

	"aeroreduce/internal/measure"
)

// testLayout is a small symmetric section in chord fractions
func testLayout() TapLayout {
	return TapLayout{
		Top: []Point{
			{0, 0}, {0.1, 0.05}, {0.3, 0.06}, {0.6, 0.04}, {1.0, 0},
		},
		Bottom: []Point{
			{0, 0}, {0.1, -0.05}, {0.3, -0.06}, {0.6, -0.04}, {1.0, 0},
		},
	}
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Layout = testLayout().Scale(cfg.Chord)
	return cfg
}

func exact(vs ...float64) []measure.Quantity {
	out := make([]measure.Quantity, len(vs))
	for i, v := range vs {
		out[i] = measure.Exact(v)
	}
	return out
}

func uniform(v, err float64, n int) []measure.Quantity {
	out := make([]measure.Quantity, n)
	for i := range out {
		out[i] = measure.New(v, err)
	}
	return out
}

// wakeRake has the free-stream pressure at the edges and a deficit in the
// middle ports
func wakeRake(n int, err float64) []measure.Quantity {
	out := uniform(61.25, err, n)
	for j := n/2 - 2; j <= n/2+2; j++ {
		out[j] = measure.New(40, err)
	}
	return out
}

func testCase(alpha float64) Case {
	n := len(DefaultRakeGeometry().Ports)
	return Case{
		ID:    "test",
		Alpha: measure.Exact(alpha),
		Pressures: PressureDistribution{
			Top:    exact(-20, -80, -60, -30, -5),
			Bottom: exact(-20, 10, 8, 4, -5),
		},
		Rake: RakeInput{
			Config1: wakeRake(n, 0),
			Config2: wakeRake(n, 0),
			Offset1: 0,
			Offset2: 0.005,
		},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}
