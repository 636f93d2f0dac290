package airfoil

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aeroreduce/internal/aero"
)

const leadingEdgeFirst = `X;Y
0;0
0.1;0.05
0.3;0.06
0.6;0.04
1;0
0;0
0.1;-0.02
0.3;-0.025
0.6;-0.015
1;0
`

const selig = `# trailing edge first
1.0; 0.0
0.6; 0.04
0.3; 0.06
0.1; 0.05
0.0; 0.0
0.1; -0.02
0.3; -0.025
0.6; -0.015
1.0; 0.0
`

var testTaps = Taps{
	Top:    []float64{0.6, 0, 0.3, 0.1},
	Bottom: []float64{0.6, 0.1, 0.3},
}

func TestReadCoordinatesLayout(t *testing.T) {
	want := aero.TapLayout{
		Top:    []aero.Point{{X: 0, Y: 0}, {X: 0.1, Y: 0.05}, {X: 0.3, Y: 0.06}, {X: 0.6, Y: 0.04}},
		Bottom: []aero.Point{{X: 0.1, Y: -0.02}, {X: 0.3, Y: -0.025}, {X: 0.6, Y: -0.015}},
	}

	for name, src := range map[string]string{
		"leading edge first": leadingEdgeFirst,
		"selig":              selig,
	} {
		t.Run(name, func(t *testing.T) {
			coords, err := ReadCoordinates(strings.NewReader(src))
			require.NoError(t, err)

			layout, err := coords.Layout(testTaps)
			require.NoError(t, err)
			if diff := cmp.Diff(want, layout, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
				t.Errorf("layout mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReadCoordinatesErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
	}{
		{"too few points", "x;y\n0;0\n1;0\n", "at least 3"},
		{"bad number", "x;y\n0;0\n0.5;abc\n1;0\n", "line 3"},
		{"single field", "x;y\n0;0\n0.5\n1;0\n", "expected x;y"},
		{"no leading edge", "x;y\n1;0\n0.5;0.1\n0.2;0.1\n", "leading-edge"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCoordinates(strings.NewReader(tt.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestLayoutMissingStation(t *testing.T) {
	coords, err := ReadCoordinates(strings.NewReader(leadingEdgeFirst))
	require.NoError(t, err)

	_, err = coords.Layout(Taps{Top: []float64{0, 0.45}, Bottom: []float64{0.1, 0.3}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTapNotFound))
	assert.Contains(t, err.Error(), "top surface x/c=0.45")
}

func TestLoadLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "outline.csv")
	require.NoError(t, os.WriteFile(path, []byte(leadingEdgeFirst), 0o644))

	layout, err := LoadLayout(path, testTaps, 0.1)
	require.NoError(t, err)
	assert.InDelta(t, 0.06, layout.Top[3].X, 1e-15)
	assert.InDelta(t, 0.004, layout.Top[3].Y, 1e-15)

	cfg := aero.DefaultConfig()
	cfg.Layout = layout
	assert.NoError(t, cfg.Validate())

	_, err = LoadLayout(filepath.Join(t.TempDir(), "missing.csv"), testTaps, 0.1)
	assert.Error(t, err)

	_, err = LoadLayout(path, testTaps, 0)
	assert.Error(t, err)
}

func TestTaps(t *testing.T) {
	assert.NoError(t, DefaultTaps().Validate())
	assert.Len(t, DefaultTaps().Top, 12)
	assert.Len(t, DefaultTaps().Bottom, 7)
	assert.Len(t, DefaultAlphas(), 11)

	assert.Error(t, Taps{Top: []float64{0}, Bottom: []float64{0, 1}}.Validate())
	assert.Error(t, Taps{Top: []float64{0, 1.2}, Bottom: []float64{0, 1}}.Validate())
	assert.Error(t, Taps{Top: []float64{0, 0.5, 0.5}, Bottom: []float64{0, 1}}.Validate())
}

func TestFromOffsets(t *testing.T) {
	layout, err := FromOffsets(
		Taps{Top: []float64{0.5, 0}, Bottom: []float64{1, 0.2}},
		[]float64{0.05, 0},
		[]float64{0, -0.03},
	)
	require.NoError(t, err)
	assert.Equal(t, []aero.Point{{X: 0, Y: 0}, {X: 0.5, Y: 0.05}}, layout.Top)
	assert.Equal(t, []aero.Point{{X: 0.2, Y: -0.03}, {X: 1, Y: 0}}, layout.Bottom)

	_, err = FromOffsets(Taps{Top: []float64{0, 1}, Bottom: []float64{0, 1}}, []float64{0}, []float64{0, 0})
	assert.Error(t, err)
}
