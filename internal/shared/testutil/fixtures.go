package testutil

import (
	"aeroreduce/internal/config"
	api "aeroreduce/pkg/contracts/api/v1"
)

// RakePorts is the port count of the reference rake
const RakePorts = 17

// Samples builds measured values sharing one uncertainty
func Samples(err float64, vs ...float64) []api.Sample {
	out := make([]api.Sample, len(vs))
	for i, v := range vs {
		out[i] = api.Sample{Value: v, Err: err}
	}
	return out
}

// RakeSamples returns the rake port pressures of a wake with a velocity
// deficit over ports 6 to 10.
func RakeSamples(err float64) []api.Sample {
	out := make([]api.Sample, RakePorts)
	for i := range out {
		out[i] = api.Sample{Value: 61.25, Err: err}
	}
	for j := 6; j <= 10; j++ {
		out[j].Value = 40
	}
	return out
}

// WithSection configures cfg for a small symmetric section with five taps per
// surface and explicit ordinates, and returns it.
func WithSection(cfg *config.Config) *config.Config {
	cfg.Tunnel.TopTaps = []float64{0, 0.1, 0.3, 0.6, 1}
	cfg.Tunnel.TopOrdinates = []float64{0, 0.05, 0.06, 0.04, 0}
	cfg.Tunnel.BottomTaps = []float64{0, 0.1, 0.3, 0.6, 1}
	cfg.Tunnel.BottomOrdinates = []float64{0, -0.05, -0.06, -0.04, 0}
	return cfg
}

// SectionYAML is the configuration file equivalent of WithSection
const SectionYAML = `
tunnel:
  top_taps: [0, 0.1, 0.3, 0.6, 1]
  top_ordinates: [0, 0.05, 0.06, 0.04, 0]
  bottom_taps: [0, 0.1, 0.3, 0.6, 1]
  bottom_ordinates: [0, -0.05, -0.06, -0.04, 0]
`

// CaseRequest returns a reducible case for the WithSection geometry
func CaseRequest(id string, alpha float64) api.CaseRequest {
	return api.CaseRequest{
		ID:    id,
		Alpha: alpha,
		Pressures: api.SurfacePressures{
			Top:    Samples(0.5, -20, -80, -60, -30, -5),
			Bottom: Samples(0.5, -20, 10, 8, 4, -5),
		},
		Rake: api.RakePressures{
			Config1: RakeSamples(0.5),
			Config2: RakeSamples(0.5),
			Offset2: 0.005,
		},
	}
}

// BrokenCase returns a case whose top surface lacks one pressure, which the
// reducer rejects as a precondition failure.
func BrokenCase(id string, alpha float64) api.CaseRequest {
	c := CaseRequest(id, alpha)
	c.Pressures.Top = c.Pressures.Top[:len(c.Pressures.Top)-1]
	return c
}
