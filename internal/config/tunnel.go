package config

import (
	"errors"
	"fmt"

	"aeroreduce/internal/aero"
	"aeroreduce/internal/airfoil"
)

// TunnelConfig describes the fixed experiment setup: model geometry, tap
// stations, rake and air properties.
type TunnelConfig struct {
	// Chord of the model (m)
	Chord        float64 `yaml:"chord" envconfig:"CHORD" validate:"gt=0"`
	RhoBernoulli float64 `yaml:"rho_bernoulli" envconfig:"RHO_BERNOULLI" validate:"gt=0"`
	RhoWake      float64 `yaml:"rho_wake" envconfig:"RHO_WAKE" validate:"gt=0"`
	Viscosity    float64 `yaml:"viscosity" envconfig:"VISCOSITY" validate:"gt=0"`
	// AlphaErr is the angle-of-attack uncertainty (deg) applied to every case
	AlphaErr float64 `yaml:"alpha_err" envconfig:"ALPHA_ERR" validate:"gte=0"`

	// CoordinatesFile is a ';'-delimited airfoil outline in chord fractions.
	// When empty, TopOrdinates and BottomOrdinates give the tap heights.
	CoordinatesFile string    `yaml:"coordinates_file" envconfig:"COORDINATES_FILE"`
	TopTaps         []float64 `yaml:"top_taps" envconfig:"TOP_TAPS" validate:"min=2,dive,gte=0,lte=1"`
	BottomTaps      []float64 `yaml:"bottom_taps" envconfig:"BOTTOM_TAPS" validate:"min=2,dive,gte=0,lte=1"`
	TopOrdinates    []float64 `yaml:"top_ordinates" envconfig:"TOP_ORDINATES"`
	BottomOrdinates []float64 `yaml:"bottom_ordinates" envconfig:"BOTTOM_ORDINATES"`

	// BadTopTap and BadBottomTap index the leading-edge-first tap order; -1 disables
	BadTopTap    int `yaml:"bad_top_tap" envconfig:"BAD_TOP_TAP" validate:"gte=-1"`
	BadBottomTap int `yaml:"bad_bottom_tap" envconfig:"BAD_BOTTOM_TAP" validate:"gte=-1"`

	// RakePortsCM are the port heights from the rake datum (cm)
	RakePortsCM []float64 `yaml:"rake_ports_cm" envconfig:"RAKE_PORTS_CM" validate:"min=3"`
	BadRakePort int       `yaml:"bad_rake_port" envconfig:"BAD_RAKE_PORT" validate:"gte=-1"`
}

// DefaultTunnel returns the reference tunnel setup. It names no coordinate
// file, so a geometry source must still be configured.
func DefaultTunnel() TunnelConfig {
	taps := airfoil.DefaultTaps()
	rake := aero.DefaultRakeGeometry()
	cm := make([]float64, len(rake.Ports))
	for i, p := range rake.Ports {
		cm[i] = p * 100
	}
	return TunnelConfig{
		Chord:        aero.DefaultChord,
		RhoBernoulli: aero.BernoulliDensity,
		RhoWake:      aero.WakeDensity,
		Viscosity:    aero.AirViscosity,
		AlphaErr:     aero.DefaultAlphaErr,
		TopTaps:      taps.Top,
		BottomTaps:   taps.Bottom,
		BadTopTap:    aero.NoTap,
		BadBottomTap: aero.NoTap,
		RakePortsCM:  cm,
		BadRakePort:  aero.DefaultBadRakePort,
	}
}

// HasGeometry reports whether a tap geometry source is configured
func (t TunnelConfig) HasGeometry() bool {
	return t.CoordinatesFile != "" || len(t.TopOrdinates) > 0
}

func (t TunnelConfig) validate() error {
	if t.CoordinatesFile == "" && (len(t.TopOrdinates) > 0 || len(t.BottomOrdinates) > 0) {
		if len(t.TopOrdinates) != len(t.TopTaps) {
			return fmt.Errorf("top_ordinates: want %d values, got %d", len(t.TopTaps), len(t.TopOrdinates))
		}
		if len(t.BottomOrdinates) != len(t.BottomTaps) {
			return fmt.Errorf("bottom_ordinates: want %d values, got %d", len(t.BottomTaps), len(t.BottomOrdinates))
		}
	}
	if t.BadRakePort >= len(t.RakePortsCM)-1 {
		return fmt.Errorf("bad_rake_port %d has no upper neighbour among %d ports", t.BadRakePort, len(t.RakePortsCM))
	}
	return nil
}

// ErrNoGeometry is returned when neither a coordinate file nor tap ordinates are configured
var ErrNoGeometry = errors.New("no tap geometry: set tunnel.coordinates_file or tunnel.top_ordinates/bottom_ordinates")

// AeroConfig resolves the tap geometry and returns the reduction configuration
func (t TunnelConfig) AeroConfig() (aero.Config, error) {
	taps := airfoil.Taps{Top: t.TopTaps, Bottom: t.BottomTaps}

	var layout aero.TapLayout
	var err error
	switch {
	case t.CoordinatesFile != "":
		layout, err = airfoil.LoadLayout(t.CoordinatesFile, taps, t.Chord)
	case len(t.TopOrdinates) > 0:
		layout, err = airfoil.FromOffsets(taps, t.TopOrdinates, t.BottomOrdinates)
		layout = layout.Scale(t.Chord)
	default:
		return aero.Config{}, ErrNoGeometry
	}
	if err != nil {
		return aero.Config{}, fmt.Errorf("tap geometry: %w", err)
	}

	ports := make([]float64, len(t.RakePortsCM))
	for i, cm := range t.RakePortsCM {
		ports[i] = cm / 100
	}

	cfg := aero.Config{
		Chord:  t.Chord,
		Layout: layout,
		Corrections: aero.TapCorrections{
			Top:    t.BadTopTap,
			Bottom: t.BadBottomTap,
		},
		Rake:         aero.RakeGeometry{Ports: ports, BadPort: t.BadRakePort},
		RhoBernoulli: t.RhoBernoulli,
		RhoWake:      t.RhoWake,
		Viscosity:    t.Viscosity,
	}
	if err := cfg.Validate(); err != nil {
		return aero.Config{}, err
	}
	return cfg, nil
}
