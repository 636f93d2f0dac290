package aero

import (
	"math"

	"aeroreduce/internal/measure"
)

const (
	// BernoulliDensity is the air density used for rake velocities and q∞ (kg/m³)
	BernoulliDensity = 1.225
	// WakeDensity is the ambient density used for the momentum deficit (kg/m³)
	WakeDensity = 1.29
	// AirViscosity is the dynamic viscosity used for the Reynolds number (kg/(m·s))
	AirViscosity = 1.825e-5
	// DefaultChord is the model chord length (m)
	DefaultChord = 0.1
	// DefaultAlphaErr is the angle-of-attack setting uncertainty (deg)
	DefaultAlphaErr = 0.1
	// DefaultBadRakePort is the rake port known to read abnormally high
	DefaultBadRakePort = 14
	// NoTap disables a bad-tap correction
	NoTap = -1
)

// Point is a tap or port coordinate (m unless stated otherwise)
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// TapLayout holds the ordered tap coordinates of both surfaces
type TapLayout struct {
	Top    []Point `json:"top" yaml:"top"`
	Bottom []Point `json:"bottom" yaml:"bottom"`
}

// Scale multiplies every coordinate, e.g. chord-fraction units by the chord
func (l TapLayout) Scale(k float64) TapLayout {
	scale := func(in []Point) []Point {
		out := make([]Point, len(in))
		for i, p := range in {
			out[i] = Point{X: p.X * k, Y: p.Y * k}
		}
		return out
	}
	return TapLayout{Top: scale(l.Top), Bottom: scale(l.Bottom)}
}

// TapCorrections designates one known-bad tap per surface (NoTap for none)
type TapCorrections struct {
	Top    int `json:"top" yaml:"top"`
	Bottom int `json:"bottom" yaml:"bottom"`
}

// NoCorrections disables bad-tap interpolation on both surfaces
func NoCorrections() TapCorrections {
	return TapCorrections{Top: NoTap, Bottom: NoTap}
}

// RakeGeometry describes the wake rake
type RakeGeometry struct {
	// Ports are the port y-positions relative to the rake datum (m), strictly increasing
	Ports []float64 `json:"ports" yaml:"ports"`
	// BadPort is interpolated over in both probe configurations (NoTap for none)
	BadPort int `json:"bad_port" yaml:"bad_port"`
}

// DefaultRakeGeometry returns the 17-port rake, 0 to 20 cm
func DefaultRakeGeometry() RakeGeometry {
	cm := []float64{0, 1.67, 3.33, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16.67, 18.33, 20}
	ports := make([]float64, len(cm))
	for i, v := range cm {
		ports[i] = v / 100
	}
	return RakeGeometry{Ports: ports, BadPort: DefaultBadRakePort}
}

// PressureDistribution holds the calibrated surface pressures (Pa)
type PressureDistribution struct {
	Top    []measure.Quantity `json:"top"`
	Bottom []measure.Quantity `json:"bottom"`
}

// RakeInput holds the two rake probe configurations of one case
type RakeInput struct {
	Config1 []measure.Quantity `json:"config1"`
	Config2 []measure.Quantity `json:"config2"`
	// Offset1 and Offset2 are the rake datum heights of each configuration (m)
	Offset1 float64 `json:"offset1"`
	Offset2 float64 `json:"offset2"`
}

// Case is one angle-of-attack trial
type Case struct {
	ID        string               `json:"id,omitempty"`
	Alpha     measure.Quantity     `json:"alpha"`
	Pressures PressureDistribution `json:"pressures"`
	Rake      RakeInput            `json:"rake"`
}

// WakePoint is one sample of the merged wake profile
type WakePoint struct {
	Y        float64          `json:"y"`
	Pressure measure.Quantity `json:"pressure"`
	Velocity measure.Quantity `json:"velocity"`
	Config   int              `json:"config"`
	Port     int              `json:"port"`
}

// WakeProfile is ordered by increasing Y
type WakeProfile []WakePoint

// Forces holds the dimensional results of one case (N/m and N·m/m per span)
type Forces struct {
	Normal   measure.Quantity `json:"normal"`
	Axial    measure.Quantity `json:"axial"`
	Moment   measure.Quantity `json:"moment"`
	Lift     measure.Quantity `json:"lift"`
	Drag     measure.Quantity `json:"drag"`
	WakeDrag measure.Quantity `json:"wake_drag"`
}

// Coefficients holds the nondimensional results of one case
type Coefficients struct {
	Lift     measure.Quantity   `json:"cl"`
	Drag     measure.Quantity   `json:"cd"`
	Moment   measure.Quantity   `json:"cm"`
	WakeDrag measure.Quantity   `json:"cdt"`
	CpTop    []measure.Quantity `json:"cp_top"`
	CpBottom []measure.Quantity `json:"cp_bottom"`
}

// CaseResult is the output of one pipeline pass
type CaseResult struct {
	ID              string           `json:"id,omitempty"`
	Alpha           measure.Quantity `json:"alpha"`
	FreeStream      measure.Quantity `json:"free_stream"`
	DynamicPressure measure.Quantity `json:"dynamic_pressure"`
	Reynolds        measure.Quantity `json:"reynolds"`
	Forces          Forces           `json:"forces"`
	Coefficients    Coefficients     `json:"coefficients"`
	Wake            WakeProfile      `json:"wake"`
}

// Config is the fixed experiment setup shared by every case of a sweep
type Config struct {
	// Chord is the model chord (m)
	Chord float64
	// Layout holds tap coordinates already scaled to metres
	Layout      TapLayout
	Corrections TapCorrections
	Rake        RakeGeometry
	// RhoBernoulli is used for port velocities and the dynamic pressure
	RhoBernoulli float64
	// RhoWake is used for the momentum-deficit integral and the Reynolds number
	RhoWake   float64
	Viscosity float64
}

// DefaultConfig returns the tunnel constants with an empty tap layout
func DefaultConfig() Config {
	return Config{
		Chord:        DefaultChord,
		Corrections:  NoCorrections(),
		Rake:         DefaultRakeGeometry(),
		RhoBernoulli: BernoulliDensity,
		RhoWake:      WakeDensity,
		Viscosity:    AirViscosity,
	}
}

// Validate checks the configuration once, before any case is reduced
func (c Config) Validate() error {
	const op = "config"
	if !(c.Chord > 0) || math.IsInf(c.Chord, 0) {
		return precondition(op, "chord", "must be positive, got %g", c.Chord)
	}
	if !(c.RhoBernoulli > 0) || !(c.RhoWake > 0) {
		return precondition(op, "density", "must be positive")
	}
	if !(c.Viscosity > 0) {
		return precondition(op, "viscosity", "must be positive, got %g", c.Viscosity)
	}
	if len(c.Layout.Top) < 2 {
		return precondition(op, "layout.top", "at least 2 taps required, got %d", len(c.Layout.Top))
	}
	if len(c.Layout.Bottom) < 2 {
		return precondition(op, "layout.bottom", "at least 2 taps required, got %d", len(c.Layout.Bottom))
	}
	if err := checkSurfaceOrder(op, "layout.top", c.Layout.Top); err != nil {
		return err
	}
	if err := checkSurfaceOrder(op, "layout.bottom", c.Layout.Bottom); err != nil {
		return err
	}
	if err := checkCorrectionIndex(op, "corrections.top", c.Corrections.Top, len(c.Layout.Top)); err != nil {
		return err
	}
	if err := checkCorrectionIndex(op, "corrections.bottom", c.Corrections.Bottom, len(c.Layout.Bottom)); err != nil {
		return err
	}
	return c.Rake.validate(op)
}

func (r RakeGeometry) validate(op string) error {
	if len(r.Ports) < 3 {
		return precondition(op, "rake.ports", "at least 3 ports required, got %d", len(r.Ports))
	}
	for i := 1; i < len(r.Ports); i++ {
		if !(r.Ports[i] > r.Ports[i-1]) {
			return precondition(op, "rake.ports", "port positions must be strictly increasing at index %d", i)
		}
	}
	return checkCorrectionIndex(op, "rake.bad_port", r.BadPort, len(r.Ports))
}

func checkSurfaceOrder(op, field string, pts []Point) error {
	for i := 1; i < len(pts); i++ {
		if pts[i].X < pts[i-1].X {
			return precondition(op, field, "taps must run leading edge to trailing edge, x decreases at index %d", i)
		}
	}
	return nil
}

func checkCorrectionIndex(op, field string, index, n int) error {
	if index == NoTap {
		return nil
	}
	if index < 1 || index > n-2 {
		return precondition(op, field, "index %d must have two neighbours in a sequence of %d", index, n)
	}
	return nil
}
