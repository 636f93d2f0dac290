package airfoil

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"aeroreduce/internal/aero"
)

// ErrTapNotFound is returned when a tap station has no coordinate row
var ErrTapNotFound = errors.New("tap station not found in coordinates")

// Coordinates is an airfoil outline split into its two surfaces, in chord
// fractions, in file order.
type Coordinates struct {
	Upper []aero.Point
	Lower []aero.Point
}

// ReadCoordinates parses a ';'-delimited x;y outline with an optional header
// row. The upper surface comes first and the lower surface begins where x
// returns to the leading edge. Both the Selig ordering (trailing edge → leading
// edge → trailing edge) and two leading-edge-first runs are accepted; the
// leading-edge point belongs to both surfaces.
func ReadCoordinates(r io.Reader) (Coordinates, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	reader.Comment = '#'

	records, err := reader.ReadAll()
	if err != nil {
		return Coordinates{}, fmt.Errorf("read coordinate records: %w", err)
	}

	var pts []aero.Point
	for i, rec := range records {
		p, err := parsePoint(rec)
		if err != nil {
			if i == 0 {
				continue // header
			}
			return Coordinates{}, fmt.Errorf("line %d: %w", i+1, err)
		}
		pts = append(pts, p)
	}
	if len(pts) < 3 {
		return Coordinates{}, fmt.Errorf("coordinate table has %d points, need at least 3", len(pts))
	}
	return split(pts)
}

func parsePoint(rec []string) (aero.Point, error) {
	if len(rec) < 2 {
		return aero.Point{}, fmt.Errorf("expected x;y, got %d fields", len(rec))
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(rec[0]), 64)
	if err != nil {
		return aero.Point{}, fmt.Errorf("parse x: %w", err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
	if err != nil {
		return aero.Point{}, fmt.Errorf("parse y: %w", err)
	}
	return aero.Point{X: x, Y: y}, nil
}

func split(pts []aero.Point) (Coordinates, error) {
	le := -1
	for i, p := range pts {
		if i > 0 && p.X == 0 {
			le = i
			break
		}
	}
	if le < 0 {
		return Coordinates{}, errors.New("no leading-edge row (x = 0) separating the surfaces")
	}

	if pts[0].X == 0 {
		// both runs start at the leading edge
		return Coordinates{Upper: pts[:le], Lower: pts[le:]}, nil
	}
	return Coordinates{Upper: pts[:le+1], Lower: pts[le:]}, nil
}

// Layout picks the tap stations out of the outline and orders each surface
// from leading edge to trailing edge, in chord fractions.
func (c Coordinates) Layout(taps Taps) (aero.TapLayout, error) {
	if err := taps.Validate(); err != nil {
		return aero.TapLayout{}, err
	}
	top, err := pick("top", c.Upper, taps.Top)
	if err != nil {
		return aero.TapLayout{}, err
	}
	bottom, err := pick("bottom", c.Lower, taps.Bottom)
	if err != nil {
		return aero.TapLayout{}, err
	}
	return aero.TapLayout{Top: top, Bottom: bottom}, nil
}

func pick(surface string, outline []aero.Point, stations []float64) ([]aero.Point, error) {
	out := make([]aero.Point, 0, len(stations))
	for _, x := range stations {
		found := false
		for _, p := range outline {
			if math.Abs(p.X-x) <= matchTolerance {
				out = append(out, aero.Point{X: x, Y: p.Y})
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%s surface x/c=%g: %w", surface, x, ErrTapNotFound)
		}
	}
	sortByX(out)
	return out, nil
}

// LoadLayout reads a coordinate file and returns the tap layout scaled to the
// chord, ready for aero.Config.
func LoadLayout(path string, taps Taps, chord float64) (aero.TapLayout, error) {
	if !(chord > 0) {
		return aero.TapLayout{}, fmt.Errorf("chord must be positive, got %g", chord)
	}
	f, err := os.Open(path)
	if err != nil {
		return aero.TapLayout{}, fmt.Errorf("open coordinate file: %w", err)
	}
	defer f.Close()

	coords, err := ReadCoordinates(f)
	if err != nil {
		return aero.TapLayout{}, fmt.Errorf("%s: %w", path, err)
	}
	layout, err := coords.Layout(taps)
	if err != nil {
		return aero.TapLayout{}, fmt.Errorf("%s: %w", path, err)
	}
	return layout.Scale(chord), nil
}
