// Package sketch records the geometry handed over by gear.Realize into an
// in-memory sketch and turns it into outlines, solids and meshes.
package sketch

import (
	"errors"
	"fmt"
	"math"

	"github.com/soypat/gear"
	"github.com/soypat/gear/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
)

var (
	errFrozen      = errors.New("sketch already extruded")
	errNotExtruded = errors.New("sketch not extruded")
)

// Spline is a curve fitted through ordered points.
type Spline struct {
	Points []r2.Vec
}

// Sketch is a 2D sketch on the XY plane plus the features that turn it
// into a gear body. The zero value is ready to use. A Sketch implements
// gear.Realizer and is not safe for concurrent use.
type Sketch struct {
	Splines []Spline
	Lines   []gear.Segment
	Arcs    []gear.Arc
	Circles []gear.Circle
	// Extrusion is the extrusion distance. Zero until Extrude is called.
	Extrusion float64
	// Count is the number of times the tooth is patterned about the z axis.
	Count int
	Name  string
}

var _ gear.Realizer = (*Sketch)(nil) // Compile time check of interface implementation.

// New realizes the gear described by res into a new Sketch.
func New(res gear.Result) (*Sketch, error) {
	var sk Sketch
	if err := gear.Realize(&sk, res); err != nil {
		return nil, err
	}
	return &sk, nil
}

func (sk *Sketch) AddSpline(points []r2.Vec) error {
	if sk.Extrusion != 0 {
		return errFrozen
	}
	if len(points) < 2 {
		return fmt.Errorf("spline needs at least 2 points, got %d", len(points))
	}
	if err := finite(points...); err != nil {
		return err
	}
	sk.Splines = append(sk.Splines, Spline{Points: append([]r2.Vec{}, points...)})
	return nil
}

func (sk *Sketch) AddLine(a, b r2.Vec) error {
	if sk.Extrusion != 0 {
		return errFrozen
	}
	if err := finite(a, b); err != nil {
		return err
	}
	sk.Lines = append(sk.Lines, gear.Segment{A: a, B: b})
	return nil
}

func (sk *Sketch) AddArc(start, mid, end r2.Vec) error {
	if sk.Extrusion != 0 {
		return errFrozen
	}
	if err := finite(start, mid, end); err != nil {
		return err
	}
	if _, _, err := d2.Circumcircle(start, mid, end); err != nil {
		return fmt.Errorf("three point arc: %w", err)
	}
	sk.Arcs = append(sk.Arcs, gear.Arc{Start: start, Mid: mid, End: end})
	return nil
}

func (sk *Sketch) AddCircle(center r2.Vec, radius float64) error {
	if sk.Extrusion != 0 {
		return errFrozen
	}
	if err := finite(center); err != nil {
		return err
	}
	if !(radius > 0) || math.IsInf(radius, 0) {
		return fmt.Errorf("circle radius must be positive, got %g", radius)
	}
	sk.Circles = append(sk.Circles, gear.Circle{Center: center, Radius: radius})
	return nil
}

// Extrude records the extrusion distance of the sketch profiles.
// No geometry may be added afterwards.
func (sk *Sketch) Extrude(distance float64) error {
	if sk.Extrusion != 0 {
		return errFrozen
	}
	if len(sk.Circles) == 0 || len(sk.Splines) == 0 {
		return errors.New("sketch has no closed profiles to extrude")
	}
	if !(distance > 0) || math.IsInf(distance, 0) {
		return fmt.Errorf("extrusion distance must be positive, got %g", distance)
	}
	sk.Extrusion = distance
	return nil
}

// CircularPattern records the number of copies of the extruded tooth.
func (sk *Sketch) CircularPattern(count int) error {
	if sk.Extrusion == 0 {
		return errNotExtruded
	}
	if count < 1 {
		return fmt.Errorf("pattern count must be positive, got %d", count)
	}
	sk.Count = count
	return nil
}

func (sk *Sketch) SetName(name string) error {
	if sk.Extrusion == 0 {
		return errNotExtruded
	}
	sk.Name = name
	return nil
}

func finite(points ...r2.Vec) error {
	for _, p := range points {
		if !d2.IsFinite(p) {
			return fmt.Errorf("non-finite sketch point %v", p)
		}
	}
	return nil
}
