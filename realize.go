package gear

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
)

// Realizer builds a solid out of 2D sketch geometry. It is implemented by
// CAD kernels and document models. Calls to a Realizer are made from a single
// goroutine.
type Realizer interface {
	// AddSpline adds a fitted curve through the ordered points.
	AddSpline(points []r2.Vec) error
	AddLine(a, b r2.Vec) error
	// AddArc adds a circular arc from start to end passing through mid.
	AddArc(start, mid, end r2.Vec) error
	AddCircle(center r2.Vec, radius float64) error
	// Extrude extrudes the closed regions of the sketch by distance,
	// joining the resulting bodies.
	Extrude(distance float64) error
	// CircularPattern replicates the extruded tooth count times about the gear axis.
	CircularPattern(count int) error
	SetName(name string) error
}

// Realize hands the gear geometry of res to r: flank splines, root legs,
// tip arc and root circle followed by the extrusion, the circular pattern
// and the body name. The first error returned by r aborts realization.
func Realize(r Realizer, res Result) error {
	if r == nil {
		return errors.New("nil realizer")
	}
	t := res.Tooth
	if len(t.Curve1) < 2 || len(t.Curve2) < 2 {
		return errors.New("tooth profile has no flanks")
	}
	steps := []struct {
		name string
		fn   func() error
	}{
		{"flank spline 1", func() error { return r.AddSpline(t.Curve1) }},
		{"flank spline 2", func() error { return r.AddSpline(t.Curve2) }},
		{"root legs", func() error {
			for _, leg := range t.RootLegs {
				if err := r.AddLine(leg.A, leg.B); err != nil {
					return err
				}
			}
			return nil
		}},
		{"tip arc", func() error { return r.AddArc(t.Tip.Start, t.Tip.Mid, t.Tip.End) }},
		{"root circle", func() error { return r.AddCircle(t.Root.Center, t.Root.Radius) }},
		{"extrude", func() error { return r.Extrude(res.Thickness) }},
		{"circular pattern", func() error { return r.CircularPattern(res.Count) }},
		{"name", func() error { return r.SetName(res.Name()) }},
	}
	for _, step := range steps {
		if err := step.fn(); err != nil {
			return fmt.Errorf("realizing %s: %w", step.name, err)
		}
	}
	return nil
}
