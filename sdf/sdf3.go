package sdf

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// extrude3 extrudes an SDF2 to an SDF3.
type extrude3 struct {
	sdf    SDF2
	height float64
	bb     r3.Box
}

// MustExtrude3D does a linear extrude of an SDF2 from z=0 to z=height.
func MustExtrude3D(sdf SDF2, height float64) SDF3 {
	if sdf == nil {
		panic("nil sdf argument")
	}
	if !(height > 0) || math.IsInf(height, 0) {
		panic("extrusion height must be positive and finite")
	}
	s := extrude3{sdf: sdf, height: height}
	bb := sdf.Bounds()
	s.bb = r3.Box{Min: r3.Vec{X: bb.Min.X, Y: bb.Min.Y, Z: 0}, Max: r3.Vec{X: bb.Max.X, Y: bb.Max.Y, Z: height}}
	return &s
}

// Evaluate returns the minimum distance to an extrusion.
func (s *extrude3) Evaluate(p r3.Vec) float64 {
	// sdf for the projected 2d surface
	a := s.sdf.Evaluate(r2.Vec{X: p.X, Y: p.Y})
	// sdf for the extrusion region: z = [0, height]
	b := math.Abs(p.Z-s.height/2) - s.height/2
	// return the intersection
	return math.Max(a, b)
}

// Bounds returns the bounding box for an extrusion.
func (s *extrude3) Bounds() r3.Box {
	return s.bb
}
