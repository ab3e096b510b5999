// Package sdf describes gear solids as signed distance functions. It is the
// solid kernel used to answer containment queries on realized gears.
package sdf

import (
	"fmt"
	"math"
	"runtime/debug"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

const tolerance = 1e-9

// SDF2 is the interface to a 2d signed distance function object.
type SDF2 interface {
	// Evaluate takes a point in 2D space as input and returns
	// the minimum distance of the SDF2 to the point. The distance
	// is negative if the point is contained within the SDF2.
	Evaluate(p r2.Vec) float64
	// Bounds returns the bounding box that completely contains the SDF2.
	Bounds() r2.Box
}

// SDF3 is the interface to a 3d signed distance function object.
type SDF3 interface {
	// Evaluate takes a point in 3D space as input and returns
	// the minimum distance of the SDF3 to the point. The distance
	// is negative if the point is contained within the SDF3.
	Evaluate(p r3.Vec) float64
	// Bounds returns the bounding box that completely contains
	// the SDF3.
	Bounds() r3.Box
}

// MinFunc is a minimum functions for SDF blending.
type MinFunc func(a, b float64) float64

type shapeErr struct {
	panicObj interface{}
	stack    string
}

func (s *shapeErr) Error() string {
	return fmt.Sprintf("%s", s.panicObj)
}

// guard recovers a panicking constructor into err.
func guard(err *error) {
	if a := recover(); a != nil {
		*err = &shapeErr{
			panicObj: a,
			stack:    string(debug.Stack()),
		}
	}
}

// Polygon returns an SDF2 made from a closed set of line segments.
func Polygon(vertex []r2.Vec) (s SDF2, err error) {
	defer guard(&err)
	return MustPolygon(vertex), err
}

// Circle returns the SDF2 for a 2d circle.
func Circle(radius float64) (s SDF2, err error) {
	defer guard(&err)
	return MustCircle(radius), err
}

// RotateCopy2D rotates and copies an SDF2 n times in a full circle.
func RotateCopy2D(sdf SDF2, n int) (s SDF2, err error) {
	defer guard(&err)
	return MustRotateCopy2D(sdf, n), err
}

// Union2D returns the union of multiple SDF2 objects.
func Union2D(sdf ...SDF2) (s SDF2, err error) {
	defer guard(&err)
	return MustUnion2D(sdf...), err
}

// Extrude3D extrudes an SDF2 along z from 0 to height.
func Extrude3D(sdf SDF2, height float64) (s SDF3, err error) {
	defer guard(&err)
	return MustExtrude3D(sdf, height), err
}

func sawTooth(x, period float64) float64 {
	x += period / 2
	t := x / period
	return period*(t-math.Floor(t)) - period/2
}
