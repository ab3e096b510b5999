package sdf

import (
	"math"

	"github.com/soypat/gear/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
)

// polygon is an SDF2 made from a closed set of line segments.
type polygon struct {
	vertex []r2.Vec  // vertices
	vector []r2.Vec  // unit line vectors
	length []float64 // line lengths
	bb     r2.Box    // bounding box
}

// MustPolygon returns an SDF2 made from a closed set of line segments.
// It panics on fewer than 3 vertices or non-finite vertices.
func MustPolygon(vertex []r2.Vec) SDF2 {
	n := len(vertex)
	if n < 3 {
		panic("number of vertices < 3")
	}
	for _, v := range vertex {
		if !d2.IsFinite(v) {
			panic("non-finite polygon vertex")
		}
	}
	s := polygon{}
	// Close the loop (if necessary)
	s.vertex = append([]r2.Vec{}, vertex...)
	if !d2.EqualWithin(vertex[0], vertex[n-1], tolerance) {
		s.vertex = append(s.vertex, vertex[0])
	}
	// allocate pre-calculated line segment info
	nsegs := len(s.vertex) - 1
	s.vector = make([]r2.Vec, nsegs)
	s.length = make([]float64, nsegs)
	for i := 0; i < nsegs; i++ {
		l := r2.Sub(s.vertex[i+1], s.vertex[i])
		s.length[i] = r2.Norm(l)
		if s.length[i] > 0 {
			s.vector[i] = r2.Scale(1/s.length[i], l)
		}
	}
	set := d2.Set(s.vertex)
	s.bb = r2.Box{Min: set.Min(), Max: set.Max()}
	return &s
}

// Evaluate returns the minimum distance for a 2d polygon.
func (s *polygon) Evaluate(p r2.Vec) float64 {
	dd := math.MaxFloat64 // d^2 to polygon (>0)
	wn := 0               // winding number (inside/outside)

	// iterate over the line segments
	nsegs := len(s.vertex) - 1
	pb := r2.Sub(p, s.vertex[0])

	for i := 0; i < nsegs; i++ {
		a := s.vertex[i]
		b := s.vertex[i+1]

		pa := pb
		pb = r2.Sub(p, b)
		if s.length[i] == 0 {
			continue
		}

		t := r2.Dot(pa, s.vector[i])                                  // t-parameter of projection onto line
		dn := r2.Dot(pa, r2.Vec{X: s.vector[i].Y, Y: -s.vector[i].X}) // normal distance from p to line

		// Distance to line segment
		if t < 0 {
			dd = math.Min(dd, r2.Norm2(pa)) // distance to vertex[0] of line
		} else if t > s.length[i] {
			dd = math.Min(dd, r2.Norm2(pb)) // distance to vertex[1] of line
		} else {
			dd = math.Min(dd, dn*dn) // normal distance to line
		}

		// Is the point in the polygon?
		// See: http://geomalgorithms.com/a03-_inclusion.html
		if a.Y <= p.Y {
			if b.Y > p.Y && dn < 0 { // upward crossing, p left of segment
				wn++
			}
		} else if b.Y <= p.Y && dn > 0 { // downward crossing, p right of segment
			wn--
		}
	}

	d := math.Sqrt(dd)
	if wn != 0 {
		return -d
	}
	return d
}

// Bounds returns the bounding box of a 2d polygon.
func (s *polygon) Bounds() r2.Box {
	return s.bb
}

// circle is the 2d signed distance object for a circle.
type circle struct {
	radius float64
	bb     r2.Box
}

// MustCircle returns the SDF2 for a 2d circle centered at the origin.
func MustCircle(radius float64) SDF2 {
	if !(radius > 0) || math.IsInf(radius, 0) {
		panic("circle radius must be positive and finite")
	}
	d := d2.Elem(radius)
	return &circle{radius: radius, bb: r2.Box{Min: r2.Scale(-1, d), Max: d}}
}

// Evaluate returns the minimum distance to a 2d circle.
func (s *circle) Evaluate(p r2.Vec) float64 {
	return r2.Norm(p) - s.radius
}

// Bounds returns the bounding box of a 2d circle.
func (s *circle) Bounds() r2.Box {
	return s.bb
}

// rotateCopy2 copies an SDF2 n times in a full circle.
type rotateCopy2 struct {
	sdf   SDF2
	theta float64
	bb    r2.Box
}

// MustRotateCopy2D rotates and copies an SDF2 n times in a full circle.
// The copied SDF2 must lie within the sector of angle 2π/n centered on
// the positive x axis.
func MustRotateCopy2D(sdf SDF2, n int) SDF2 {
	if sdf == nil {
		panic("nil sdf argument")
	}
	if n <= 0 {
		panic("invalid number of steps")
	}
	s := rotateCopy2{}
	s.sdf = sdf
	s.theta = 2 * math.Pi / float64(n)
	// the bounding box vertex with the greatest distance from the origin bounds all copies.
	rmax := d2.Box(sdf.Bounds()).MaxRadius()
	max := d2.Elem(rmax)
	s.bb = r2.Box{Min: r2.Scale(-1, max), Max: max}
	return &s
}

// Evaluate returns the minimum distance to a rotate/copy SDF2.
func (s *rotateCopy2) Evaluate(p r2.Vec) float64 {
	// Map p to a point in the first copy sector.
	pnew := d2.PolarToXY(r2.Norm(p), sawTooth(math.Atan2(p.Y, p.X), s.theta))
	return s.sdf.Evaluate(pnew)
}

// Bounds returns the bounding box of a rotate/copy SDF2.
func (s *rotateCopy2) Bounds() r2.Box {
	return s.bb
}

// union2 is a union of multiple SDF2 objects.
type union2 struct {
	sdf []SDF2
	min MinFunc
	bb  r2.Box
}

// MustUnion2D returns the union of multiple SDF2 objects.
func MustUnion2D(sdf ...SDF2) SDF2 {
	if len(sdf) <= 1 {
		panic("union requires at least 2 sdfs")
	}
	s := union2{sdf: sdf, min: math.Min}
	for _, x := range s.sdf {
		if x == nil {
			panic("nil argument found")
		}
	}
	// work out the bounding box
	bb := d2.Box(s.sdf[0].Bounds())
	for _, x := range s.sdf[1:] {
		bb = bb.Extend(d2.Box(x.Bounds()))
	}
	s.bb = r2.Box(bb)
	return &s
}

// Evaluate returns the minimum distance to the SDF2 union.
func (s *union2) Evaluate(p r2.Vec) float64 {
	d := s.sdf[0].Evaluate(p)
	for _, x := range s.sdf[1:] {
		d = s.min(d, x.Evaluate(p))
	}
	return d
}

// Bounds returns the bounding box of an SDF2 union.
func (s *union2) Bounds() r2.Box {
	return s.bb
}
