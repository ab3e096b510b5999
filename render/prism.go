package render

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/soypat/gear/internal/d2"
	"github.com/soypat/glgl/math/ms3"
	"gonum.org/v1/gonum/spatial/r2"
)

// Prism is a Renderer for a closed outline extruded from z=0 to z=height.
// The outline must be counter-clockwise and star shaped about the origin,
// which is true of gear outlines. Caps are triangle fans about the z axis
// and every outline edge becomes a wall quad split in two triangles.
type Prism struct {
	tris []ms3.Triangle
	next int
}

var _ Renderer = (*Prism)(nil) // Compile time check of interface implementation.

// NewPrism meshes outline extruded to height.
func NewPrism(outline []r2.Vec, height float64) (*Prism, error) {
	n := len(outline)
	if n < 3 {
		return nil, fmt.Errorf("outline needs at least 3 points, got %d", n)
	}
	if !(height > 0) || math.IsInf(height, 0) {
		return nil, fmt.Errorf("prism height must be positive, got %g", height)
	}
	var winding float64
	for i, p := range outline {
		if !d2.IsFinite(p) {
			return nil, fmt.Errorf("non-finite outline point %d", i)
		}
		q := outline[(i+1)%n]
		if r2.Cross(p, q) < -fanTol*r2.Norm(p)*r2.Norm(q) {
			return nil, errors.New("outline is not star shaped about the origin")
		}
		winding += math.Atan2(r2.Cross(p, q), r2.Dot(p, q))
	}
	if math.Abs(winding-2*math.Pi) > 1e-6 {
		return nil, fmt.Errorf("outline winds %g radians around the origin", winding)
	}

	h := float32(height)
	top := ms3.Vec{Z: h}
	var bottom ms3.Vec
	prism := &Prism{tris: make([]ms3.Triangle, 0, 4*n)}
	for i, p := range outline {
		q := outline[(i+1)%n]
		a0, b0 := vec(p, 0), vec(q, 0)
		ah, bh := vec(p, h), vec(q, h)
		// Fan triangles of radial edges are degenerate.
		if r2.Cross(p, q) > fanTol*r2.Norm(p)*r2.Norm(q) {
			prism.tris = append(prism.tris,
				ms3.Triangle{top, ah, bh},
				ms3.Triangle{bottom, b0, a0},
			)
		}
		prism.tris = append(prism.tris,
			ms3.Triangle{a0, b0, bh},
			ms3.Triangle{a0, bh, ah},
		)
	}
	return prism, nil
}

const fanTol = 1e-9

func vec(p r2.Vec, z float32) ms3.Vec {
	return ms3.Vec{X: float32(p.X), Y: float32(p.Y), Z: z}
}

// NumTriangles returns the total number of triangles in the mesh.
func (p *Prism) NumTriangles() int { return len(p.tris) }

// ReadTriangles implements Renderer.
func (p *Prism) ReadTriangles(dst []ms3.Triangle) (int, error) {
	if len(dst) == 0 {
		return 0, errors.New("cannot write to empty triangle slice")
	}
	n := copy(dst, p.tris[p.next:])
	p.next += n
	if p.next == len(p.tris) {
		return n, io.EOF
	}
	return n, nil
}

// Reset rewinds the renderer so the mesh can be read again.
func (p *Prism) Reset() { p.next = 0 }
