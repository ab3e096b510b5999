package sketch

import (
	"errors"
	"fmt"
	"math"

	"github.com/soypat/gear/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
)

const joinTol = 1e-9

// ToothOutline returns the closed counter-clockwise boundary of the sketched
// tooth. It starts and ends on the root circle. Splines are flattened with
// facets segments between fitted points and the tip arc with facets segments.
// Flanks that start inside the root circle are trimmed at the root circle.
func (sk *Sketch) ToothOutline(facets int) ([]r2.Vec, error) {
	if facets < 1 {
		return nil, fmt.Errorf("facets must be positive, got %d", facets)
	}
	if len(sk.Splines) != 2 || len(sk.Arcs) != 1 || len(sk.Circles) == 0 {
		return nil, fmt.Errorf("sketch is not a gear tooth: %d splines, %d arcs, %d circles",
			len(sk.Splines), len(sk.Arcs), len(sk.Circles))
	}
	if len(sk.Lines) != 0 && len(sk.Lines) != 2 {
		return nil, fmt.Errorf("gear tooth needs 0 or 2 root lines, got %d", len(sk.Lines))
	}
	root, err := sk.rootRadius()
	if err != nil {
		return nil, err
	}
	var flanks [2]d2.Set
	for i, spline := range sk.Splines {
		flank := flattenSpline(spline.Points, facets)
		for _, line := range sk.Lines {
			if d2.EqualWithin(line.B, flank[0], joinTol) {
				flank = append(d2.Set{line.A}, flank...)
				break
			}
		}
		flanks[i], err = trimToRadius(flank, root)
		if err != nil {
			return nil, fmt.Errorf("flank %d: %w", i+1, err)
		}
	}
	arc := sk.Arcs[0]
	end1, end2 := flanks[0][len(flanks[0])-1], flanks[1][len(flanks[1])-1]
	switch {
	case d2.EqualWithin(arc.Start, end1, joinTol) && d2.EqualWithin(arc.End, end2, joinTol):
	case d2.EqualWithin(arc.End, end1, joinTol) && d2.EqualWithin(arc.Start, end2, joinTol):
		arc.Start, arc.End = arc.End, arc.Start
	default:
		return nil, errors.New("tip arc does not join the flank ends")
	}
	tip, err := flattenArc(arc.Start, arc.Mid, arc.End, facets)
	if err != nil {
		return nil, err
	}
	outline := append(d2.Set{}, flanks[0]...)
	outline = append(outline, tip[1:len(tip)-1]...)
	outline = append(outline, flanks[1].Reverse()...)
	outline = dedupe(outline)
	if len(outline) < 3 {
		return nil, errors.New("degenerate tooth outline")
	}
	if outline.Area() < 0 {
		outline = outline.Reverse()
	}
	return outline, nil
}

// GearOutline returns the closed counter-clockwise boundary of the whole
// gear: the tooth outline patterned Count times about the origin, joined by
// arcs of the root circle of facets segments each.
func (sk *Sketch) GearOutline(facets int) ([]r2.Vec, error) {
	if sk.Count < 1 {
		return nil, errors.New("sketch has no circular pattern")
	}
	tooth, err := sk.ToothOutline(facets)
	if err != nil {
		return nil, err
	}
	root, _ := sk.rootRadius()
	step := 2 * math.Pi / float64(sk.Count)
	first := math.Atan2(tooth[0].Y, tooth[0].X)
	width := d2.NormalizeAngle(math.Atan2(tooth[len(tooth)-1].Y, tooth[len(tooth)-1].X) - first)
	gap := step - width
	if gap <= 0 {
		return nil, fmt.Errorf("%d teeth overlap at the root circle", sk.Count)
	}
	outline := make(d2.Set, 0, sk.Count*(len(tooth)+facets))
	for k := 0; k < sk.Count; k++ {
		angle := float64(k) * step
		outline = append(outline, d2.Set(tooth).Rotate(angle)...)
		gapStart := first + width + angle
		for j := 1; j < facets; j++ {
			outline = append(outline, d2.PolarToXY(root, gapStart+gap*float64(j)/float64(facets)))
		}
	}
	return dedupe(outline), nil
}

func (sk *Sketch) rootRadius() (float64, error) {
	c := sk.Circles[0]
	if c.Center != (r2.Vec{}) {
		return 0, fmt.Errorf("root circle centered at %v, not the gear axis", c.Center)
	}
	return c.Radius, nil
}

// flattenSpline samples a uniform Catmull-Rom spline through points.
func flattenSpline(points []r2.Vec, facets int) d2.Set {
	n := len(points)
	out := make(d2.Set, 0, (n-1)*facets+1)
	for i := 0; i < n-1; i++ {
		p0 := points[max(i-1, 0)]
		p1 := points[i]
		p2 := points[i+1]
		p3 := points[min(i+2, n-1)]
		for s := 0; s < facets; s++ {
			out = append(out, catmullRom(p0, p1, p2, p3, float64(s)/float64(facets)))
		}
	}
	return append(out, points[n-1])
}

func catmullRom(p0, p1, p2, p3 r2.Vec, t float64) r2.Vec {
	t2 := t * t
	t3 := t2 * t
	c0 := -0.5*t3 + t2 - 0.5*t
	c1 := 1.5*t3 - 2.5*t2 + 1
	c2 := -1.5*t3 + 2*t2 + 0.5*t
	c3 := 0.5*t3 - 0.5*t2
	return r2.Vec{
		X: c0*p0.X + c1*p1.X + c2*p2.X + c3*p3.X,
		Y: c0*p0.Y + c1*p1.Y + c2*p2.Y + c3*p3.Y,
	}
}

// flattenArc samples the arc through start, mid and end, both ends included.
func flattenArc(start, mid, end r2.Vec, facets int) (d2.Set, error) {
	center, radius, err := d2.Circumcircle(start, mid, end)
	if err != nil {
		return nil, err
	}
	theta0, sweep := d2.ArcSweep(center, start, mid, end)
	out := make(d2.Set, facets+1)
	out[0] = start
	for i := 1; i < facets; i++ {
		out[i] = r2.Add(center, d2.PolarToXY(radius, theta0+sweep*float64(i)/float64(facets)))
	}
	out[facets] = end
	return out, nil
}

// trimToRadius drops the leading points of flank that lie inside the
// circle of radius r, replacing them by the crossing point.
func trimToRadius(flank d2.Set, r float64) (d2.Set, error) {
	for j, p := range flank {
		rj := r2.Norm(p)
		if rj < r*(1-joinTol) {
			continue
		}
		if j == 0 {
			return flank, nil
		}
		prev := flank[j-1]
		rp := r2.Norm(prev)
		t := (r - rp) / (rj - rp)
		q := r2.Add(prev, r2.Scale(t, r2.Sub(p, prev)))
		q = r2.Scale(r/r2.Norm(q), q)
		return append(d2.Set{q}, flank[j:]...), nil
	}
	return nil, errors.New("flank lies inside the root circle")
}

// dedupe removes consecutive repeated points, closing point included.
func dedupe(points d2.Set) d2.Set {
	out := points[:0:0]
	for _, p := range points {
		if len(out) > 0 && d2.EqualWithin(out[len(out)-1], p, joinTol) {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && d2.EqualWithin(out[0], out[len(out)-1], joinTol) {
		out = out[:len(out)-1]
	}
	return out
}
