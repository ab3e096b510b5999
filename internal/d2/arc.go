package d2

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// ErrCollinear is returned when three points do not define a circle.
var ErrCollinear = errors.New("points are collinear")

// Circumcircle returns the center and radius of the circle through a, b and c.
func Circumcircle(a, b, c r2.Vec) (center r2.Vec, radius float64, err error) {
	ab := r2.Sub(b, a)
	ac := r2.Sub(c, a)
	d := 2 * r2.Cross(ab, ac)
	scale := math.Max(r2.Norm2(ab), r2.Norm2(ac))
	if scale == 0 || math.Abs(d) <= 1e-12*scale {
		return r2.Vec{}, 0, ErrCollinear
	}
	// center relative to a
	nab := r2.Norm2(ab)
	nac := r2.Norm2(ac)
	u := r2.Vec{
		X: (ac.Y*nab - ab.Y*nac) / d,
		Y: (ab.X*nac - ac.X*nab) / d,
	}
	return r2.Add(a, u), r2.Norm(u), nil
}

// ArcSweep returns the start angle and signed sweep of the circular arc
// centered at center that begins at start, passes through mid and ends at end.
// Positive sweep is counter-clockwise.
func ArcSweep(center, start, mid, end r2.Vec) (theta0, sweep float64) {
	theta0 = math.Atan2(start.Y-center.Y, start.X-center.X)
	tm := NormalizeAngle(math.Atan2(mid.Y-center.Y, mid.X-center.X) - theta0)
	te := NormalizeAngle(math.Atan2(end.Y-center.Y, end.X-center.X) - theta0)
	if tm <= te {
		return theta0, te
	}
	return theta0, te - 2*math.Pi
}
