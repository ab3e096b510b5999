package gear

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Involute returns the point of the involute of the circle of radius
// baseRadius at distance radius from the circle center. The involute
// starts at (baseRadius, 0) and unwinds counter-clockwise.
// Radii inside the base circle fail with ErrDomain.
func Involute(baseRadius, radius float64) (r2.Vec, error) {
	if !isFinite(baseRadius) || baseRadius <= 0 || !isFinite(radius) || radius < baseRadius {
		return r2.Vec{}, &domainErr{baseRadius: baseRadius, radius: radius}
	}
	// length of the unwound string, tangent to the base circle.
	l := math.Sqrt(radius*radius - baseRadius*baseRadius)
	alpha := l / baseRadius
	theta := alpha - math.Acos(baseRadius/radius)
	sin, cos := math.Sincos(theta)
	return r2.Vec{X: radius * cos, Y: radius * sin}, nil
}

// sampleInvolute returns n points of the involute of baseRadius with
// radii stepped linearly from baseRadius to outsideRadius, both included.
func sampleInvolute(baseRadius, outsideRadius float64, n int) ([]r2.Vec, error) {
	step := (outsideRadius - baseRadius) / float64(n-1)
	points := make([]r2.Vec, n)
	for i := range points {
		r := baseRadius + float64(i)*step
		if i == n-1 {
			r = outsideRadius
		}
		p, err := Involute(baseRadius, r)
		if err != nil {
			return nil, err
		}
		points[i] = p
	}
	return points, nil
}
