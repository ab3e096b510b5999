package gear

import (
	"fmt"
	"math"

	"github.com/soypat/gear/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
)

// Polar is a point in polar coordinates about the gear axis.
type Polar struct {
	R     float64 // distance to the gear axis
	Theta float64 // angle from the x axis in radians
}

// Point returns the cartesian coordinates of the polar point.
func (p Polar) Point() r2.Vec {
	return d2.PolarToXY(p.R, p.Theta)
}

// Arc is a circular arc through three points.
type Arc struct {
	Start, Mid, End r2.Vec
}

// Segment is a straight line between two points.
type Segment struct {
	A, B r2.Vec
}

// Circle is a circle on the sketch plane.
type Circle struct {
	Center r2.Vec
	Radius float64
}

// ToothProfile is the 2D outline of one gear tooth, centered on the positive x axis.
type ToothProfile struct {
	// Curve1 is the flank below the x axis, ordered from the
	// base circle outwards. Curve2 is its mirror image about the x axis.
	Curve1, Curve2 []r2.Vec
	// Polar forms of Curve1 and Curve2, used to replicate the
	// tooth about the gear axis without sampling the involute again.
	Polar1, Polar2 []Polar
	// Tip joins the outer ends of the flanks through the outside circle.
	Tip Arc
	// RootLegs hold two segments joining the root circle to the start of
	// Curve1 and Curve2 respectively. Empty for undercut gears, where the
	// flanks start inside the root circle.
	RootLegs []Segment
	// Root is the root circle, centered at the gear axis.
	Root Circle
	// PitchPointAngle is the angle of the unrotated involute where
	// it crosses the pitch circle.
	PitchPointAngle float64
	// Step is the angle between consecutive teeth (2π/teeth).
	Step float64
}

// BuildTooth computes the tooth profile of a gear with dimensions dims
// using DefaultConfig.
func BuildTooth(dims Dimensions, s Spec) (ToothProfile, error) {
	return DefaultConfig().BuildTooth(dims, s)
}

// BuildTooth computes the tooth profile of a gear with dimensions dims.
func (c Config) BuildTooth(dims Dimensions, s Spec) (ToothProfile, error) {
	if err := c.validate(); err != nil {
		return ToothProfile{}, err
	}
	if err := s.Validate(); err != nil {
		return ToothProfile{}, err
	}
	baseRadius := dims.BaseDiameter / 2
	outsideRadius := dims.OutsideDiameter / 2
	rootRadius := dims.RootDiameter / 2
	curve1, err := sampleInvolute(baseRadius, outsideRadius, c.InvolutePoints)
	if err != nil {
		return ToothProfile{}, err
	}
	pitchPoint, err := Involute(baseRadius, dims.PitchDiameter/2)
	if err != nil {
		return ToothProfile{}, err
	}
	var t ToothProfile
	t.PitchPointAngle = math.Atan2(pitchPoint.Y, pitchPoint.X)
	// Angle subtended by a tooth at the pitch circle, negated.
	toothThicknessAngle := -pi / float64(s.Teeth)
	t.Step = -2 * toothThicknessAngle

	// Place the pitch point half a tooth below the x axis.
	rotation := -t.PitchPointAngle + toothThicknessAngle/2
	t.Curve1 = d2.Set(curve1).Rotate(rotation)
	// Flanks that cross the bisector intersect before the outside circle.
	if tip := t.Curve1[len(t.Curve1)-1]; tip.Y >= 0 {
		return ToothProfile{}, &specErr{
			field: "PressureAngle",
			value: s.PressureAngle,
			rule:  fmt.Sprintf("with %d teeth: teeth are pointed before the outside circle", s.Teeth),
		}
	}
	t.Curve2 = make([]r2.Vec, len(t.Curve1))
	for i, p := range t.Curve1 {
		t.Curve2[i] = d2.MirrorX(p)
	}
	t.Polar1 = toPolar(t.Curve1)
	t.Polar2 = toPolar(t.Curve2)

	if dims.BaseDiameter >= dims.RootDiameter {
		t.RootLegs = []Segment{
			{A: d2.PolarToXY(rootRadius, t.Polar1[0].Theta), B: t.Curve1[0]},
			{A: d2.PolarToXY(rootRadius, t.Polar2[0].Theta), B: t.Curve2[0]},
		}
	}
	last := len(t.Curve1) - 1
	t.Tip = Arc{
		Start: t.Curve1[last],
		Mid:   r2.Vec{X: outsideRadius, Y: 0}, // tooth bisector.
		End:   t.Curve2[last],
	}
	t.Root = Circle{Radius: rootRadius}
	return t, nil
}

func toPolar(points []r2.Vec) []Polar {
	polar := make([]Polar, len(points))
	for i, p := range points {
		pol := d2.CartesianToPolar(p)
		polar[i] = Polar{R: pol.R, Theta: pol.Theta}
	}
	return polar
}

// Rotated returns the profile of tooth number k, that is the profile
// rotated k steps counter-clockwise about the gear axis. Flank points
// are derived from the polar records.
func (t ToothProfile) Rotated(k int) ToothProfile {
	angle := float64(k) * t.Step
	out := t
	out.Polar1 = rotatePolar(t.Polar1, angle)
	out.Polar2 = rotatePolar(t.Polar2, angle)
	out.Curve1 = fromPolar(out.Polar1)
	out.Curve2 = fromPolar(out.Polar2)
	out.Tip = Arc{
		Start: out.Curve1[len(out.Curve1)-1],
		Mid:   d2.Rotate(t.Tip.Mid, angle),
		End:   out.Curve2[len(out.Curve2)-1],
	}
	if len(t.RootLegs) > 0 {
		out.RootLegs = make([]Segment, len(t.RootLegs))
		for i, leg := range t.RootLegs {
			out.RootLegs[i] = Segment{A: d2.Rotate(leg.A, angle), B: d2.Rotate(leg.B, angle)}
		}
		out.RootLegs[0].B = out.Curve1[0]
		out.RootLegs[1].B = out.Curve2[0]
	}
	return out
}

func rotatePolar(polar []Polar, angle float64) []Polar {
	out := make([]Polar, len(polar))
	for i, p := range polar {
		out[i] = Polar{R: p.R, Theta: p.Theta + angle}
	}
	return out
}

func fromPolar(polar []Polar) []r2.Vec {
	out := make([]r2.Vec, len(polar))
	for i, p := range polar {
		out[i] = p.Point()
	}
	return out
}
