package gear

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestInvoluteAtBaseCircle(t *testing.T) {
	for _, b := range []float64{1e-3, 0.1, 1, 1.479831, 100} {
		got, err := Involute(b, b)
		if err != nil {
			t.Fatal(err)
		}
		if got != (r2.Vec{X: b, Y: 0}) {
			t.Errorf("base radius %g: got %v, want (%g, 0)", b, got, b)
		}
	}
}

func TestInvoluteDomain(t *testing.T) {
	for _, test := range []struct {
		base, radius float64
	}{
		{1, 0.999},
		{1, 0},
		{1, -1},
		{2.9598 / 2, 2.8216 / 2},
		{0, 1},
		{-1, 1},
		{1, math.NaN()},
	} {
		got, err := Involute(test.base, test.radius)
		if !errors.Is(err, ErrDomain) {
			t.Errorf("Involute(%g, %g): expected ErrDomain, got %v", test.base, test.radius, err)
		}
		if math.IsNaN(got.X) || math.IsNaN(got.Y) {
			t.Errorf("Involute(%g, %g): returned NaN point", test.base, test.radius)
		}
	}
}

func TestInvoluteFunction(t *testing.T) {
	const b = 1.5
	for r := b; r < 3*b; r += 0.05 {
		p, err := Involute(b, r)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(r2.Norm(p)-r) > 1e-12 {
			t.Errorf("r=%g: point %v at distance %g", r, p, r2.Norm(p))
		}
		// polar angle of the involute is inv(φ) = tan(φ) - φ.
		phi := math.Acos(b / r)
		want := math.Tan(phi) - phi
		got := math.Atan2(p.Y, p.X)
		if math.Abs(got-want) > 1e-12 {
			t.Errorf("r=%g: angle got %g, want %g", r, got, want)
		}
	}
}

func TestInvoluteDeterministic(t *testing.T) {
	a, _ := Involute(1.479831, 1.6)
	b, _ := Involute(1.479831, 1.6)
	if math.Float64bits(a.X) != math.Float64bits(b.X) || math.Float64bits(a.Y) != math.Float64bits(b.Y) {
		t.Error("involute not bit-for-bit reproducible")
	}
}

func TestBuildToothInconsistentDimensions(t *testing.T) {
	spec := DefaultSpec()
	dims, err := ComputeDimensions(spec)
	if err != nil {
		t.Fatal(err)
	}
	dims.OutsideDiameter = dims.BaseDiameter * 0.9
	_, err = BuildTooth(dims, spec)
	if !errors.Is(err, ErrDomain) {
		t.Errorf("expected ErrDomain for outside diameter inside base circle, got %v", err)
	}
}
