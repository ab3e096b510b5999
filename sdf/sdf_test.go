package sdf

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestPolygonSquare(t *testing.T) {
	square, err := Polygon([]r2.Vec{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}})
	if err != nil {
		t.Fatal(err)
	}
	for _, test := range []struct {
		p    r2.Vec
		want float64
	}{
		{r2.Vec{}, -1},
		{r2.Vec{X: 0.5}, -0.5},
		{r2.Vec{X: 2}, 1},
		{r2.Vec{X: 2, Y: 2}, math.Sqrt2},
		{r2.Vec{Y: -1}, 0},
	} {
		if got := square.Evaluate(test.p); math.Abs(got-test.want) > 1e-12 {
			t.Errorf("Evaluate(%v) got %g, want %g", test.p, got, test.want)
		}
	}
	bb := square.Bounds()
	if bb.Min != (r2.Vec{X: -1, Y: -1}) || bb.Max != (r2.Vec{X: 1, Y: 1}) {
		t.Errorf("unexpected bounds %+v", bb)
	}
}

func TestPolygonRepeatedVertex(t *testing.T) {
	tri, err := Polygon([]r2.Vec{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 0}, {X: 0, Y: 2}})
	if err != nil {
		t.Fatal(err)
	}
	// Far from every vertex and edge, repeated vertex must not collapse the distance.
	if got := tri.Evaluate(r2.Vec{X: 2, Y: 3}); got < 1 {
		t.Errorf("got distance %g", got)
	}
}

func TestConstructorErrors(t *testing.T) {
	if _, err := Polygon([]r2.Vec{{}, {X: 1}}); err == nil {
		t.Error("expected error for 2 vertex polygon")
	}
	if _, err := Polygon([]r2.Vec{{}, {X: 1}, {Y: math.NaN()}}); err == nil {
		t.Error("expected error for NaN vertex")
	}
	if _, err := Circle(0); err == nil {
		t.Error("expected error for zero radius circle")
	}
	c, _ := Circle(1)
	if _, err := Union2D(c); err == nil {
		t.Error("expected error for single sdf union")
	}
	if _, err := RotateCopy2D(c, 0); err == nil {
		t.Error("expected error for zero copies")
	}
	if _, err := Extrude3D(c, -1); err == nil {
		t.Error("expected error for negative height")
	}
	if _, err := Extrude3D(nil, 1); err == nil {
		t.Error("expected error for nil sdf")
	}
}

func TestRotateCopy(t *testing.T) {
	// small square centered on the positive x axis.
	sq, err := Polygon([]r2.Vec{{X: 2, Y: -0.1}, {X: 2.2, Y: -0.1}, {X: 2.2, Y: 0.1}, {X: 2, Y: 0.1}})
	if err != nil {
		t.Fatal(err)
	}
	const n = 6
	copies, err := RotateCopy2D(sq, n)
	if err != nil {
		t.Fatal(err)
	}
	for k := 0; k < n; k++ {
		theta := 2 * math.Pi * float64(k) / n
		p := r2.Vec{X: 2.1 * math.Cos(theta), Y: 2.1 * math.Sin(theta)}
		if d := copies.Evaluate(p); d >= 0 {
			t.Errorf("copy %d: center %v not inside, d=%g", k, p, d)
		}
		between := r2.Vec{X: 2.1 * math.Cos(theta+math.Pi/n), Y: 2.1 * math.Sin(theta+math.Pi/n)}
		if d := copies.Evaluate(between); d <= 0 {
			t.Errorf("copy %d: gap %v inside, d=%g", k, between, d)
		}
	}
	bb := copies.Bounds()
	if bb.Max.X < 2.2 || bb.Min.Y > -2.2 {
		t.Errorf("bounds %+v do not contain copies", bb)
	}
}

func TestExtrudeUnion(t *testing.T) {
	disk, _ := Circle(1)
	bump, _ := Circle(0.5)
	u, err := Union2D(disk, bump)
	if err != nil {
		t.Fatal(err)
	}
	solid, err := Extrude3D(u, 2)
	if err != nil {
		t.Fatal(err)
	}
	for _, test := range []struct {
		p      r3.Vec
		inside bool
	}{
		{r3.Vec{Z: 1}, true},
		{r3.Vec{X: 0.9, Z: 0.1}, true},
		{r3.Vec{Z: -0.1}, false},
		{r3.Vec{Z: 2.1}, false},
		{r3.Vec{X: 1.1, Z: 1}, false},
	} {
		d := solid.Evaluate(test.p)
		if (d < 0) != test.inside {
			t.Errorf("Evaluate(%v)=%g, want inside=%v", test.p, d, test.inside)
		}
	}
	bb := solid.Bounds()
	if bb.Min.Z != 0 || bb.Max.Z != 2 || bb.Max.X != 1 {
		t.Errorf("unexpected bounds %+v", bb)
	}
}
