package gear

import (
	"errors"
	"math"
	"reflect"
	"sync"
	"testing"
)

func TestGenerateDefaultGear(t *testing.T) {
	spec := Spec{
		DiametralPitch: 7.62,
		PressureAngle:  0.349066,
		Teeth:          24,
		Thickness:      2.0,
	}
	res, err := Generate(spec)
	if err != nil {
		t.Fatal(err)
	}
	const tol = 5e-4
	for _, test := range []struct {
		name      string
		got, want float64
	}{
		{"pitch diameter", res.Dims.PitchDiameter, 3.1496},
		{"dedendum", res.Dims.Dedendum, 0.1640},
		{"root diameter", res.Dims.RootDiameter, 2.8216},
		{"base diameter", res.Dims.BaseDiameter, 2.9598},
		{"outside diameter", res.Dims.OutsideDiameter, 3.4121},
	} {
		if math.Abs(test.got-test.want) > tol {
			t.Errorf("%s: got %.5f, want %.4f", test.name, test.got, test.want)
		}
	}
	if res.Count != 24 {
		t.Errorf("replication count got %d, want 24", res.Count)
	}
	if res.Thickness != 2.0 {
		t.Errorf("thickness got %g, want 2", res.Thickness)
	}
	if got := res.Name(); got != "Gear (3.15 pitch dia.)" {
		t.Errorf("got name %q", got)
	}
	if len(res.Tooth.Curve1) != DefaultInvolutePoints || len(res.Tooth.Curve2) != DefaultInvolutePoints {
		t.Errorf("expected %d points per flank, got %d and %d", DefaultInvolutePoints, len(res.Tooth.Curve1), len(res.Tooth.Curve2))
	}
}

func TestDefaultSpecMatchesDialog(t *testing.T) {
	s := DefaultSpec()
	if err := s.Validate(); err != nil {
		t.Fatal(err)
	}
	if s.DiametralPitch != 7.62 || s.Teeth != 24 || s.Thickness != 2 || !EqualFloat64(RtoD(s.PressureAngle), 20, 1e-12) {
		t.Errorf("unexpected defaults %+v", s)
	}
}

func TestPitchDiameter(t *testing.T) {
	for _, p := range []float64{0.5, 1, 2.54, 7.62, 12, 48} {
		for _, n := range []int{4, 9, 24, 57, 120} {
			d, err := ComputeDimensions(Spec{DiametralPitch: p, PressureAngle: DtoR(20), Teeth: n, Thickness: 1})
			if err != nil {
				t.Fatal(err)
			}
			want := float64(n) / p
			if !EqualFloat64(d.PitchDiameter, want, 1e-9) {
				t.Errorf("P=%g N=%d: pitch diameter got %g, want %g", p, n, d.PitchDiameter, want)
			}
			if !EqualFloat64(d.OutsideDiameter, float64(n+2)/p, 1e-9) {
				t.Errorf("P=%g N=%d: outside diameter got %g", p, n, d.OutsideDiameter)
			}
			if d.BaseDiameter > d.PitchDiameter {
				t.Errorf("P=%g N=%d: base diameter %g larger than pitch diameter %g", p, n, d.BaseDiameter, d.PitchDiameter)
			}
			if d.OutsideDiameter <= d.RootDiameter {
				t.Errorf("P=%g N=%d: outside diameter %g not larger than root %g", p, n, d.OutsideDiameter, d.RootDiameter)
			}
		}
	}
}

// The dedendum formula is chosen by comparing the diametral pitch
// against 20 degrees in radians (≈0.349). The comparison mixes units and
// this test pins both branches.
func TestDedendumComparesPitchAgainstAngle(t *testing.T) {
	for _, test := range []struct {
		pitch float64
		k     float64
	}{
		{pitch: 0.2, k: 1.157},
		{pitch: 0.349, k: 1.157},
		{pitch: 0.35, k: 1.25},
		{pitch: 7.62, k: 1.25},
	} {
		d, err := ComputeDimensions(Spec{DiametralPitch: test.pitch, PressureAngle: DtoR(20), Teeth: 24, Thickness: 1})
		if err != nil {
			t.Fatal(err)
		}
		want := test.k / test.pitch
		if d.Dedendum != want {
			t.Errorf("pitch %g: dedendum got %g, want %g (%g/P)", test.pitch, d.Dedendum, want, test.k)
		}
	}
}

func TestDimensionOrdering(t *testing.T) {
	for _, test := range []struct {
		teeth    int
		angle    float64 // degrees
		standard bool
		undercut bool
	}{
		{teeth: 12, angle: 20, standard: true},
		{teeth: 24, angle: 20, standard: true},
		{teeth: 40, angle: 20, standard: true},
		{teeth: 24, angle: 14.5, standard: true},
		// Base circle falls inside the root circle.
		{teeth: 60, angle: 20, undercut: true},
		{teeth: 24, angle: 30, undercut: true},
	} {
		spec := Spec{DiametralPitch: 7.62, PressureAngle: DtoR(test.angle), Teeth: test.teeth, Thickness: 1}
		res, err := Generate(spec)
		if err != nil {
			t.Fatalf("N=%d angle=%g: %s", test.teeth, test.angle, err)
		}
		if res.Dims.Standard() != test.standard {
			t.Errorf("N=%d angle=%g: got standard=%v, dims %+v", test.teeth, test.angle, res.Dims.Standard(), res.Dims)
		}
		if res.Dims.Undercut() != test.undercut {
			t.Errorf("N=%d angle=%g: got undercut=%v", test.teeth, test.angle, res.Dims.Undercut())
		}
		wantLegs := 2
		if test.undercut {
			wantLegs = 0
		}
		if len(res.Tooth.RootLegs) != wantLegs {
			t.Errorf("N=%d angle=%g: got %d root legs, want %d", test.teeth, test.angle, len(res.Tooth.RootLegs), wantLegs)
		}
	}
}

func TestInvalidSpec(t *testing.T) {
	valid := DefaultSpec()
	for _, test := range []struct {
		name   string
		modify func(*Spec)
	}{
		{"zero teeth", func(s *Spec) { s.Teeth = 0 }},
		{"too few teeth", func(s *Spec) { s.Teeth = MinTeeth - 1 }},
		{"negative teeth", func(s *Spec) { s.Teeth = -24 }},
		{"zero pitch", func(s *Spec) { s.DiametralPitch = 0 }},
		{"negative pitch", func(s *Spec) { s.DiametralPitch = -7.62 }},
		{"NaN pitch", func(s *Spec) { s.DiametralPitch = math.NaN() }},
		{"zero pressure angle", func(s *Spec) { s.PressureAngle = 0 }},
		{"right pressure angle", func(s *Spec) { s.PressureAngle = math.Pi / 2 }},
		{"zero thickness", func(s *Spec) { s.Thickness = 0 }},
		{"infinite thickness", func(s *Spec) { s.Thickness = math.Inf(1) }},
	} {
		spec := valid
		test.modify(&spec)
		res, err := Generate(spec)
		if !errors.Is(err, ErrInvalidSpec) {
			t.Errorf("%s: expected ErrInvalidSpec, got %v", test.name, err)
		}
		if errors.Is(err, ErrDomain) {
			t.Errorf("%s: invalid spec reached the involute sampler: %v", test.name, err)
		}
		if !reflect.DeepEqual(res, Result{}) {
			t.Errorf("%s: expected zero result on error", test.name)
		}
		if _, err := ComputeDimensions(spec); !errors.Is(err, ErrInvalidSpec) {
			t.Errorf("%s: ComputeDimensions expected ErrInvalidSpec, got %v", test.name, err)
		}
	}
}

func TestInvalidConfig(t *testing.T) {
	for _, n := range []int{-1, 0, 1} {
		_, err := Config{InvolutePoints: n}.Generate(DefaultSpec())
		if !errors.Is(err, ErrInvalidSpec) {
			t.Errorf("InvolutePoints=%d: expected ErrInvalidSpec, got %v", n, err)
		}
	}
	res, err := Config{InvolutePoints: 2}.Generate(DefaultSpec())
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Tooth.Curve1) != 2 {
		t.Errorf("expected 2 flank points, got %d", len(res.Tooth.Curve1))
	}
}

func TestGenerateIdempotent(t *testing.T) {
	spec := DefaultSpec()
	a, err := Generate(spec)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Generate(spec)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("two generations of the same spec differ")
	}
}

func TestGenerateConcurrent(t *testing.T) {
	want, err := Generate(DefaultSpec())
	if err != nil {
		t.Fatal(err)
	}
	var wg sync.WaitGroup
	results := make([]Result, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = Generate(DefaultSpec())
		}(i)
	}
	wg.Wait()
	for i, got := range results {
		if !reflect.DeepEqual(got, want) {
			t.Errorf("concurrent generation %d differs", i)
		}
	}
}
