// Package gear computes the 2D profile of an involute spur gear tooth from
// its diametral pitch, pressure angle, tooth count and thickness.
//
// The generated [ToothProfile] describes a single tooth: two mirrored
// involute flanks, a tip arc, optional radial legs down to the root
// circle and the root circle itself. Replicating the tooth [Result.Count]
// times about the gear axis and extruding by [Result.Thickness] yields the
// gear. A [Realizer] receives that description and builds the solid.
//
// Every function in this package is pure. Concurrent generation
// requests need no coordination.
package gear

import (
	"log/slog"
)

// MinTeeth is the smallest tooth count a Spec may hold.
const MinTeeth = 4

// Default values of the spur gear dialog. Lengths in centimetres.
const (
	DefaultDiametralPitch = 7.62
	DefaultPressureAngle  = 20 * pi / 180
	DefaultTeeth          = 24
	DefaultThickness      = 2.0
)

// DefaultInvolutePoints is the number of samples taken along each flank.
const DefaultInvolutePoints = 10

// Spec is the set of parameters that define a spur gear.
// Lengths may be in any unit as long as they are consistent.
type Spec struct {
	// DiametralPitch is the number of teeth per unit of pitch diameter.
	DiametralPitch float64
	// PressureAngle in radians, within (0, π/2).
	PressureAngle float64
	// Teeth is the number of teeth, at least MinTeeth.
	Teeth int
	// Thickness is the extrusion distance of the gear.
	Thickness float64
}

// DefaultSpec returns the spur gear dialog defaults: 7.62 teeth/cm,
// 20° pressure angle, 24 teeth and 2cm thick.
func DefaultSpec() Spec {
	return Spec{
		DiametralPitch: DefaultDiametralPitch,
		PressureAngle:  DefaultPressureAngle,
		Teeth:          DefaultTeeth,
		Thickness:      DefaultThickness,
	}
}

// Validate returns an error wrapping ErrInvalidSpec for the first
// field found outside of its legal range.
func (s Spec) Validate() error {
	switch {
	case !isFinite(s.DiametralPitch) || s.DiametralPitch <= 0:
		return &specErr{field: "DiametralPitch", value: s.DiametralPitch, rule: "must be positive"}
	case s.Teeth < MinTeeth:
		return &specErr{field: "Teeth", value: float64(s.Teeth), rule: "must be at least 4"}
	case !isFinite(s.PressureAngle) || s.PressureAngle <= 0 || s.PressureAngle >= pi/2:
		return &specErr{field: "PressureAngle", value: s.PressureAngle, rule: "must be within (0, π/2) radians"}
	case !isFinite(s.Thickness) || s.Thickness <= 0:
		return &specErr{field: "Thickness", value: s.Thickness, rule: "must be positive"}
	}
	return nil
}

// Config controls profile sampling.
type Config struct {
	// InvolutePoints is the number of points sampled along each flank,
	// base circle and outside circle included. Must be at least 2.
	InvolutePoints int
}

// DefaultConfig returns the sampling configuration used by Generate.
func DefaultConfig() Config {
	return Config{InvolutePoints: DefaultInvolutePoints}
}

func (c Config) validate() error {
	if c.InvolutePoints < 2 {
		return &specErr{field: "InvolutePoints", value: float64(c.InvolutePoints), rule: "must be at least 2"}
	}
	return nil
}

// Result is everything needed to realize a gear: the profile of one
// tooth, how many times to replicate it about the gear axis and how
// far to extrude it.
type Result struct {
	Tooth     ToothProfile
	Dims      Dimensions
	Count     int
	Thickness float64
}

// Generate computes the gear described by s using DefaultConfig.
func Generate(s Spec) (Result, error) {
	return DefaultConfig().Generate(s)
}

// Generate computes the gear described by s. Errors wrap ErrInvalidSpec
// or ErrDomain and no partial result is returned.
func (c Config) Generate(s Spec) (Result, error) {
	if err := c.validate(); err != nil {
		return Result{}, err
	}
	dims, err := ComputeDimensions(s)
	if err != nil {
		return Result{}, err
	}
	tooth, err := c.BuildTooth(dims, s)
	if err != nil {
		return Result{}, err
	}
	Logger().Debug("gear generated",
		slog.Int("teeth", s.Teeth),
		slog.Float64("pitchDiameter", dims.PitchDiameter),
		slog.Bool("rootLegs", len(tooth.RootLegs) > 0),
	)
	return Result{
		Tooth:     tooth,
		Dims:      dims,
		Count:     s.Teeth,
		Thickness: s.Thickness,
	}, nil
}

// Name returns the human readable name of the gear body.
func (r Result) Name() string {
	return BodyName(r.Dims.PitchDiameter)
}

// BodyName returns the name given to a gear solid with the argument
// pitch diameter, i.e: "Gear (3.15 pitch dia.)".
func BodyName(pitchDiameter float64) string {
	return "Gear (" + formatRound2(pitchDiameter) + " pitch dia.)"
}
