package gear

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSpec is returned when a gear specification or
	// configuration holds a value outside of its legal range.
	ErrInvalidSpec = errors.New("invalid gear specification")
	// ErrDomain is returned when the involute is sampled inside of
	// the base circle, where the curve does not exist.
	ErrDomain = errors.New("involute domain error")
)

// specErr describes the offending field of a specification.
type specErr struct {
	field string
	value float64
	rule  string
}

func (e *specErr) Error() string {
	return fmt.Sprintf("%s: %s=%g %s", ErrInvalidSpec, e.field, e.value, e.rule)
}

func (e *specErr) Unwrap() error { return ErrInvalidSpec }

// domainErr records the radii of a failed involute sample.
type domainErr struct {
	baseRadius float64
	radius     float64
}

func (e *domainErr) Error() string {
	return fmt.Sprintf("%s: radius %g inside base circle radius %g", ErrDomain, e.radius, e.baseRadius)
}

func (e *domainErr) Unwrap() error { return ErrDomain }
