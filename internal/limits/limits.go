// Package limits holds the parameter bounds of the wing structure feature
// and registers them as validation rules.
package limits

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Parameter bounds. Lengths in metres, positions as fractions of chord.
const (
	// Chordwise and thickness positions
	PosMin     = -1.0
	PosMax     = 1.0
	PosDefault = 0.0

	// Spar and stringer walls, box fillet radius
	WallMin     = 0.0002
	WallMax     = 1.0
	WallDefault = 0.003

	// Rib offset from its reference face
	OffsetMin     = 0.0
	OffsetMax     = 1000.0
	OffsetDefault = 0.0

	// Rib and spar widths, stringer diameter
	LengthDefault = 0.025

	CountDefault = 2

	// SheetHeightRatio sizes construction planes against the base chord.
	SheetHeightRatio = 0.1

	// StringerOverrun extends each stringer end so the tool spans the wing.
	StringerOverrun = 1.0
)

func inRange(v, lo, hi float64) bool {
	return v >= lo && v <= hi
}

func positionOK(f float64) bool {
	return inRange(f, PosMin, PosMax)
}

// wallOK checks a wall thickness or fillet radius.
func wallOK(t float64) bool {
	return inRange(t, WallMin, WallMax)
}

func offsetOK(d float64) bool {
	return inRange(d, OffsetMin, OffsetMax)
}

// TubeWallOK reports whether a tube of the given outer diameter has a bore.
func TubeWallOK(outerDiameter, wall float64) bool {
	return outerDiameter > 2*wall
}

// RegisterValidations adds the "posfrac", "wallthick", "radius" and
// "offset" tags.
func RegisterValidations(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"posfrac": func(fl validator.FieldLevel) bool {
			return positionOK(fl.Field().Float())
		},
		"wallthick": func(fl validator.FieldLevel) bool {
			return wallOK(fl.Field().Float())
		},
		// radius allows zero to disable rounding
		"radius": func(fl validator.FieldLevel) bool {
			r := fl.Field().Float()
			return r == 0 || wallOK(r)
		},
		"offset": func(fl validator.FieldLevel) bool {
			return offsetOK(fl.Field().Float())
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("registering %q: %w", tag, err)
		}
	}
	return nil
}

// NewValidator returns a validator with the feature rules registered.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := RegisterValidations(v); err != nil {
		panic(err)
	}
	return v
}
