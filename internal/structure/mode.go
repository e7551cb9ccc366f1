package structure

import (
	"errors"
	"fmt"

	"github.com/alexiusacademia/wingstruct/internal/kernel"
	"github.com/alexiusacademia/wingstruct/internal/limits"
	"github.com/go-playground/validator/v10"
)

// ParameterSet is the validated user configuration of one regeneration.
type ParameterSet struct {
	Mode Mode
}

// Mode is either Rib or Stiffener.
type Mode interface {
	isMode()
	Name() string
}

// Rib adds transverse ribs.
type Rib struct {
	Width  float64 `validate:"gt=0"`
	Flip   bool
	Layout RibLayout `validate:"-"`
}

// RibLayout is OnPlane or MultiRib.
type RibLayout interface {
	isRibLayout()
}

// OnPlane places one rib offset from a reference face.
type OnPlane struct {
	Face   kernel.Query `validate:"-"`
	Offset float64      `validate:"offset"`
}

// MultiRib spaces Count ribs evenly along the span. Count <= 0 adds none.
type MultiRib struct {
	Count int
}

// Stiffener adds one longitudinal member.
type Stiffener struct {
	Member Member `validate:"-"`
}

// Member is SparByPosition, SparByPlane or Stringer.
type Member interface {
	isMember()
}

// SparByPosition places a spar through two chordwise fractions measured
// from the leading edge at base and tip.
type SparByPosition struct {
	Width   float64     `validate:"gt=0"`
	BasePos float64     `validate:"posfrac"`
	TipPos  float64     `validate:"posfrac"`
	Section SparSection `validate:"-"`
}

// SparByPlane places a spar on one side of a reference face.
type SparByPlane struct {
	Face    kernel.Query `validate:"-"`
	Width   float64      `validate:"gt=0"`
	Flip    bool
	Section SparSection `validate:"-"`
}

// SparSection is SolidSpar, IBeam or Box.
type SparSection interface {
	isSparSection()
	Name() string
}

type SolidSpar struct{}

type IBeam struct {
	Wall float64 `validate:"wallthick"`
}

type Box struct {
	Wall         float64 `validate:"wallthick"`
	FilletRadius float64 `validate:"radius"`
}

// Stringer places a rod between two points given as horizontal (chordwise)
// and vertical fractions of the local chord.
type Stringer struct {
	OuterDiameter  float64         `validate:"gt=0"`
	BaseHorizontal float64         `validate:"posfrac"`
	TipHorizontal  float64         `validate:"posfrac"`
	BaseVertical   float64         `validate:"posfrac"`
	TipVertical    float64         `validate:"posfrac"`
	Section        StringerSection `validate:"-"`
}

// StringerSection is SolidRod or Tube.
type StringerSection interface {
	isStringerSection()
	Name() string
}

type SolidRod struct{}

type Tube struct {
	Wall float64 `validate:"gt=0"`
}

func (Rib) isMode()       {}
func (Stiffener) isMode() {}

func (OnPlane) isRibLayout()  {}
func (MultiRib) isRibLayout() {}

func (SparByPosition) isMember() {}
func (SparByPlane) isMember()    {}
func (Stringer) isMember()       {}

func (SolidSpar) isSparSection() {}
func (IBeam) isSparSection()     {}
func (Box) isSparSection()       {}

func (SolidRod) isStringerSection() {}
func (Tube) isStringerSection()     {}

func (r Rib) Name() string {
	switch r.Layout.(type) {
	case OnPlane:
		return "rib on plane"
	case MultiRib:
		return "multi-rib"
	}
	return "rib"
}

func (s Stiffener) Name() string {
	switch m := s.Member.(type) {
	case SparByPosition:
		return m.Section.Name() + " spar from position"
	case SparByPlane:
		return m.Section.Name() + " spar on plane"
	case Stringer:
		return m.Section.Name() + " stringer"
	}
	return "stiffener"
}

func (SolidSpar) Name() string { return "solid" }
func (IBeam) Name() string     { return "I-beam" }
func (Box) Name() string       { return "box" }
func (SolidRod) Name() string  { return "solid" }
func (Tube) Name() string      { return "tubular" }

var validate = limits.NewValidator()

// Validate checks every level of the mode tree. Tube walls that leave no
// bore fail with ErrInvalidWallThickness.
func (p ParameterSet) Validate() error {
	if p.Mode == nil {
		return failf(ErrInvalidParameters, nil, nil, "no mode selected")
	}
	parts := []any{p.Mode}
	switch m := p.Mode.(type) {
	case Rib:
		switch l := m.Layout.(type) {
		case OnPlane:
			if l.Face == nil {
				return failf(ErrInvalidParameters, nil, nil, "rib on plane needs a face")
			}
			parts = append(parts, l)
		case MultiRib:
			parts = append(parts, l)
		default:
			return failf(ErrInvalidParameters, nil, nil, "unknown rib layout %T", m.Layout)
		}
	case Stiffener:
		switch s := m.Member.(type) {
		case SparByPosition:
			if s.Section == nil {
				return failf(ErrInvalidParameters, nil, nil, "spar needs a section")
			}
			parts = append(parts, s, s.Section)
		case SparByPlane:
			if s.Face == nil || s.Section == nil {
				return failf(ErrInvalidParameters, nil, nil, "spar on plane needs a face and a section")
			}
			parts = append(parts, s, s.Section)
		case Stringer:
			if s.Section == nil {
				return failf(ErrInvalidParameters, nil, nil, "stringer needs a section")
			}
			parts = append(parts, s, s.Section)
			if t, ok := s.Section.(Tube); ok && !limits.TubeWallOK(s.OuterDiameter, t.Wall) {
				return failf(ErrInvalidWallThickness, nil, nil,
					"outer diameter %.4g m <= 2 x wall %.4g m", s.OuterDiameter, t.Wall)
			}
		default:
			return failf(ErrInvalidParameters, nil, nil, "unknown stiffener %T", m.Member)
		}
	default:
		return failf(ErrInvalidParameters, nil, nil, "unknown mode %T", p.Mode)
	}

	for _, part := range parts {
		if err := validate.Struct(part); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) && len(verrs) > 0 {
				fe := verrs[0]
				return failf(ErrInvalidParameters, nil, err, "%s.%s fails %q (value %v)",
					fe.StructNamespace(), fe.Field(), fe.Tag(), fe.Value())
			}
			return failf(ErrInvalidParameters, nil, err, "%T", part)
		}
	}
	return nil
}

func (p ParameterSet) String() string {
	if p.Mode == nil {
		return "<none>"
	}
	return fmt.Sprintf("%s %+v", p.Mode.Name(), p.Mode)
}
