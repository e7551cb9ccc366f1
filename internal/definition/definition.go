// Package definition reads wing structure feature definitions from YAML:
// the wing planform, the structure mode and its parameters.
package definition

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/alexiusacademia/wingstruct/internal/limits"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Modes accepted in a definition file.
const (
	ModeRibOnPlane    = "rib-onplane"
	ModeRibMulti      = "rib-multi"
	ModeSparPosition  = "spar-position"
	ModeSparPlane     = "spar-plane"
	ModeStringer      = "stringer"
	SectionSolid      = "solid"
	SectionIBeam      = "ibeam"
	SectionBox        = "box"
	SectionTube       = "tube"
	defaultRibStation = 0.5
)

// Definition is one wing structure feature.
type Definition struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`

	Wing Planform `yaml:"wing"`
	Mode string   `yaml:"mode" validate:"required,oneof=rib-onplane rib-multi spar-position spar-plane stringer"`

	// Only the block of the selected mode is validated.
	Rib      *RibDef      `yaml:"rib,omitempty" validate:"-"`
	Spar     *SparDef     `yaml:"spar,omitempty" validate:"-"`
	Stringer *StringerDef `yaml:"stringer,omitempty" validate:"-"`
}

// Planform describes a straight tapered wing half. Span is measured from
// root to tip along the reference normal; sweep is the leading edge sweep.
type Planform struct {
	Preset    string  `yaml:"preset,omitempty"`
	Span      float64 `yaml:"span" validate:"gt=0"`
	RootChord float64 `yaml:"root_chord" validate:"gt=0"`
	TipChord  float64 `yaml:"tip_chord" validate:"gt=0"`
	SweepDeg  float64 `yaml:"sweep_deg" validate:"gt=-80,lt=80"`
	// Thickness scales Section to this depth-to-chord ratio.
	Thickness float64 `yaml:"thickness,omitempty" validate:"gt=0,lte=0.5"`
	Section   Profile `yaml:"section,omitempty"`
}

// RibDef holds rib parameters. Station places the reference face as a
// fraction of span for rib-onplane.
type RibDef struct {
	Width   float64 `yaml:"width" validate:"gt=0"`
	Flip    bool    `yaml:"flip,omitempty"`
	Offset  float64 `yaml:"offset,omitempty" validate:"offset"`
	Station float64 `yaml:"station,omitempty" validate:"gte=0,lte=1"`
	Count   int     `yaml:"count,omitempty" validate:"gte=0,lte=1000000000"`
}

// SparDef holds spar parameters. Station places the reference face as a
// chord fraction for spar-plane.
type SparDef struct {
	Width        float64 `yaml:"width" validate:"gt=0"`
	BasePos      float64 `yaml:"base_pos,omitempty" validate:"posfrac"`
	TipPos       float64 `yaml:"tip_pos,omitempty" validate:"posfrac"`
	Station      float64 `yaml:"station,omitempty" validate:"gte=0,lte=1"`
	Flip         bool    `yaml:"flip,omitempty"`
	Section      string  `yaml:"section,omitempty" validate:"oneof=solid ibeam box"`
	Wall         float64 `yaml:"wall,omitempty" validate:"wallthick"`
	FilletRadius float64 `yaml:"fillet_radius,omitempty" validate:"radius"`
}

// StringerDef holds stringer parameters.
type StringerDef struct {
	OuterDiameter  float64 `yaml:"outer_diameter" validate:"gt=0"`
	BaseHorizontal float64 `yaml:"base_horizontal,omitempty" validate:"posfrac"`
	TipHorizontal  float64 `yaml:"tip_horizontal,omitempty" validate:"posfrac"`
	BaseVertical   float64 `yaml:"base_vertical,omitempty" validate:"posfrac"`
	TipVertical    float64 `yaml:"tip_vertical,omitempty" validate:"posfrac"`
	Section        string  `yaml:"section,omitempty" validate:"oneof=solid tube"`
	Wall           float64 `yaml:"wall,omitempty" validate:"wallthick"`
}

// ValidationError represents a definition validation error
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

// LoadFromFile loads a definition from a YAML file
func LoadFromFile(filepath string) (*Definition, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes, completes and validates a YAML definition.
func Parse(data []byte) (*Definition, error) {
	var d Definition
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("decoding definition: %w", err)
	}
	if err := d.Complete(); err != nil {
		return nil, err
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Complete resolves the preset and fills unset parameters with defaults.
func (d *Definition) Complete() error {
	if d.Wing.Preset != "" {
		p, ok := LookupPreset(d.Wing.Preset)
		if !ok {
			return &ValidationError{fmt.Sprintf("unknown preset %q (have %s)", d.Wing.Preset, strings.Join(PresetNames(), ", "))}
		}
		// Explicit values override the preset.
		if d.Wing.Span == 0 {
			d.Wing.Span = p.Span
		}
		if d.Wing.RootChord == 0 {
			d.Wing.RootChord = p.RootChord
		}
		if d.Wing.TipChord == 0 {
			d.Wing.TipChord = p.TipChord
		}
		if d.Wing.SweepDeg == 0 {
			d.Wing.SweepDeg = p.SweepDeg
		}
	}
	if d.Wing.Thickness == 0 {
		d.Wing.Thickness = defaultThickness
	}

	switch d.Mode {
	case ModeRibOnPlane, ModeRibMulti:
		if d.Rib == nil {
			d.Rib = &RibDef{}
		}
		if d.Rib.Width == 0 {
			d.Rib.Width = limits.LengthDefault
		}
		if d.Mode == ModeRibOnPlane && d.Rib.Station == 0 {
			d.Rib.Station = defaultRibStation
		}
		if d.Mode == ModeRibMulti && d.Rib.Count == 0 {
			d.Rib.Count = limits.CountDefault
		}
	case ModeSparPosition, ModeSparPlane:
		if d.Spar == nil {
			d.Spar = &SparDef{}
		}
		if d.Spar.Width == 0 {
			d.Spar.Width = limits.LengthDefault
		}
		if d.Spar.Section == "" {
			d.Spar.Section = SectionSolid
		}
		if d.Spar.Wall == 0 {
			d.Spar.Wall = limits.WallDefault
		}
	case ModeStringer:
		if d.Stringer == nil {
			d.Stringer = &StringerDef{}
		}
		if d.Stringer.OuterDiameter == 0 {
			d.Stringer.OuterDiameter = limits.LengthDefault
		}
		if d.Stringer.Section == "" {
			d.Stringer.Section = SectionSolid
		}
		if d.Stringer.Wall == 0 {
			d.Stringer.Wall = limits.WallDefault
		}
	}
	return nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := limits.NewValidator()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the definition. Parameter blocks of other modes are
// ignored.
func (d *Definition) Validate() error {
	if err := check("", d); err != nil {
		return err
	}
	if err := d.Wing.Section.validateIfSet(); err != nil {
		return err
	}

	switch d.Mode {
	case ModeRibOnPlane, ModeRibMulti:
		if d.Rib == nil {
			return &ValidationError{"mode " + d.Mode + " needs a rib block"}
		}
		return check("rib", d.Rib)
	case ModeSparPosition, ModeSparPlane:
		if d.Spar == nil {
			return &ValidationError{"mode " + d.Mode + " needs a spar block"}
		}
		return check("spar", d.Spar)
	case ModeStringer:
		if d.Stringer == nil {
			return &ValidationError{"mode stringer needs a stringer block"}
		}
		if err := check("stringer", d.Stringer); err != nil {
			return err
		}
		if d.Stringer.Section == SectionTube && !limits.TubeWallOK(d.Stringer.OuterDiameter, d.Stringer.Wall) {
			return &ValidationError{fmt.Sprintf("stringer.wall: tube walls (%g m) are larger than the total diameter (%g m)",
				d.Stringer.Wall, d.Stringer.OuterDiameter)}
		}
	}
	return nil
}

func (p Profile) validateIfSet() error {
	if len(p) == 0 {
		return nil
	}
	return p.Validate()
}

// check validates s and reports its fields under prefix.
func check(prefix string, s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(prefix, fe))
	}
	sort.Strings(msgs)
	return &ValidationError{strings.Join(msgs, "; ")}
}

func fieldMessage(prefix string, fe validator.FieldError) string {
	field := fe.Namespace()
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}
	if prefix != "" {
		field = prefix + "." + field
	}
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", field, fe.Param(), fe.Value())
	case "posfrac":
		return fmt.Sprintf("%s must be a fraction in [%g, %g], got %v", field, limits.PosMin, limits.PosMax, fe.Value())
	case "wallthick":
		return fmt.Sprintf("%s must be in [%g, %g] m, got %v", field, limits.WallMin, limits.WallMax, fe.Value())
	case "offset":
		return fmt.Sprintf("%s must be in [%g, %g] m, got %v", field, limits.OffsetMin, limits.OffsetMax, fe.Value())
	case "radius":
		return fmt.Sprintf("%s must be 0 or in [%g, %g] m, got %v", field, limits.WallMin, limits.WallMax, fe.Value())
	}
	return fmt.Sprintf("%s must satisfy %s=%s, got %v", field, fe.Tag(), fe.Param(), fe.Value())
}
