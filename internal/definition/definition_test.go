package definition_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexiusacademia/wingstruct/internal/definition"
	"github.com/alexiusacademia/wingstruct/internal/limits"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadExamples(t *testing.T) {
	files, err := filepath.Glob("../../examples/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			d, err := definition.LoadFromFile(file)
			require.NoError(t, err)
			assert.NotEmpty(t, d.Name)
			assert.Greater(t, d.Wing.Span, 0.0)
		})
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := definition.LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestCompleteAppliesPresetAndDefaults(t *testing.T) {
	d, err := definition.Parse([]byte(`
name: defaults
wing:
  preset: p51-mustang
mode: stringer
`))
	require.NoError(t, err)

	p, ok := definition.LookupPreset("p51-mustang")
	require.True(t, ok)
	assert.Equal(t, p.Span, d.Wing.Span)
	assert.Equal(t, p.RootChord, d.Wing.RootChord)
	assert.Equal(t, p.TipChord, d.Wing.TipChord)
	assert.Equal(t, p.SweepDeg, d.Wing.SweepDeg)
	assert.Equal(t, 0.12, d.Wing.Thickness)

	require.NotNil(t, d.Stringer)
	assert.Equal(t, limits.LengthDefault, d.Stringer.OuterDiameter)
	assert.Equal(t, definition.SectionSolid, d.Stringer.Section)
	assert.Equal(t, limits.WallDefault, d.Stringer.Wall)
	assert.Nil(t, d.Rib)
	assert.Nil(t, d.Spar)
}

func TestModeDefaults(t *testing.T) {
	d := &definition.Definition{Wing: definition.Planform{Preset: "j22-orao"}, Mode: definition.ModeRibOnPlane}
	require.NoError(t, d.Complete())
	assert.Equal(t, 0.5, d.Rib.Station)
	assert.Equal(t, limits.LengthDefault, d.Rib.Width)

	d = &definition.Definition{Wing: definition.Planform{Preset: "j22-orao"}, Mode: definition.ModeRibMulti}
	require.NoError(t, d.Complete())
	assert.Equal(t, limits.CountDefault, d.Rib.Count)

	d = &definition.Definition{Wing: definition.Planform{Preset: "j22-orao"}, Mode: definition.ModeSparPlane}
	require.NoError(t, d.Complete())
	assert.Equal(t, definition.SectionSolid, d.Spar.Section)
	assert.NoError(t, d.Validate())
}

func TestExplicitValuesOverridePreset(t *testing.T) {
	d, err := definition.Parse([]byte(`
wing:
  preset: j22-orao
  span: 3
  sweep_deg: -5
mode: rib-multi
`))
	require.NoError(t, err)
	assert.Equal(t, 3.0, d.Wing.Span)
	assert.Equal(t, -5.0, d.Wing.SweepDeg)
	assert.Equal(t, 2.752, d.Wing.RootChord)
}

func TestUnknownPreset(t *testing.T) {
	_, err := definition.Parse([]byte("wing: {preset: spitfire}\nmode: rib-multi\n"))
	var verr *definition.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, err.Error(), `unknown preset "spitfire" (have j22-orao, p51-mustang)`)
}

func TestPresetNames(t *testing.T) {
	assert.Equal(t, []string{"j22-orao", "p51-mustang"}, definition.PresetNames())
	p, ok := definition.LookupPreset("j22-orao")
	require.True(t, ok)
	assert.InDelta(t, 4.631, p.Span, 1e-12)
}

func TestValidationMessages(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"missing mode", "wing: {preset: p51-mustang}", "mode is required"},
		{"unknown mode", "wing: {preset: p51-mustang}\nmode: wing",
			`mode must be one of [rib-onplane rib-multi spar-position spar-plane stringer], got "wing"`},
		{"no span", "wing: {root_chord: 2, tip_chord: 1}\nmode: rib-multi", "wing.span must satisfy gt=0, got 0"},
		{"steep sweep", "wing: {preset: p51-mustang, sweep_deg: 85}\nmode: rib-multi", "wing.sweep_deg must satisfy lt=80, got 85"},
		{"spar section", "wing: {preset: p51-mustang}\nmode: spar-position\nspar: {section: tee}",
			`spar.section must be one of [solid ibeam box], got "tee"`},
		{"spar position", "wing: {preset: p51-mustang}\nmode: spar-position\nspar: {base_pos: 1.5}",
			"spar.base_pos must be a fraction in [-1, 1], got 1.5"},
		{"spar wall", "wing: {preset: p51-mustang}\nmode: spar-plane\nspar: {section: box, wall: 0.0001}",
			"spar.wall must be in [0.0002, 1] m, got 0.0001"},
		{"rib station", "wing: {preset: p51-mustang}\nmode: rib-onplane\nrib: {station: 2}",
			"rib.station must satisfy lte=1, got 2"},
		{"rib offset", "wing: {preset: p51-mustang}\nmode: rib-onplane\nrib: {offset: 1500}",
			"rib.offset must be in [0, 1000] m, got 1500"},
		{"tube wall", "wing: {preset: p51-mustang}\nmode: stringer\nstringer: {outer_diameter: 0.01, section: tube, wall: 0.005}",
			"stringer.wall: tube walls (0.005 m) are larger than the total diameter (0.01 m)"},
		{"flat section", "wing:\n  preset: p51-mustang\n  section: [{x: 0, y: 0}, {x: 1, y: 0}, {x: 0.5, y: 0}]\nmode: rib-multi",
			"section has no area"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := definition.Parse([]byte(tt.yaml))
			var verr *definition.ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestOtherModeBlocksAreIgnored(t *testing.T) {
	_, err := definition.Parse([]byte(`
wing: {preset: p51-mustang}
mode: rib-multi
spar: {section: tee, base_pos: 9}
`))
	assert.NoError(t, err)
}

func TestMalformedYAML(t *testing.T) {
	_, err := definition.Parse([]byte("wing: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding definition")
}
