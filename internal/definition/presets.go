package definition

import "sort"

// Preset is a named planform of a real aircraft. Span is the half span.
type Preset struct {
	Aircraft  string
	Span      float64 // m
	RootChord float64 // m
	TipChord  float64 // m
	SweepDeg  float64
}

var presets = map[string]Preset{
	"p51-mustang": {
		Aircraft:  "P-51 Mustang",
		Span:      5.641, // 11.286 / 2
		RootChord: 2.752,
		TipChord:  1.297,
		SweepDeg:  10.388,
	},
	"j22-orao": {
		Aircraft:  "J-22 Orao",
		Span:      9.262 / 2,
		RootChord: 2.752,
		TipChord:  1.297,
		SweepDeg:  12.0,
	},
}

// LookupPreset returns the preset with the given key.
func LookupPreset(name string) (Preset, bool) {
	p, ok := presets[name]
	return p, ok
}

// PresetNames returns the preset keys in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
