package config

import (
	"sort"

	"github.com/san-kum/nlolab/internal/optics"
)

// Presets are crystals with indices at 1064 nm and 532 nm.
var Presets = map[string]*optics.Crystal{
	"default": {
		Name: "default", NoW: 1.4938, NeW: 1.4598, No2W: 1.5124, Ne2W: 1.4704,
		Length: 0.5e-2, C: optics.SpeedOfLight,
	},
	"kdp": {
		Name: "kdp", NoW: 1.4942, NeW: 1.4603, No2W: 1.5129, Ne2W: 1.4709,
		Length: 1e-2, C: optics.SpeedOfLight,
	},
	"bbo": {
		Name: "bbo", NoW: 1.6551, NeW: 1.5425, No2W: 1.6749, Ne2W: 1.5555,
		Length: 0.2e-2, C: optics.SpeedOfLight,
	},
	"long": {
		Name: "long", NoW: 1.4938, NeW: 1.4598, No2W: 1.5124, Ne2W: 1.4704,
		Length: 2.5e-2, C: optics.SpeedOfLight,
	},
}

func GetPreset(name string) *optics.Crystal {
	cr, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cr
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
