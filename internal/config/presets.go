package config

import "sort"

// Presets are ready-made sessions tuned for audible variety, not physical
// accuracy.
var Presets = map[string]*Config{
	"kitchen-dryer": {
		RPM: 50, DrumCm: 30, Vanes: 3, VaneHeightPct: 12,
		Ball: "tennis",
		Forces: ForcesConfig{
			Gravity: "earth", Centrifugal: true, Coriolis: true,
			CoriolisSign: 1, AirDrag: true, DragModel: "quadratic",
		},
		LintTrap: true, LintThreshold: 0.15,
		Scale: "pentatonic", RootNote: 60, FrameRate: 30,
	},
	"moon-laundry": {
		RPM: 18, DrumCm: 40, Vanes: 4, VaneHeightPct: 20,
		Ball: "sneaker",
		Forces: ForcesConfig{
			Gravity: "moon", Centrifugal: true, Coriolis: true,
			CoriolisSign: 1, AirDrag: false, DragModel: "quadratic",
		},
		LintTrap: true, LintThreshold: 0.10,
		Scale: "minor", RootNote: 48, FrameRate: 30,
	},
	"spin-cycle": {
		RPM: 120, DrumCm: 25, Vanes: 6, VaneHeightPct: 10,
		Ball: "pingpong",
		Forces: ForcesConfig{
			Gravity: "earth", Centrifugal: true, Coriolis: true,
			CoriolisSign: -1, AirDrag: true, DragModel: "linear",
		},
		LintTrap: true, LintThreshold: 0.25,
		Scale: "chromatic", RootNote: 72, FrameRate: 30,
	},
	"golf-barrel": {
		RPM: 35, DrumCm: 50, Vanes: 8, VaneHeightPct: 18,
		Ball: "golf",
		Forces: ForcesConfig{
			Gravity: "earth", Centrifugal: true, Coriolis: false,
			CoriolisSign: 1, AirDrag: true, DragModel: "quadratic",
		},
		LintTrap: false,
		Scale:    "major", RootNote: 55, FrameRate: 30,
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	out := *cfg
	return &out
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
