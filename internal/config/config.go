package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/soundphys/tumbler/internal/drum"
)

const (
	DefaultRPM           = 45.0
	DefaultDrumCm        = 30.0
	DefaultVanes         = 4
	DefaultVaneHeightPct = 15.0
	DefaultFrameRate     = 30
	DefaultRootNote      = 60 // middle C
)

// Config is the full session description: drum geometry, ball, forces, and
// the note mapping for the audio side.
type Config struct {
	RPM           float64      `yaml:"rpm"`
	DrumCm        float64      `yaml:"drum_cm"` // drum radius, centimeters
	Vanes         int          `yaml:"vanes"`
	VaneHeightPct float64      `yaml:"vane_height_pct"`
	Ball          string       `yaml:"ball"`
	Forces        ForcesConfig `yaml:"forces"`
	LintTrap      bool         `yaml:"lint_trap"`
	LintThreshold float64      `yaml:"lint_threshold"`
	SegmentOffset int          `yaml:"segment_offset"`
	Scale         string       `yaml:"scale"`
	RootNote      int          `yaml:"root_note"`
	FrameRate     int          `yaml:"frame_rate"`
}

type ForcesConfig struct {
	Gravity      string  `yaml:"gravity"` // earth | moon
	Centrifugal  bool    `yaml:"centrifugal"`
	Coriolis     bool    `yaml:"coriolis"`
	CoriolisSign float64 `yaml:"coriolis_sign"`
	AirDrag      bool    `yaml:"air_drag"`
	DragModel    string  `yaml:"drag_model"` // linear | quadratic
}

func DefaultConfig() *Config {
	return &Config{
		RPM:           DefaultRPM,
		DrumCm:        DefaultDrumCm,
		Vanes:         DefaultVanes,
		VaneHeightPct: DefaultVaneHeightPct,
		Ball:          "tennis",
		Forces: ForcesConfig{
			Gravity:      "earth",
			Centrifugal:  true,
			Coriolis:     true,
			CoriolisSign: 1,
			AirDrag:      true,
			DragModel:    "quadratic",
		},
		LintTrap:      true,
		LintThreshold: drum.DefaultLintThreshold,
		Scale:         "pentatonic",
		RootNote:      DefaultRootNote,
		FrameRate:     DefaultFrameRate,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Toggles translates the yaml force block into engine toggles.
func (c *Config) Toggles() (drum.ForceToggles, error) {
	t := drum.ForceToggles{
		Centrifugal:  c.Forces.Centrifugal,
		Coriolis:     c.Forces.Coriolis,
		CoriolisSign: c.Forces.CoriolisSign,
		AirDrag:      c.Forces.AirDrag,
	}
	switch c.Forces.Gravity {
	case "", "earth":
		t.Gravity = drum.GravityEarth
	case "moon":
		t.Gravity = drum.GravityMoon
	default:
		return t, fmt.Errorf("config: unknown gravity mode %q", c.Forces.Gravity)
	}
	switch c.Forces.DragModel {
	case "", "quadratic":
		t.Drag = drum.DragQuadratic
	case "linear":
		t.Drag = drum.DragLinear
	default:
		return t, fmt.Errorf("config: unknown drag model %q", c.Forces.DragModel)
	}
	if t.CoriolisSign == 0 {
		t.CoriolisSign = 1
	}
	return t, nil
}

// Apply pushes the whole config into a simulation atomically enough for a
// single-threaded host: any validation error aborts before the step loop
// ever sees the values.
func (c *Config) Apply(sim *drum.Simulation) error {
	if err := sim.SetParameters(c.RPM, c.DrumCm, c.Vanes, c.VaneHeightPct); err != nil {
		return err
	}
	if c.Ball != "" {
		if err := sim.ApplyBallPreset(c.Ball); err != nil {
			return err
		}
	}
	toggles, err := c.Toggles()
	if err != nil {
		return err
	}
	if err := sim.SetToggles(toggles); err != nil {
		return err
	}
	sim.SetLintTrap(c.LintTrap, c.LintThreshold)
	sim.SetSegmentOffset(c.SegmentOffset)
	return nil
}
