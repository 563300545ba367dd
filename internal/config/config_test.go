package config

import (
	"path/filepath"
	"testing"

	"github.com/soundphys/tumbler/internal/drum"
)

func TestLoadSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")

	cfg := DefaultConfig()
	cfg.RPM = 75
	cfg.Vanes = 6
	cfg.Forces.Gravity = "moon"

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.RPM != 75 || loaded.Vanes != 6 {
		t.Errorf("unexpected values after round trip: %+v", loaded)
	}
	if loaded.Forces.Gravity != "moon" {
		t.Errorf("expected moon gravity, got %q", loaded.Forces.Gravity)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestTogglesTranslation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Forces.Gravity = "moon"
	cfg.Forces.DragModel = "linear"

	toggles, err := cfg.Toggles()
	if err != nil {
		t.Fatalf("toggles: %v", err)
	}
	if toggles.Gravity != drum.GravityMoon {
		t.Errorf("expected moon gravity mode")
	}
	if toggles.Drag != drum.DragLinear {
		t.Errorf("expected linear drag model")
	}

	cfg.Forces.Gravity = "mars"
	if _, err := cfg.Toggles(); err == nil {
		t.Error("expected error for unknown gravity mode")
	}
}

func TestApplyPushesIntoSimulation(t *testing.T) {
	sim, err := drum.New(drum.DefaultDrumConfig())
	if err != nil {
		t.Fatalf("new simulation: %v", err)
	}

	cfg := GetPreset("spin-cycle")
	if cfg == nil {
		t.Fatal("missing spin-cycle preset")
	}
	if err := cfg.Apply(sim); err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	if got := sim.Config().VaneCount; got != 6 {
		t.Errorf("expected 6 vanes, got %d", got)
	}
	if got := sim.Toggles().CoriolisSign; got != -1 {
		t.Errorf("expected coriolis sign -1, got %g", got)
	}
	if got := sim.Ball().Radius; got != drum.BallPresets["pingpong"].Radius {
		t.Errorf("expected pingpong ball, got radius %g", got)
	}
}

func TestApplyRejectsBadGeometry(t *testing.T) {
	sim, _ := drum.New(drum.DefaultDrumConfig())
	before := sim.Config()

	cfg := DefaultConfig()
	cfg.DrumCm = -5

	if err := cfg.Apply(sim); err == nil {
		t.Fatal("expected error for negative drum size")
	}
	if sim.Config() != before {
		t.Errorf("simulation config changed after rejected apply")
	}
}

func TestPresetsAreComplete(t *testing.T) {
	for _, name := range ListPresets() {
		cfg := GetPreset(name)
		if cfg == nil {
			t.Fatalf("preset %q vanished", name)
		}
		sim, err := drum.New(drum.DefaultDrumConfig())
		if err != nil {
			t.Fatalf("new simulation: %v", err)
		}
		if err := cfg.Apply(sim); err != nil {
			t.Errorf("preset %q does not apply cleanly: %v", name, err)
		}
	}
}
