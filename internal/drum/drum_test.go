package drum

import (
	"errors"
	"math"
	"testing"
)

func mustNew(t *testing.T, cfg DrumConfig) *Simulation {
	t.Helper()
	s, err := New(cfg)
	if err != nil {
		t.Fatalf("new simulation: %v", err)
	}
	return s
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  DrumConfig
	}{
		{"negative rpm", DrumConfig{RPM: -1, Radius: 0.3, VaneCount: 4, VaneHeight: 0.15}},
		{"nan rpm", DrumConfig{RPM: math.NaN(), Radius: 0.3, VaneCount: 4, VaneHeight: 0.15}},
		{"zero radius", DrumConfig{RPM: 45, Radius: 0, VaneCount: 4, VaneHeight: 0.15}},
		{"negative radius", DrumConfig{RPM: 45, Radius: -0.3, VaneCount: 4, VaneHeight: 0.15}},
		{"zero vanes", DrumConfig{RPM: 45, Radius: 0.3, VaneCount: 0, VaneHeight: 0.15}},
		{"vane height above one", DrumConfig{RPM: 45, Radius: 0.3, VaneCount: 4, VaneHeight: 1.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.cfg); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestSetParametersRejectKeepsPriorState(t *testing.T) {
	s := mustNew(t, DefaultDrumConfig())
	before := s.Config()

	if err := s.SetParameters(45, -10, 4, 15); err == nil {
		t.Fatal("expected error for negative radius")
	}
	if s.Config() != before {
		t.Errorf("config changed after rejected update: %+v", s.Config())
	}
}

func TestSetParametersConvertsUnits(t *testing.T) {
	s := mustNew(t, DefaultDrumConfig())

	if err := s.SetParameters(60, 40, 6, 20); err != nil {
		t.Fatalf("set parameters: %v", err)
	}
	cfg := s.Config()
	if math.Abs(cfg.Radius-0.40) > 1e-12 {
		t.Errorf("expected radius 0.40 m, got %g", cfg.Radius)
	}
	if math.Abs(cfg.VaneHeight-0.20) > 1e-12 {
		t.Errorf("expected vane height 0.20, got %g", cfg.VaneHeight)
	}
	want := 60 * 2 * math.Pi / 60
	if math.Abs(cfg.AngularVelocity()-want) > 1e-12 {
		t.Errorf("expected angular velocity %g, got %g", want, cfg.AngularVelocity())
	}
}

func TestBallPresets(t *testing.T) {
	s := mustNew(t, DefaultDrumConfig())

	if err := s.ApplyBallPreset("pingpong"); err != nil {
		t.Fatalf("apply preset: %v", err)
	}
	if got := s.Ball().Radius; got != 0.020 {
		t.Errorf("expected pingpong radius 0.020, got %g", got)
	}

	if err := s.ApplyBallPreset("bowling"); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestApplyBallPresetRejectsOversizedBall(t *testing.T) {
	// The sneaker (r = 0.110) cannot fit a 0.10 m drum; the preset must be
	// rejected at the mutation boundary, not left to embed in the wall.
	s := mustNew(t, DrumConfig{RPM: 45, Radius: 0.10, VaneCount: 4, VaneHeight: 0.15})
	before := s.Ball()

	if err := s.ApplyBallPreset("sneaker"); !errors.Is(err, ErrInvalidBall) {
		t.Fatalf("expected ErrInvalidBall for oversized preset, got %v", err)
	}
	if s.Ball() != before {
		t.Errorf("ball changed after rejected preset: %+v", s.Ball())
	}

	// The containment invariant holds because the old ball is intact.
	for i := 0; i < 300; i++ {
		s.Advance(1.0 / 60)
		b := s.Ball()
		if b.Position.Len()+b.Radius > s.Config().Radius+1e-6 {
			t.Fatalf("wall penetration at frame %d: |p|+r = %g", i, b.Position.Len()+b.Radius)
		}
	}
}

func TestNewRejectsDrumNarrowerThanDefaultBall(t *testing.T) {
	// A 3 cm drum cannot hold the default tennis ball (r = 0.035).
	if _, err := New(DrumConfig{RPM: 45, Radius: 0.03, VaneCount: 4, VaneHeight: 0.15}); !errors.Is(err, ErrInvalidBall) {
		t.Errorf("expected ErrInvalidBall, got %v", err)
	}
}

func TestSetBallProperty(t *testing.T) {
	s := mustNew(t, DefaultDrumConfig())

	if err := s.SetBallProperty("restitution", 0.5); err != nil {
		t.Fatalf("set restitution: %v", err)
	}
	if got := s.Ball().Restitution; got != 0.5 {
		t.Errorf("expected restitution 0.5, got %g", got)
	}

	// Partial update: other properties untouched.
	if got := s.Ball().Radius; got != BallPresets["tennis"].Radius {
		t.Errorf("radius changed by restitution update: %g", got)
	}

	tests := []struct {
		prop  string
		value float64
		want  error
	}{
		{"radius", -0.1, ErrInvalidBall},
		{"radius", 10.0, ErrInvalidBall}, // wider than drum
		{"mass", 0, ErrInvalidBall},
		{"restitution", 1.5, ErrInvalidBall},
		{"drag", -0.1, ErrInvalidBall},
		{"restitution", math.NaN(), ErrInvalidBall},
		{"spin", 1.0, ErrUnknownProperty},
	}
	for _, tt := range tests {
		if err := s.SetBallProperty(tt.prop, tt.value); !errors.Is(err, tt.want) {
			t.Errorf("%s=%g: expected %v, got %v", tt.prop, tt.value, tt.want, err)
		}
	}
}

func TestResetRestoresInitialPlacement(t *testing.T) {
	s := mustNew(t, DefaultDrumConfig())
	for i := 0; i < 100; i++ {
		s.Advance(1.0 / 60)
	}

	s.Reset()
	b := s.Ball()
	if b.Position.X() != 0.3*s.Config().Radius || b.Position.Y() != 0 {
		t.Errorf("expected ball at (0.3R, 0), got %v", b.Position)
	}
	if b.Velocity.Len() != 0 {
		t.Errorf("expected zero velocity, got %v", b.Velocity)
	}
	if s.Angle() != 0 {
		t.Errorf("expected zero drum angle, got %g", s.Angle())
	}
}
