package drum

import (
	"fmt"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	gravityEarth = 9.81
	gravityMoon  = 1.635

	airDensity     = 1.225 // kg/m³
	linearDragRate = 0.1

	// centerEpsilon guards unit-vector math when the ball sits on the
	// rotation axis.
	centerEpsilon = 1e-4

	debounceWindow       = 50 * time.Millisecond
	DefaultLintThreshold = 0.15 // m/s

	// Host-loop contract: frame deltas are clamped and split into equal
	// substeps so dt stays small at high rpm.
	maxFrameDelta    = 0.033
	substepsPerFrame = 4
)

// GravityMode selects the gravitational constant.
type GravityMode int

const (
	GravityEarth GravityMode = iota
	GravityMoon
)

func (m GravityMode) Accel() float64 {
	if m == GravityMoon {
		return gravityMoon
	}
	return gravityEarth
}

func (m GravityMode) String() string {
	if m == GravityMoon {
		return "moon"
	}
	return "earth"
}

// DragModel selects between multiplicative damping and quadratic air drag.
type DragModel int

const (
	DragLinear DragModel = iota
	DragQuadratic
)

func (m DragModel) String() string {
	if m == DragQuadratic {
		return "quadratic"
	}
	return "linear"
}

// ForceToggles is the process-wide force configuration. Changes take effect
// on the next Step.
type ForceToggles struct {
	Gravity     GravityMode
	Centrifugal bool
	Coriolis    bool
	// CoriolisSign is a design parameter (+1 or -1), not a physical
	// constant; it exists to match a chosen rendering convention.
	CoriolisSign float64
	AirDrag      bool
	Drag         DragModel
}

// DrumConfig is the drum geometry and spin rate. RPM zero means a static
// drum; everything else must be strictly valid or the update is rejected.
type DrumConfig struct {
	RPM        float64
	Radius     float64 // meters
	VaneCount  int
	VaneHeight float64 // fraction of radius, 0..1
}

// AngularVelocity converts RPM to rad/s.
func (c DrumConfig) AngularVelocity() float64 {
	return c.RPM * 2 * math.Pi / 60
}

func (c DrumConfig) validate() error {
	if math.IsNaN(c.RPM) || c.RPM < 0 {
		return fmt.Errorf("%w: rpm %v", ErrInvalidConfig, c.RPM)
	}
	if math.IsNaN(c.Radius) || c.Radius <= 0 {
		return fmt.Errorf("%w: radius %v", ErrInvalidConfig, c.Radius)
	}
	if c.VaneCount < 1 {
		return fmt.Errorf("%w: vane count %d", ErrInvalidConfig, c.VaneCount)
	}
	if math.IsNaN(c.VaneHeight) || c.VaneHeight < 0 || c.VaneHeight > 1 {
		return fmt.Errorf("%w: vane height %v", ErrInvalidConfig, c.VaneHeight)
	}
	return nil
}

// DefaultDrumConfig models a household dryer drum: 60 cm diameter, 4 vanes
// reaching 15% of the radius inward, 45 rpm.
func DefaultDrumConfig() DrumConfig {
	return DrumConfig{RPM: 45, Radius: 0.30, VaneCount: 4, VaneHeight: 0.15}
}

// Simulation owns all mutable state: drum geometry, ball kinematics, force
// toggles and the collision event machinery. Not safe for concurrent use.
type Simulation struct {
	cfg     DrumConfig
	toggles ForceToggles
	ball    Ball
	angle   float64 // drum rotation, radians, grows unbounded

	surfaces      []Surface
	generation    int
	segmentOffset int

	listeners     []Listener
	lastHit       string
	lastHitExpiry time.Time
	lintTrap      bool
	lintThreshold float64
	now           func() time.Time

	debug DebugInfo
}

// New builds a simulation with the given drum geometry, a tennis ball, and
// all fictitious forces enabled with the default force configuration.
func New(cfg DrumConfig) (*Simulation, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	s := &Simulation{
		cfg: cfg,
		toggles: ForceToggles{
			Gravity:      GravityEarth,
			Centrifugal:  true,
			Coriolis:     true,
			CoriolisSign: 1,
			AirDrag:      true,
			Drag:         DragQuadratic,
		},
		lintThreshold: DefaultLintThreshold,
		now:           time.Now,
	}
	if err := s.ApplyBallPreset("tennis"); err != nil {
		return nil, err
	}
	s.regenerateSurfaces()
	s.Reset()
	return s, nil
}

// SetParameters applies a drum parameter update atomically: cm converts to
// meters, percent to fraction. On success the surface set is regenerated
// and every previous surface ID is invalid. On error prior state is intact.
func (s *Simulation) SetParameters(rpm, drumRadiusCm float64, vaneCount int, vaneHeightPct float64) error {
	next := DrumConfig{
		RPM:        rpm,
		Radius:     drumRadiusCm / 100,
		VaneCount:  vaneCount,
		VaneHeight: vaneHeightPct / 100,
	}
	if err := next.validate(); err != nil {
		return err
	}
	if s.ball.Radius >= next.Radius {
		return fmt.Errorf("%w: drum radius %g does not fit ball radius %g", ErrInvalidConfig, next.Radius, s.ball.Radius)
	}
	s.cfg = next
	s.regenerateSurfaces()
	return nil
}

// SetToggles replaces the force configuration. CoriolisSign must be ±1.
func (s *Simulation) SetToggles(t ForceToggles) error {
	if t.CoriolisSign != 1 && t.CoriolisSign != -1 {
		return fmt.Errorf("%w: coriolis sign %v", ErrInvalidConfig, t.CoriolisSign)
	}
	s.toggles = t
	return nil
}

// SetLintTrap enables or disables the quiet-impact filter. A non-positive
// threshold keeps the current one.
func (s *Simulation) SetLintTrap(enabled bool, threshold float64) {
	s.lintTrap = enabled
	if threshold > 0 {
		s.lintThreshold = threshold
	}
}

// Reset returns the ball to its initial offset placement, zeroes velocity
// and drum angle, and clears the debounce slot.
func (s *Simulation) Reset() {
	s.ball.Position = mgl64.Vec2{0.3 * s.cfg.Radius, 0}
	s.ball.Velocity = mgl64.Vec2{}
	s.angle = 0
	s.ClearDebounce()
}

// Ball returns a copy of the current ball state.
func (s *Simulation) Ball() Ball { return s.ball }

// Config returns the current drum configuration.
func (s *Simulation) Config() DrumConfig { return s.cfg }

// Toggles returns the current force configuration.
func (s *Simulation) Toggles() ForceToggles { return s.toggles }

// Angle returns the accumulated drum rotation in radians (unwrapped).
func (s *Simulation) Angle() float64 { return s.angle }
