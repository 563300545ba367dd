package drum

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// Ball is the single simulated body. Position and velocity are expressed in
// the rotating frame of the drum, in meters and m/s.
type Ball struct {
	Position    mgl64.Vec2
	Velocity    mgl64.Vec2
	Radius      float64
	Mass        float64
	Restitution float64
	DragCoeff   float64
}

// CrossSection returns the ball's cross-sectional area in m², used by the
// quadratic drag model.
func (b Ball) CrossSection() float64 {
	return math.Pi * b.Radius * b.Radius
}

// BallPreset bundles the physical properties of a named object that might
// tumble around a dryer.
type BallPreset struct {
	Radius      float64
	Mass        float64
	Restitution float64
	DragCoeff   float64
}

var BallPresets = map[string]BallPreset{
	"tennis":    {Radius: 0.035, Mass: 0.058, Restitution: 0.75, DragCoeff: 0.55},
	"pingpong":  {Radius: 0.020, Mass: 0.0027, Restitution: 0.88, DragCoeff: 0.40},
	"golf":      {Radius: 0.0214, Mass: 0.0459, Restitution: 0.80, DragCoeff: 0.30},
	"sneaker":   {Radius: 0.110, Mass: 0.420, Restitution: 0.25, DragCoeff: 0.90},
	"towelknot": {Radius: 0.080, Mass: 0.350, Restitution: 0.10, DragCoeff: 1.10},
}

// ListBallPresets returns preset names in stable order.
func ListBallPresets() []string {
	names := make([]string, 0, len(BallPresets))
	for name := range BallPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyBallPreset swaps the ball's physical properties atomically, keeping
// its current position and velocity.
func (s *Simulation) ApplyBallPreset(name string) error {
	p, ok := BallPresets[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	if p.Radius >= s.cfg.Radius {
		return fmt.Errorf("%w: preset %q radius %g does not fit drum radius %g", ErrInvalidBall, name, p.Radius, s.cfg.Radius)
	}
	s.ball.Radius = p.Radius
	s.ball.Mass = p.Mass
	s.ball.Restitution = p.Restitution
	s.ball.DragCoeff = p.DragCoeff
	return nil
}

// SetBallProperty updates a single ball property by name, leaving the rest
// unchanged. Known names: radius, mass, restitution, drag.
func (s *Simulation) SetBallProperty(name string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%w: %s=%v", ErrInvalidBall, name, value)
	}
	switch name {
	case "radius":
		if value <= 0 || value >= s.cfg.Radius {
			return fmt.Errorf("%w: radius %g outside (0, drum radius)", ErrInvalidBall, value)
		}
		s.ball.Radius = value
	case "mass":
		if value <= 0 {
			return fmt.Errorf("%w: mass %g must be positive", ErrInvalidBall, value)
		}
		s.ball.Mass = value
	case "restitution":
		if value < 0 || value > 1 {
			return fmt.Errorf("%w: restitution %g outside [0, 1]", ErrInvalidBall, value)
		}
		s.ball.Restitution = value
	case "drag":
		if value < 0 {
			return fmt.Errorf("%w: drag coefficient %g must be non-negative", ErrInvalidBall, value)
		}
		s.ball.DragCoeff = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownProperty, name)
	}
	return nil
}
