package drum

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Advance steps the simulation through one rendered frame. The wall-clock
// delta is clamped to avoid a huge jump after a pause, then subdivided into
// equal substeps for stability at high rotation speed.
func (s *Simulation) Advance(frameDt float64) {
	if frameDt <= 0 {
		return
	}
	frameDt = math.Min(frameDt, maxFrameDelta)
	dt := frameDt / substepsPerFrame
	for i := 0; i < substepsPerFrame; i++ {
		s.Step(dt)
	}
}

// Step advances ball kinematics and drum rotation by dt seconds in the
// rotating frame, then resolves collisions. dt must be a small positive
// substep; Advance handles the subdivision.
func (s *Simulation) Step(dt float64) {
	w := s.cfg.AngularVelocity()
	s.angle += w * dt

	// Gravity is fixed in the world but the frame rotates under it.
	g := s.toggles.Gravity.Accel()
	acc := mgl64.Vec2{-g * math.Sin(s.angle), -g * math.Cos(s.angle)}

	dbg := DebugInfo{
		DrumAngle:  s.angle,
		GravityMag: g,
	}

	r := s.ball.Position.Len()
	dbg.RadialDistance = r

	if s.toggles.Centrifugal && r > centerEpsilon {
		// ω²·r radially outward through the ball's position.
		acc = acc.Add(s.ball.Position.Mul(w * w))
		dbg.CentrifugalMag = w * w * r
	}

	if s.toggles.Coriolis {
		k := s.toggles.CoriolisSign * 2 * w
		acc = acc.Add(mgl64.Vec2{k * s.ball.Velocity.Y(), -k * s.ball.Velocity.X()})
		dbg.CoriolisMag = math.Abs(k) * s.ball.Velocity.Len()
	}

	if s.toggles.AirDrag {
		switch s.toggles.Drag {
		case DragLinear:
			// Multiplicative damping applied straight to velocity; it
			// does not join the acceleration sum.
			s.ball.Velocity = s.ball.Velocity.Mul(math.Exp(-linearDragRate * dt))
		case DragQuadratic:
			speed := s.ball.Velocity.Len()
			if speed > 1e-9 {
				mag := 0.5 * airDensity * speed * speed * s.ball.DragCoeff * s.ball.CrossSection() / s.ball.Mass
				acc = acc.Add(s.ball.Velocity.Mul(-mag / speed))
				dbg.DragMag = mag
			}
		}
	}

	s.ball.Velocity = s.ball.Velocity.Add(acc.Mul(dt))
	s.ball.Position = s.ball.Position.Add(s.ball.Velocity.Mul(dt))

	dbg.Speed = s.ball.Velocity.Len()
	s.debug = dbg

	s.handleCollisions()
}

// DebugInfo is a diagnostic snapshot of the last computed forces and
// kinematics. Magnitudes are zero for disabled or degenerate terms.
type DebugInfo struct {
	DrumAngle      float64
	RadialDistance float64
	Speed          float64
	GravityMag     float64
	CentrifugalMag float64
	CoriolisMag    float64
	DragMag        float64
}

// Debug returns the snapshot captured by the most recent Step.
func (s *Simulation) Debug() DebugInfo { return s.debug }
