package drum

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// handleCollisions runs the wall test then every vane test. Each test does
// positional correction plus an impulse reflection, and reports at most one
// surface impact.
func (s *Simulation) handleCollisions() {
	s.collideWall()
	for i := 0; i < s.cfg.VaneCount; i++ {
		s.collideVane(i)
	}
}

func (s *Simulation) collideWall() {
	p := s.ball.Position
	d := p.Len()
	if d+s.ball.Radius <= s.cfg.Radius {
		return
	}
	if d < centerEpsilon {
		// No usable normal; only reachable when the ball is wider than
		// the drum, which configuration validation forbids.
		return
	}

	// Classification must use the angular position before the positional
	// correction, or a grazing hit at a segment boundary can be filed
	// under the neighbouring segment.
	theta := math.Atan2(p.Y(), p.X())
	if theta < 0 {
		theta += 2 * math.Pi
	}

	penetration := d + s.ball.Radius - s.cfg.Radius
	normal := p.Mul(-1 / d) // toward center
	s.ball.Position = p.Add(normal.Mul(penetration))

	vn := s.ball.Velocity.Dot(normal)
	if vn >= 0 {
		// Already separating; corrected position only, no event.
		return
	}
	s.ball.Velocity = s.ball.Velocity.Sub(normal.Mul((1 + s.ball.Restitution) * vn))

	s.trigger(s.surfaceFor(DrumSegment, s.segmentIndex(theta)), -vn)
}

func (s *Simulation) collideVane(i int) {
	thetaI := float64(i) / float64(s.cfg.VaneCount) * 2 * math.Pi
	dir := mgl64.Vec2{math.Cos(thetaI), math.Sin(thetaI)}
	inner := dir.Mul(s.cfg.Radius * (1 - s.cfg.VaneHeight))
	seg := dir.Mul(s.cfg.Radius).Sub(inner)

	segLen2 := seg.Dot(seg)
	if segLen2 < 1e-12 {
		// Zero-height vane: nothing to hit.
		return
	}

	// Closest point on the finite segment; t clamped so the ball cannot
	// strike the geometric extension beyond either endpoint.
	t := s.ball.Position.Sub(inner).Dot(seg) / segLen2
	t = math.Max(0, math.Min(1, t))
	closest := inner.Add(seg.Mul(t))

	offset := s.ball.Position.Sub(closest)
	dist := offset.Len()
	if dist >= s.ball.Radius {
		return
	}

	perp := mgl64.Vec2{-dir.Y(), dir.X()}
	normal := perp
	if dist > 1e-9 {
		normal = offset.Mul(1 / dist)
	}

	s.ball.Position = s.ball.Position.Add(normal.Mul(s.ball.Radius - dist))

	vn := s.ball.Velocity.Dot(normal)
	if vn >= 0 {
		return
	}
	s.ball.Velocity = s.ball.Velocity.Sub(normal.Mul((1 + s.ball.Restitution) * vn))

	kind := VaneTrailing
	if s.ball.Position.Sub(inner).Dot(perp) > 0 {
		kind = VaneLeading
	}
	s.trigger(s.surfaceFor(kind, i), -vn)
}
