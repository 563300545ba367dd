package drum

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestBallPositionMapping(t *testing.T) {
	s := mustNew(t, DrumConfig{RPM: 0, Radius: 0.5, VaneCount: 4, VaneHeight: 0.2})

	s.ball.Position = mgl64.Vec2{0, 0}
	x, y := s.BallPosition(220)
	if x != 110 || y != 110 {
		t.Errorf("center must map to canvas center, got (%g, %g)", x, y)
	}

	// +y in the frame is up; the canvas y axis grows downward.
	s.ball.Position = mgl64.Vec2{0, 0.5}
	x, y = s.BallPosition(220)
	scale := 220 / (0.5 * 2.2)
	if math.Abs(x-110) > 1e-9 || math.Abs(y-(110-0.5*scale)) > 1e-9 {
		t.Errorf("unexpected mapping for top of drum: (%g, %g)", x, y)
	}
}

func TestVanePositionsSpanVaneHeight(t *testing.T) {
	s := mustNew(t, DrumConfig{RPM: 0, Radius: 0.5, VaneCount: 4, VaneHeight: 0.2})

	lines := s.VanePositions(220)
	if len(lines) != 4 {
		t.Fatalf("expected 4 vane lines, got %d", len(lines))
	}

	// Vane 0 lies along +x: inner endpoint at 0.8R, outer at R.
	scale := 220 / (0.5 * 2.2)
	v := lines[0]
	if math.Abs(v.X1-(110+0.4*scale)) > 1e-9 || math.Abs(v.Y1-110) > 1e-9 {
		t.Errorf("unexpected inner endpoint: (%g, %g)", v.X1, v.Y1)
	}
	if math.Abs(v.X2-(110+0.5*scale)) > 1e-9 || math.Abs(v.Y2-110) > 1e-9 {
		t.Errorf("unexpected outer endpoint: (%g, %g)", v.X2, v.Y2)
	}
}
