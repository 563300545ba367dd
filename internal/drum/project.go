package drum

import "math"

// Pixel-space queries for renderers. The drum is mapped onto a centered
// square canvas with a 10% margin: scale = canvasSize / (2.2 * radius).
// The y axis flips into screen coordinates (y grows downward).

// VaneLine is one vane in canvas coordinates, inner endpoint first.
type VaneLine struct {
	Index          int
	X1, Y1, X2, Y2 float64
}

func (s *Simulation) canvasScale(canvasSize float64) (scale, half float64) {
	return canvasSize / (s.cfg.Radius * 2.2), canvasSize / 2
}

// BallPosition maps the ball center into canvas coordinates.
func (s *Simulation) BallPosition(canvasSize float64) (x, y float64) {
	scale, half := s.canvasScale(canvasSize)
	return half + s.ball.Position.X()*scale, half - s.ball.Position.Y()*scale
}

// BallCanvasRadius maps the ball radius into canvas pixels.
func (s *Simulation) BallCanvasRadius(canvasSize float64) float64 {
	scale, _ := s.canvasScale(canvasSize)
	return s.ball.Radius * scale
}

// DrumCanvasRadius maps the drum radius into canvas pixels.
func (s *Simulation) DrumCanvasRadius(canvasSize float64) float64 {
	scale, _ := s.canvasScale(canvasSize)
	return s.cfg.Radius * scale
}

// VanePositions maps every vane segment into canvas coordinates. Vanes are
// rigidly attached to the drum, which is the reference frame, so their
// angles are fixed regardless of accumulated rotation.
func (s *Simulation) VanePositions(canvasSize float64) []VaneLine {
	scale, half := s.canvasScale(canvasSize)
	lines := make([]VaneLine, s.cfg.VaneCount)
	for i := range lines {
		theta := float64(i) / float64(s.cfg.VaneCount) * 2 * math.Pi
		cos, sin := math.Cos(theta), math.Sin(theta)
		innerR := s.cfg.Radius * (1 - s.cfg.VaneHeight)
		lines[i] = VaneLine{
			Index: i,
			X1:    half + innerR*cos*scale,
			Y1:    half - innerR*sin*scale,
			X2:    half + s.cfg.Radius*cos*scale,
			Y2:    half - s.cfg.Radius*sin*scale,
		}
	}
	return lines
}
