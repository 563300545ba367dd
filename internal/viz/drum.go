package viz

import (
	"math"

	"github.com/soundphys/tumbler/internal/drum"
)

// DrawDrum renders the whole scene onto the canvas: wall, vanes, ball, a
// gravity arrow showing the frame's rotation, and a flash on the most
// recently struck surface.
//
// flashID may be empty. The canvas pixel grid is treated as the square
// render target the engine's pixel queries expect; the vertical 2:1
// aspect of terminal cells is already absorbed by the braille resolution.
func DrawDrum(c *Canvas, sim *drum.Simulation, flashID string) {
	c.Clear()

	pw, ph := c.PixelSize()
	size := float64(min(pw, ph))

	cx := float64(pw) / 2
	cy := float64(ph) / 2
	r := sim.DrumCanvasRadius(size)

	flash := findFlash(sim, flashID)

	// Wall, segment by segment so a struck segment can flash thicker.
	n := sim.Config().VaneCount
	for i := 0; i < n; i++ {
		// Canvas y grows downward, so frame angles run clockwise here.
		a0 := -float64(i+1) / float64(n) * 2 * math.Pi
		a1 := -float64(i) / float64(n) * 2 * math.Pi
		c.Arc(cx, cy, r, a0, a1)
		if flash != nil && flash.Kind == drum.DrumSegment && flash.Index == i {
			c.Arc(cx, cy, r-1, a0, a1)
			c.Arc(cx, cy, r-2, a0, a1)
		}
	}

	for _, v := range sim.VanePositions(size) {
		x1, y1 := v.X1+cx-size/2, v.Y1+cy-size/2
		x2, y2 := v.X2+cx-size/2, v.Y2+cy-size/2
		c.Line(int(x1), int(y1), int(x2), int(y2))
		if flash != nil && flash.Index == v.Index &&
			(flash.Kind == drum.VaneLeading || flash.Kind == drum.VaneTrailing) {
			c.Disc((x1+x2)/2, (y1+y2)/2, 2)
		}
	}

	bx, by := sim.BallPosition(size)
	c.Disc(bx+cx-size/2, by+cy-size/2, math.Max(1.5, sim.BallCanvasRadius(size)))

	// Gravity arrow at the hub: down in the world, rotating in the frame.
	ax := -math.Sin(sim.Angle())
	ay := -math.Cos(sim.Angle())
	c.Line(int(cx), int(cy), int(cx+ax*r*0.25), int(cy-ay*r*0.25))
}

func findFlash(sim *drum.Simulation, id string) *drum.Surface {
	if id == "" {
		return nil
	}
	for _, sf := range sim.Surfaces() {
		if sf.ID == id {
			return &sf
		}
	}
	return nil
}
