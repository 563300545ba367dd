package drum

import (
	"fmt"
	"math"
)

// SurfaceKind distinguishes the three strikeable regions per vane index.
type SurfaceKind int

const (
	DrumSegment SurfaceKind = iota
	VaneLeading
	VaneTrailing
)

func (k SurfaceKind) String() string {
	switch k {
	case DrumSegment:
		return "segment"
	case VaneLeading:
		return "vane-leading"
	case VaneTrailing:
		return "vane-trailing"
	default:
		return "unknown"
	}
}

// Surface is a logical region of the drum interior. The full set is
// regenerated whenever geometry changes; IDs embed a generation counter so
// no ID from a previous geometry remains valid afterwards.
type Surface struct {
	Kind     SurfaceKind
	Index    int
	ID       string
	ColorTag string
}

var colorTags = []string{"red", "orange", "yellow", "green", "cyan", "blue", "violet", "magenta"}

// regenerateSurfaces rebuilds the 3*vaneCount surface set and bumps the
// generation counter. Layout: all wall segments first, then the leading and
// trailing face of each vane.
func (s *Simulation) regenerateSurfaces() {
	s.generation++
	n := s.cfg.VaneCount
	surfaces := make([]Surface, 0, 3*n)
	for _, kind := range []SurfaceKind{DrumSegment, VaneLeading, VaneTrailing} {
		for i := 0; i < n; i++ {
			surfaces = append(surfaces, Surface{
				Kind:     kind,
				Index:    i,
				ID:       fmt.Sprintf("%s-%d.g%d", kind, i, s.generation),
				ColorTag: colorTags[i%len(colorTags)],
			})
		}
	}
	s.surfaces = surfaces
}

// Surfaces returns a copy of the current surface set, length 3*VaneCount.
func (s *Simulation) Surfaces() []Surface {
	out := make([]Surface, len(s.surfaces))
	copy(out, s.surfaces)
	return out
}

// Generation reports how many times the surface set has been rebuilt.
func (s *Simulation) Generation() int { return s.generation }

func (s *Simulation) surfaceFor(kind SurfaceKind, index int) Surface {
	return s.surfaces[int(kind)*s.cfg.VaneCount+index]
}

// segmentIndex maps an angular position in [0, 2pi) to a wall segment
// index. The calibration offset compensates for a fixed mismatch against a
// separately rendered segment layout; it is not derived physically.
func (s *Simulation) segmentIndex(theta float64) int {
	n := s.cfg.VaneCount
	width := 2 * math.Pi / float64(n)
	idx := int(math.Floor(theta/width)) + s.segmentOffset
	return ((idx % n) + n) % n
}

// SetSegmentOffset sets the segment-index calibration constant.
func (s *Simulation) SetSegmentOffset(offset int) { s.segmentOffset = offset }
