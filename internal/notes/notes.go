// Package notes maps drum surfaces to musical notes for the audio and MIDI
// collaborators. Surface IDs die on every geometry change, so a Mapper must
// be rebuilt from the fresh surface set after each parameter update.
package notes

import (
	"fmt"
	"math"
	"sort"

	"github.com/soundphys/tumbler/internal/drum"
)

// Scale is a set of semitone offsets from the root within one octave.
type Scale []int

var Scales = map[string]Scale{
	"pentatonic": {0, 3, 5, 7, 10},
	"major":      {0, 2, 4, 5, 7, 9, 11},
	"minor":      {0, 2, 3, 5, 7, 8, 10},
	"chromatic":  {0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11},
}

// ListScales returns scale names in stable order.
func ListScales() []string {
	names := make([]string, 0, len(Scales))
	for name := range Scales {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Mapper assigns a MIDI note to every current surface ID. Wall segments
// walk up the scale by index; vane faces play the same degree an octave
// (leading) or a fifth (trailing) above, so each vane index stays a
// recognizable voice.
type Mapper struct {
	root  int
	scale Scale
	byID  map[string]int
}

// NewMapper builds an empty mapper; call Rebuild before use.
func NewMapper(root int, scale Scale) (*Mapper, error) {
	if len(scale) == 0 {
		return nil, fmt.Errorf("notes: empty scale")
	}
	if root < 0 || root > 127 {
		return nil, fmt.Errorf("notes: root note %d outside MIDI range", root)
	}
	return &Mapper{root: root, scale: scale, byID: make(map[string]int)}, nil
}

// Rebuild replaces the mapping with one for the given surface set. Must be
// called after every surface regeneration; stale IDs simply stop resolving.
func (m *Mapper) Rebuild(surfaces []drum.Surface) {
	m.byID = make(map[string]int, len(surfaces))
	for _, sf := range surfaces {
		m.byID[sf.ID] = m.noteFor(sf)
	}
}

func (m *Mapper) noteFor(sf drum.Surface) int {
	degree := sf.Index % len(m.scale)
	octave := sf.Index / len(m.scale)
	note := m.root + m.scale[degree] + 12*octave
	switch sf.Kind {
	case drum.VaneLeading:
		note += 12
	case drum.VaneTrailing:
		note += 7
	}
	if note > 127 {
		note = 127
	}
	return note
}

// Note resolves a surface ID to its MIDI note. The second return is false
// for IDs from a previous surface generation.
func (m *Mapper) Note(id string) (int, bool) {
	n, ok := m.byID[id]
	return n, ok
}

// Frequency converts a MIDI note to Hz in equal temperament (A4 = 440).
func Frequency(note int) float64 {
	return 440 * math.Pow(2, float64(note-69)/12)
}
