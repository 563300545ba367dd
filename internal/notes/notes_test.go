package notes

import (
	"math"
	"testing"

	"github.com/soundphys/tumbler/internal/drum"
)

func newSim(t *testing.T, vanes int) *drum.Simulation {
	t.Helper()
	s, err := drum.New(drum.DrumConfig{RPM: 45, Radius: 0.3, VaneCount: vanes, VaneHeight: 0.15})
	if err != nil {
		t.Fatalf("new simulation: %v", err)
	}
	return s
}

func TestMapperCoversAllSurfaces(t *testing.T) {
	s := newSim(t, 4)

	m, err := NewMapper(60, Scales["pentatonic"])
	if err != nil {
		t.Fatalf("new mapper: %v", err)
	}
	m.Rebuild(s.Surfaces())

	for _, sf := range s.Surfaces() {
		note, ok := m.Note(sf.ID)
		if !ok {
			t.Errorf("surface %q has no note", sf.ID)
		}
		if note < 0 || note > 127 {
			t.Errorf("surface %q note %d outside MIDI range", sf.ID, note)
		}
	}
}

func TestStaleIDsStopResolvingAfterRebuild(t *testing.T) {
	s := newSim(t, 4)

	m, _ := NewMapper(60, Scales["minor"])
	m.Rebuild(s.Surfaces())
	stale := s.Surfaces()[0].ID

	if err := s.SetParameters(45, 30, 6, 15); err != nil {
		t.Fatalf("set parameters: %v", err)
	}
	m.Rebuild(s.Surfaces())

	if _, ok := m.Note(stale); ok {
		t.Errorf("stale id %q still resolves after rebuild", stale)
	}
	for _, sf := range s.Surfaces() {
		if _, ok := m.Note(sf.ID); !ok {
			t.Errorf("fresh surface %q missing after rebuild", sf.ID)
		}
	}
}

func TestVaneFacesVoiceAboveSegments(t *testing.T) {
	s := newSim(t, 3)
	m, _ := NewMapper(48, Scales["major"])
	m.Rebuild(s.Surfaces())

	var segment, leading, trailing int
	for _, sf := range s.Surfaces() {
		if sf.Index != 1 {
			continue
		}
		note, _ := m.Note(sf.ID)
		switch sf.Kind {
		case drum.DrumSegment:
			segment = note
		case drum.VaneLeading:
			leading = note
		case drum.VaneTrailing:
			trailing = note
		}
	}

	if leading != segment+12 {
		t.Errorf("leading face should sit an octave up: segment=%d leading=%d", segment, leading)
	}
	if trailing != segment+7 {
		t.Errorf("trailing face should sit a fifth up: segment=%d trailing=%d", segment, trailing)
	}
}

func TestFrequency(t *testing.T) {
	if f := Frequency(69); math.Abs(f-440) > 1e-9 {
		t.Errorf("A4 should be 440 Hz, got %g", f)
	}
	if f := Frequency(81); math.Abs(f-880) > 1e-9 {
		t.Errorf("A5 should be 880 Hz, got %g", f)
	}
}

func TestNewMapperValidation(t *testing.T) {
	if _, err := NewMapper(60, nil); err == nil {
		t.Error("expected error for empty scale")
	}
	if _, err := NewMapper(200, Scales["minor"]); err == nil {
		t.Error("expected error for root outside MIDI range")
	}
}
