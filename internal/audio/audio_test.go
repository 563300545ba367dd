package audio

import (
	"math"
	"testing"
)

func TestTriggerInactiveIsNoOp(t *testing.T) {
	s := NewSynth()
	s.Trigger(440, 0.8)
	if len(s.voices) != 0 {
		t.Error("inactive synth must not accumulate voices")
	}
}

func TestVoiceStealing(t *testing.T) {
	s := NewSynth()
	s.active = true // bypass the device for unit testing

	for i := 0; i < maxVoices; i++ {
		s.Trigger(440, 0.5)
	}
	s.Trigger(880, 1.0)

	if len(s.voices) != maxVoices {
		t.Fatalf("expected %d voices, got %d", maxVoices, len(s.voices))
	}
	found := false
	for _, v := range s.voices {
		if v.amp == 1.0 {
			found = true
		}
	}
	if !found {
		t.Error("loud trigger did not steal a voice slot")
	}
}

func TestProcessDecaysAndReapsVoices(t *testing.T) {
	s := NewSynth()
	s.active = true
	s.Trigger(440, 1.0)

	out := [][]float32{make([]float32, BufferSize), make([]float32, BufferSize)}

	// Ten seconds of audio should silence any pluck.
	for i := 0; i < 10*SampleRate/BufferSize; i++ {
		s.process(out)
	}
	if len(s.voices) != 0 {
		t.Errorf("expected decayed voices to be reaped, %d left", len(s.voices))
	}
}

func TestProcessOutputBounded(t *testing.T) {
	s := NewSynth()
	s.active = true
	for i := 0; i < maxVoices; i++ {
		s.Trigger(200+float64(i)*110, 1.0)
	}

	out := [][]float32{make([]float32, BufferSize), make([]float32, BufferSize)}
	s.process(out)

	for _, v := range out[0] {
		if math.Abs(float64(v)) > 1.0 {
			t.Fatalf("sample %g exceeds [-1, 1]", v)
		}
	}
}

func TestImpactAmp(t *testing.T) {
	if got := ImpactAmp(0); got != 0 {
		t.Errorf("zero speed should be silent, got %g", got)
	}
	if got := ImpactAmp(1.5); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("expected 0.5 at half reference speed, got %g", got)
	}
	if got := ImpactAmp(100); got != 1 {
		t.Errorf("expected clamp to 1, got %g", got)
	}
}
