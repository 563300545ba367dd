// Package audio turns collision events into sound. It is strictly a
// consumer of the simulation: trigger calls enqueue short percussive
// plucks that the portaudio callback mixes down, and a missing audio
// device degrades to silence without touching simulation correctness.
package audio

import (
	"fmt"
	"math"
	"sync"

	"github.com/gordonklaus/portaudio"
)

const (
	SampleRate = 44100
	BufferSize = 512

	maxVoices = 16

	// Pluck envelope: fast exponential decay, about 180 ms audible tail.
	decayPerSample = 1.0 - 28.0/SampleRate
)

type voice struct {
	phase float64
	step  float64 // phase increment per sample
	amp   float64
}

// Synth is a tiny polyphonic pluck synthesizer. Safe for one producer
// (the simulation thread) and the portaudio callback goroutine.
type Synth struct {
	stream *portaudio.Stream

	mu     sync.Mutex
	voices []voice

	active bool
}

func NewSynth() *Synth {
	return &Synth{voices: make([]voice, 0, maxVoices)}
}

// Start opens the default output device. An error leaves the synth
// inactive; Trigger becomes a no-op rather than a failure.
func (s *Synth) Start() error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("audio: initialize: %w", err)
	}
	stream, err := portaudio.OpenDefaultStream(0, 2, SampleRate, BufferSize, s.process)
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("audio: open stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return fmt.Errorf("audio: start stream: %w", err)
	}
	s.stream = stream
	s.active = true
	return nil
}

func (s *Synth) Stop() {
	if !s.active {
		return
	}
	s.stream.Stop()
	s.stream.Close()
	portaudio.Terminate()
	s.active = false
}

// Active reports whether a device is open.
func (s *Synth) Active() bool { return s.active }

// Trigger enqueues a pluck. Amplitude is clamped to [0, 1]; when all voice
// slots are busy the quietest voice is stolen.
func (s *Synth) Trigger(freq, amp float64) {
	if !s.active || freq <= 0 {
		return
	}
	amp = math.Max(0, math.Min(1, amp))

	s.mu.Lock()
	defer s.mu.Unlock()

	v := voice{step: freq / SampleRate, amp: amp}
	if len(s.voices) < maxVoices {
		s.voices = append(s.voices, v)
		return
	}
	quietest := 0
	for i := range s.voices {
		if s.voices[i].amp < s.voices[quietest].amp {
			quietest = i
		}
	}
	s.voices[quietest] = v
}

// triangle keeps the pluck soft; a sine sounds too pure for a tumbling
// object, a square too harsh.
func triangle(phase float64) float64 {
	p := phase - math.Floor(phase)
	if p < 0.5 {
		return 4*p - 1
	}
	return 3 - 4*p
}

func (s *Synth) process(out [][]float32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range out[0] {
		var sample float64
		for j := range s.voices {
			v := &s.voices[j]
			sample += triangle(v.phase) * v.amp
			v.phase += v.step
			v.amp *= decayPerSample
		}
		// Soft clip the mix.
		sample = math.Tanh(sample * 0.6)
		out[0][i] = float32(sample)
		out[1][i] = float32(sample)
	}

	alive := s.voices[:0]
	for _, v := range s.voices {
		if v.amp > 1e-4 {
			alive = append(alive, v)
		}
	}
	s.voices = alive
}

// ImpactAmp maps an impact speed to a pluck amplitude: linear up to a
// reference speed, then flat.
func ImpactAmp(speed float64) float64 {
	const refSpeed = 3.0
	return math.Min(1, speed/refSpeed)
}
