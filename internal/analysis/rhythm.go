package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"

	"github.com/soundphys/tumbler/internal/storage"
)

// rhythmBins is the pulse-train resolution for the spectrum. Power of two
// for the FFT.
const rhythmBins = 512

// Rhythm is the spectral view of a run's impact train.
type Rhythm struct {
	// Spectrum holds power per frequency bin; bin k corresponds to
	// k/duration Hz, up to the Nyquist bin.
	Spectrum []float64
	// DominantHz is the strongest non-DC frequency, 0 when the log is
	// too sparse to say anything.
	DominantHz float64
}

// RhythmSpectrum bins event times into a fixed pulse train, weighted by
// impact speed, and returns its power spectrum. A drum with a stable
// tumbling pattern shows a clear peak at the pattern frequency.
func RhythmSpectrum(events []storage.EventRecord, duration float64) Rhythm {
	var out Rhythm
	if len(events) < 2 || duration <= 0 {
		return out
	}

	train := make([]float64, rhythmBins)
	for _, e := range events {
		if e.Time < 0 || e.Time >= duration {
			continue
		}
		bin := int(e.Time / duration * rhythmBins)
		train[bin] += e.Speed
	}

	spectrum := fft.FFTReal(train)
	out.Spectrum = make([]float64, rhythmBins/2)
	for i := range out.Spectrum {
		out.Spectrum[i] = cmplx.Abs(spectrum[i])
	}

	best, bestPower := 0, 0.0
	for i := 1; i < len(out.Spectrum); i++ {
		if out.Spectrum[i] > bestPower {
			best, bestPower = i, out.Spectrum[i]
		}
	}
	if bestPower > 0 {
		out.DominantHz = float64(best) / duration
	}
	return out
}
