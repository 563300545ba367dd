// Package analysis computes statistics over recorded collision logs: how
// hard the ball hits, which surfaces carry the groove, and whether the
// impact train has a dominant rhythm.
package analysis

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/soundphys/tumbler/internal/storage"
)

// ImpactStats summarizes the impact-speed distribution of a run.
type ImpactStats struct {
	Count      int
	MeanSpeed  float64
	StdDev     float64
	Median     float64
	P90        float64
	MaxSpeed   float64
	PerSurface map[string]int
	PerKind    map[string]int
}

// Impacts computes distribution statistics for a collision log.
func Impacts(events []storage.EventRecord) ImpactStats {
	out := ImpactStats{
		Count:      len(events),
		PerSurface: make(map[string]int),
		PerKind:    make(map[string]int),
	}
	if len(events) == 0 {
		return out
	}

	speeds := make([]float64, len(events))
	for i, e := range events {
		speeds[i] = e.Speed
		out.PerSurface[e.Surface]++
		out.PerKind[e.Kind]++
		if e.Speed > out.MaxSpeed {
			out.MaxSpeed = e.Speed
		}
	}

	out.MeanSpeed = stat.Mean(speeds, nil)
	if len(speeds) > 1 {
		out.StdDev = stat.StdDev(speeds, nil)
	}

	sort.Float64s(speeds)
	out.Median = stat.Quantile(0.5, stat.Empirical, speeds, nil)
	out.P90 = stat.Quantile(0.9, stat.Empirical, speeds, nil)
	return out
}

// SpeedSeries extracts the impact speeds in event order, for plotting.
func SpeedSeries(events []storage.EventRecord) []float64 {
	speeds := make([]float64, len(events))
	for i, e := range events {
		speeds[i] = e.Speed
	}
	return speeds
}
