package analysis

import (
	"math"

	"github.com/wanomaly/weather-anomaly/internal/dataset"
	"github.com/wanomaly/weather-anomaly/internal/season"
)

// FlaggedObservation pairs an observation with its anomaly flag. The flag is
// only meaningful relative to the baseline set it was computed against and
// must be recomputed whenever the baselines change.
type FlaggedObservation struct {
	dataset.Observation
	Anomalous bool `json:"anomalous"`
}

// Detect applies the two-sigma rule to each observation against the baseline
// for its season and returns the flags in input order. An observation whose
// season has no baseline, or whose baseline Std is NaN (single sample), is
// reported as normal: without a usable spread estimate a reading cannot be
// called anomalous. That fallback is intended behavior, not an error.
func Detect(observations []dataset.Observation, baselines map[season.Season]Baseline) []FlaggedObservation {
	flagged := make([]FlaggedObservation, 0, len(observations))
	for _, o := range observations {
		flagged = append(flagged, FlaggedObservation{
			Observation: o,
			Anomalous:   anomalous(o.Temperature, o.Season, baselines),
		})
	}
	return flagged
}

func anomalous(t float64, s season.Season, baselines map[season.Season]Baseline) bool {
	b, ok := baselines[s]
	if !ok || math.IsNaN(b.Std) {
		return false
	}
	return t < b.Mean-2*b.Std || t > b.Mean+2*b.Std
}
