package analysis

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/wanomaly/weather-anomaly/internal/dataset"
	"github.com/wanomaly/weather-anomaly/internal/season"
)

// Baseline is the per-city, per-season statistical reference derived from
// historical observations. Std is the sample standard deviation (divisor
// n-1) and is NaN when Count == 1, where the estimator is undefined. The NaN
// is propagated to callers, never silently replaced with zero spread.
type Baseline struct {
	City   string
	Season season.Season
	Mean   float64
	Std    float64
	Count  int
}

// MarshalJSON renders a NaN Std as null; NaN is not representable in JSON
// and rewriting it as 0 would turn "spread unknown" into "no spread".
func (b Baseline) MarshalJSON() ([]byte, error) {
	out := struct {
		City   string        `json:"city"`
		Season season.Season `json:"season"`
		Mean   float64       `json:"mean"`
		Std    *float64      `json:"std"`
		Count  int           `json:"count"`
	}{
		City:   b.City,
		Season: b.Season,
		Mean:   b.Mean,
		Count:  b.Count,
	}
	if !math.IsNaN(b.Std) {
		out.Std = &b.Std
	}
	return json.Marshal(out)
}

// ComputeBaselines groups a city's observations by their season label and
// derives a Baseline per non-empty season. Seasons absent from the city's
// data yield no map entry; callers must handle a missing season. Baselines
// are computed over the raw dataset, anomalies included, so a season with
// extreme outliers inflates its own Std.
func ComputeBaselines(observations []dataset.Observation, city string) (map[season.Season]Baseline, error) {
	bySeason := make(map[season.Season][]float64)
	for _, o := range observations {
		if o.City != city {
			continue
		}
		bySeason[o.Season] = append(bySeason[o.Season], o.Temperature)
	}

	if len(bySeason) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCity, city)
	}

	baselines := make(map[season.Season]Baseline, len(bySeason))
	for s, temps := range bySeason {
		baselines[s] = Baseline{
			City:   city,
			Season: s,
			Mean:   mean(temps),
			Std:    sampleStd(temps),
			Count:  len(temps),
		}
	}
	return baselines, nil
}

func mean(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// sampleStd is the unbiased sample standard deviation (divisor n-1).
// It is NaN for a single sample.
func sampleStd(xs []float64) float64 {
	if len(xs) < 2 {
		return math.NaN()
	}
	m := mean(xs)
	var ss float64
	for _, x := range xs {
		d := x - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(xs)-1))
}
